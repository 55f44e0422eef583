package gotd

import (
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	var c Config
	c.defaults()

	if c.PageSize != 200 {
		t.Errorf("PageSize = %d, want 200", c.PageSize)
	}
	if c.ItemDelay != 100*time.Millisecond {
		t.Errorf("ItemDelay = %s, want 100ms", c.ItemDelay)
	}
	if c.RateEvery != 100*time.Millisecond || c.RateBurst != 5 {
		t.Errorf("rate = %s/%d, want 100ms/5", c.RateEvery, c.RateBurst)
	}
	if c.ReconnectMax != time.Minute {
		t.Errorf("ReconnectMax = %s, want 1m", c.ReconnectMax)
	}
}

func TestConfigDefaults_ClampsPageSize(t *testing.T) {
	t.Parallel()

	c := Config{PageSize: 500}
	c.defaults()
	if c.PageSize != 200 {
		t.Errorf("PageSize = %d, want clamped to 200", c.PageSize)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := Config{APIID: 12345, APIHash: "abcdef", Phone: "+4123456789"}
	valid.defaults()
	if err := valid.validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing api_id", func(c *Config) { c.APIID = 0 }},
		{"missing api_hash", func(c *Config) { c.APIHash = "" }},
		{"missing phone", func(c *Config) { c.Phone = "" }},
		{"phone without plus", func(c *Config) { c.Phone = "4123456789" }},
		{"phone with letters", func(c *Config) { c.Phone = "+41abc" }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := valid
			tt.mutate(&c)
			if err := c.validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
