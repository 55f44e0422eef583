package telegram

import "testing"

func TestAllowList(t *testing.T) {
	t.Parallel()

	a := NewAllowList([]int64{5, 9})
	if !a.IsAllowed(5) || !a.IsAllowed(9) {
		t.Error("listed users should be allowed")
	}
	if a.IsAllowed(6) {
		t.Error("unlisted user allowed")
	}

	empty := NewAllowList(nil)
	if empty.IsAllowed(5) {
		t.Error("empty list should deny everyone")
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	valid := Config{Token: "12345:ABCdef", AllowUsers: []int64{5}}
	valid.defaults()
	if err := valid.validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing token", func(c *Config) { c.Token = "" }},
		{"malformed token", func(c *Config) { c.Token = "not-a-token" }},
		{"empty allowlist", func(c *Config) { c.AllowUsers = nil }},
		{"timeout too large", func(c *Config) { c.PollingTimeout = 120 }},
		{"bad api url", func(c *Config) { c.APIURL = "::://bad" }},
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
