package gotd

import (
	"fmt"
	"regexp"
	"time"
)

// phonePattern matches an international phone number: + followed by digits.
var phonePattern = regexp.MustCompile(`^\+\d{7,15}$`)

// Config holds the MTProto client configuration.
type Config struct {
	// APIID and APIHash come from https://my.telegram.org.
	APIID   int    `yaml:"api_id"`
	APIHash string `yaml:"api_hash"`

	// Phone is the account number in international format, e.g. +4123456789.
	Phone string `yaml:"phone"`

	// SessionFile overrides the session path. Defaults to
	// <data_dir>/telegram/session.json.
	SessionFile string `yaml:"session_file"`

	// PageSize bounds one participants page. Telegram caps this at 200.
	PageSize int `yaml:"page_size"`

	// ItemDelay is the pause between retained members during collection,
	// independent of the request-level rate limit.
	ItemDelay time.Duration `yaml:"item_delay"`

	// RateEvery and RateBurst feed the request rate limiter.
	RateEvery time.Duration `yaml:"rate_every"`
	RateBurst int           `yaml:"rate_burst"`

	// ReconnectMax caps the reconnect backoff.
	ReconnectMax time.Duration `yaml:"reconnect_max"`

	// WireLog enables MTProto wire diagnostics to a rotating file. Empty
	// disables them.
	WireLog string `yaml:"wire_log"`
}

// defaults applies default values to unset fields.
func (c *Config) defaults() {
	if c.PageSize <= 0 || c.PageSize > 200 {
		c.PageSize = 200
	}
	if c.ItemDelay == 0 {
		c.ItemDelay = 100 * time.Millisecond
	}
	if c.RateEvery <= 0 {
		c.RateEvery = 100 * time.Millisecond
	}
	if c.RateBurst <= 0 {
		c.RateBurst = 5
	}
	if c.ReconnectMax <= 0 {
		c.ReconnectMax = time.Minute
	}
}

// validate checks field constraints beyond basic presence checks. Called from
// Client.Validate after defaults have been applied.
func (c *Config) validate() error {
	if c.APIID <= 0 {
		return fmt.Errorf("gotd: api_id is required")
	}
	if c.APIHash == "" {
		return fmt.Errorf("gotd: api_hash is required")
	}
	if c.Phone == "" {
		return fmt.Errorf("gotd: phone is required")
	}
	if !phonePattern.MatchString(c.Phone) {
		return fmt.Errorf("gotd: phone must be in international format (+digits), got %q", c.Phone)
	}
	if c.ItemDelay < 0 {
		return fmt.Errorf("gotd: item_delay must not be negative, got %s", c.ItemDelay)
	}
	return nil
}
