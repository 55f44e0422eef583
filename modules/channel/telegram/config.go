package telegram

import (
	"fmt"
	"net/url"
	"regexp"
)

// tokenPattern matches the Telegram bot token format: <digits>:<alphanum+dash>.
var tokenPattern = regexp.MustCompile(`^\d+:[A-Za-z0-9_-]+$`)

// Config holds the bot channel configuration.
type Config struct {
	Token          string   `yaml:"token"`
	PollingTimeout int      `yaml:"polling_timeout"`
	AllowedUpdates []string `yaml:"allowed_updates"`

	// AllowUsers is the requester allowlist by Telegram user ID. Empty
	// means nobody: the bot drives a scraping session, access is explicit.
	AllowUsers []int64 `yaml:"allow_users"`

	APIURL string `yaml:"api_url"`
}

// defaults applies default values to unset fields.
func (c *Config) defaults() {
	if c.PollingTimeout == 0 {
		c.PollingTimeout = 30
	}
	if c.AllowedUpdates == nil {
		c.AllowedUpdates = []string{"message", "callback_query"}
	}
	if c.APIURL == "" {
		c.APIURL = "https://api.telegram.org"
	}
}

// validate checks configuration field constraints beyond basic presence
// checks. Called from Telegram.Validate after defaults have been applied.
func (c *Config) validate() error {
	if c.Token == "" {
		return fmt.Errorf("telegram: token is required")
	}
	if !tokenPattern.MatchString(c.Token) {
		return fmt.Errorf("telegram: token format invalid (expected <bot_id>:<hash>)")
	}

	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("telegram: api_url must be a valid http/https URL, got %q", c.APIURL)
	}

	if c.PollingTimeout < 0 || c.PollingTimeout > 50 {
		return fmt.Errorf("telegram: polling_timeout must be 0-50, got %d", c.PollingTimeout)
	}

	if len(c.AllowUsers) == 0 {
		return fmt.Errorf("telegram: allow_users must not be empty")
	}
	return nil
}
