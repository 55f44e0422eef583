// Package config handles YAML configuration loading, environment variable
// expansion, and structural validation for groupscout.
package config

import "gopkg.in/yaml.v3"

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	// Modules maps module IDs to their raw YAML configuration.
	// Keys must match registered module IDs (e.g. "channel.telegram",
	// "client.gotd", "sink.sheets").
	Modules map[string]yaml.Node `yaml:"modules"`

	// Scheduled lists unattended scrape jobs executed on cron schedules.
	Scheduled []ScheduledRun `yaml:"scheduled,omitempty"`
}

// ScheduledRun describes one unattended scrape: a cron expression, a fixed
// target list, the criteria to scrape under, and the chat that receives the
// run summary.
type ScheduledRun struct {
	// Name identifies the job in logs. Must be unique.
	Name string `yaml:"name"`

	// Schedule is a standard five-field cron expression.
	Schedule string `yaml:"schedule"`

	// Targets are the group handles/links to scrape.
	Targets []string `yaml:"targets"`

	// ReportChat is the Telegram chat ID the summary is sent to.
	ReportChat int64 `yaml:"report_chat"`

	// MaxContacts overrides the per-group bound (default 100).
	MaxContacts int `yaml:"max_contacts,omitempty"`

	// ExcludeBots drops bot accounts (default false).
	ExcludeBots bool `yaml:"exclude_bots,omitempty"`

	// UsernamesOnly keeps only members with a public handle.
	UsernamesOnly bool `yaml:"usernames_only,omitempty"`
}
