package sheets

import "fmt"

// Config holds the Google Sheets sink configuration.
type Config struct {
	// SpreadsheetID is the target spreadsheet key.
	SpreadsheetID string `yaml:"spreadsheet_id"`

	// CredentialsFile is the service-account JSON key path.
	CredentialsFile string `yaml:"credentials_file"`

	// Sheet names. The defaults match the operator's existing spreadsheet.
	ContactsSheet string `yaml:"contacts_sheet"`
	StatsSheet    string `yaml:"stats_sheet"`
	LogSheet      string `yaml:"log_sheet"`

	// Source labels log rows so several writers can share one log sheet.
	Source string `yaml:"source"`
}

// defaults applies default values to unset fields.
func (c *Config) defaults() {
	if c.ContactsSheet == "" {
		c.ContactsSheet = "Контакты"
	}
	if c.StatsSheet == "" {
		c.StatsSheet = "Статистика"
	}
	if c.LogSheet == "" {
		c.LogSheet = "Лог"
	}
	if c.Source == "" {
		c.Source = "Bot"
	}
}

// validate checks required fields. Called after defaults have been applied.
func (c *Config) validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("sheets: spreadsheet_id is required")
	}
	if c.CredentialsFile == "" {
		return fmt.Errorf("sheets: credentials_file is required")
	}
	return nil
}
