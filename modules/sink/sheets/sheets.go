// Package sheets implements the Google Sheets sink: contacts, run statistics
// and log lines are appended to three sheets of one operator-owned
// spreadsheet. Appends only, no retry; a failed write surfaces in the run
// outcome instead.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
	"gopkg.in/yaml.v3"

	"groupscout/internal/core"
	"groupscout/internal/sink"
	"groupscout/pkg/scrape"
)

func init() {
	core.RegisterModule(&Sheets{})
}

// Compile-time interface guards.
var (
	_ sink.Sink         = (*Sheets)(nil)
	_ core.Configurable = (*Sheets)(nil)
	_ core.Provisioner  = (*Sheets)(nil)
	_ core.Validator    = (*Sheets)(nil)
	_ core.Starter      = (*Sheets)(nil)
)

// Sheets is the Google Sheets sink module.
type Sheets struct {
	config Config
	logger *slog.Logger
	svc    *sheets.Service
}

// ModuleInfo implements core.Module.
func (s *Sheets) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "sink.sheets",
		New: func() core.Module { return &Sheets{} },
	}
}

// Configure implements core.Configurable.
func (s *Sheets) Configure(node *yaml.Node) error {
	if err := node.Decode(&s.config); err != nil {
		return fmt.Errorf("sheets: decode config: %w", err)
	}
	s.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (s *Sheets) Provision(ctx *core.AppContext) error {
	s.logger = ctx.Logger
	return nil
}

// Validate implements core.Validator.
func (s *Sheets) Validate() error {
	return s.config.validate()
}

// Start implements core.Starter. It builds the API client and verifies the
// spreadsheet is reachable, so a bad key or ID fails the boot instead of the
// first run.
func (s *Sheets) Start() error {
	ctx := context.Background()
	svc, err := sheets.NewService(ctx, option.WithCredentialsFile(s.config.CredentialsFile))
	if err != nil {
		return fmt.Errorf("sheets: create service: %w", err)
	}
	s.svc = svc

	if _, err := svc.Spreadsheets.Get(s.config.SpreadsheetID).Fields("spreadsheetId").Context(ctx).Do(); err != nil {
		return fmt.Errorf("sheets: spreadsheet %s unreachable: %w", s.config.SpreadsheetID, err)
	}
	s.logger.Info("sheets sink connected", "spreadsheet", s.config.SpreadsheetID)
	return nil
}

// Name implements sink.Sink.
func (s *Sheets) Name() string { return "sheets" }

// WriteContacts implements sink.Sink.
func (s *Sheets) WriteContacts(ctx context.Context, contacts []scrape.Contact) error {
	if len(contacts) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(contacts))
	for _, c := range contacts {
		rows = append(rows, contactRow(c))
	}
	if err := s.append(ctx, s.config.ContactsSheet, rows); err != nil {
		return fmt.Errorf("sheets: append contacts: %w", err)
	}
	s.logger.Info("contacts saved to spreadsheet", "count", len(contacts))
	return nil
}

// WriteStats implements sink.Sink.
func (s *Sheets) WriteStats(ctx context.Context, stats scrape.RunStats) error {
	if err := s.append(ctx, s.config.StatsSheet, [][]any{statsRow(stats, time.Now())}); err != nil {
		return fmt.Errorf("sheets: append stats: %w", err)
	}
	return nil
}

// Log implements sink.Sink. Failures are logged locally and swallowed: the
// log sheet is a convenience surface, never worth failing a run over.
func (s *Sheets) Log(ctx context.Context, level sink.Level, msg string) {
	row := logRow(level, s.config.Source, msg, time.Now())
	if err := s.append(ctx, s.config.LogSheet, [][]any{row}); err != nil {
		s.logger.Warn("log sheet append failed", "error", err)
	}
}

func (s *Sheets) append(ctx context.Context, sheet string, rows [][]any) error {
	if s.svc == nil {
		return fmt.Errorf("sheets: not started")
	}
	_, err := s.svc.Spreadsheets.Values.
		Append(s.config.SpreadsheetID, sheet+"!A1", &sheets.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}
