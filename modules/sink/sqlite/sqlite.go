// Package sqlite implements the local archive sink. It mirrors every
// persisted contact batch and run row into a SQLite database next to the
// process, using modernc.org/sqlite (pure Go, no CGO) with WAL mode. The
// archive gives the operator a queryable copy when a spreadsheet write was
// partial, and a contact history that survives spreadsheet cleanups.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"groupscout/internal/core"
	"groupscout/internal/sink"
	"groupscout/pkg/scrape"

	_ "modernc.org/sqlite" // SQLite driver registration
)

func init() {
	core.RegisterModule(&Module{})
}

// Compile-time interface guards.
var (
	_ sink.Sink         = (*Module)(nil)
	_ core.Configurable = (*Module)(nil)
	_ core.Provisioner  = (*Module)(nil)
	_ core.Validator    = (*Module)(nil)
	_ core.Stopper      = (*Module)(nil)
)

// Module is the SQLite archive sink module.
type Module struct {
	config Config
	db     *sql.DB
	logger *slog.Logger
}

// ModuleInfo implements core.Module.
func (m *Module) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "sink.sqlite",
		New: func() core.Module { return &Module{} },
	}
}

// Configure implements core.Configurable.
func (m *Module) Configure(node *yaml.Node) error {
	if err := node.Decode(&m.config); err != nil {
		return fmt.Errorf("sqlite: decode config: %w", err)
	}
	m.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (m *Module) Provision(ctx *core.AppContext) error {
	m.config.defaults()
	m.logger = ctx.Logger

	if m.config.Path == "" {
		m.config.Path = filepath.Join(ctx.DataDir, defaultDBFile)
	}

	if dir := filepath.Dir(m.config.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("sqlite: create directory %s: %w", dir, err)
		}
	}

	db, err := open(m.config)
	if err != nil {
		return err
	}
	m.db = db
	ctx.RegisterService("sink.archive", m)

	m.logger.Info("sqlite archive provisioned",
		"path", m.config.Path,
		"wal", m.config.walEnabled(),
	)
	return nil
}

// open opens the database with the configured pragmas and migrates the
// schema. SQLite handles one writer at a time; the pool is limited to one
// connection so the PRAGMAs apply consistently.
func open(config Config) (*sql.DB, error) {
	db, err := sql.Open("sqlite", config.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", config.Path, err)
	}

	db.SetMaxOpenConns(1)

	if config.walEnabled() {
		if _, err := db.ExecContext(context.TODO(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: enable WAL: %w", err)
		}
	}

	if _, err := db.ExecContext(context.TODO(), fmt.Sprintf("PRAGMA busy_timeout=%d", config.BusyTimeout)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: set busy_timeout: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Validate implements core.Validator.
func (m *Module) Validate() error {
	if err := m.config.validate(); err != nil {
		return err
	}
	if err := m.db.PingContext(context.TODO()); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}

// Stop implements core.Stopper.
func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("sqlite archive stopping")
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

// Name implements sink.Sink.
func (m *Module) Name() string { return "sqlite" }

// WriteContacts implements sink.Sink. The batch goes in one transaction; a
// contact seen again in the same group replaces the earlier capture, so the
// archive holds the latest known handle and phone per member and group.
func (m *Module) WriteContacts(ctx context.Context, contacts []scrape.Contact) error {
	if len(contacts) == 0 {
		return nil
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO contacts
		(user_id, username, phone, first_name, last_name, group_target, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("sqlite: prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range contacts {
		if _, err := stmt.ExecContext(ctx,
			c.ID, c.Username, c.Phone, c.FirstName, c.LastName, c.Group,
			c.CapturedAt.UTC().Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("sqlite: insert contact %d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// WriteStats implements sink.Sink.
func (m *Module) WriteStats(ctx context.Context, stats scrape.RunStats) error {
	_, err := m.db.ExecContext(ctx, `INSERT INTO runs
		(groups, contacts, with_username, with_phone, errors, duration_sec)
		VALUES (?, ?, ?, ?, ?, ?)`,
		stats.Groups, stats.Contacts, stats.WithUsername, stats.WithPhone,
		stats.Errors, int(stats.Duration.Seconds()),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert run: %w", err)
	}
	return nil
}

// Log implements sink.Sink.
func (m *Module) Log(ctx context.Context, level sink.Level, msg string) {
	if _, err := m.db.ExecContext(ctx,
		"INSERT INTO log (level, message) VALUES (?, ?)", string(level), msg,
	); err != nil {
		m.logger.Warn("archive log insert failed", "error", err)
	}
}

// ContactCount reports how many distinct contact rows the archive holds.
// Used by the health endpoint.
func (m *Module) ContactCount(ctx context.Context) (int, error) {
	var n int
	if err := m.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts").Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count contacts: %w", err)
	}
	return n, nil
}
