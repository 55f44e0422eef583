package sheets

import (
	"testing"
	"time"

	"groupscout/internal/sink"
	"groupscout/pkg/scrape"
)

var captured = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func TestContactRow(t *testing.T) {
	t.Parallel()

	row := contactRow(scrape.Contact{
		ID:         12345,
		Username:   "@alice",
		Phone:      "+79990000000",
		FirstName:  "Alice",
		LastName:   "Liddell",
		Group:      "@wonderland",
		CapturedAt: captured,
	})

	if len(row) != 10 {
		t.Fatalf("contact row has %d columns, want 10", len(row))
	}
	if row[0] != int64(12345) || row[1] != "@alice" || row[2] != "+79990000000" {
		t.Errorf("identity columns wrong: %v", row[:3])
	}
	if row[5] != "@wonderland" {
		t.Errorf("group column = %v, want @wonderland", row[5])
	}
	if row[6] != 0 || row[7] != "" || row[8] != "" {
		t.Errorf("reserved columns changed: %v", row[6:9])
	}
	if row[9] != "2025-03-14 15:09:26" {
		t.Errorf("timestamp column = %v", row[9])
	}
}

func TestStatsRow(t *testing.T) {
	t.Parallel()

	row := statsRow(scrape.RunStats{
		Groups:       3,
		Contacts:     120,
		WithUsername: 80,
		WithPhone:    10,
		Errors:       1,
		Duration:     95 * time.Second,
	}, captured)

	if len(row) != 7 {
		t.Fatalf("stats row has %d columns, want 7", len(row))
	}
	want := []any{"2025-03-14 15:09:26", 3, 120, 80, 10, 95, 1}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %d = %v, want %v", i, row[i], want[i])
		}
	}
}

func TestLogRow(t *testing.T) {
	t.Parallel()

	row := logRow(sink.LevelWarn, "Bot", "resolve @gone: not found", captured)
	if len(row) != 5 {
		t.Fatalf("log row has %d columns, want 5", len(row))
	}
	if row[1] != "WARN" || row[2] != "Bot" {
		t.Errorf("tag columns = %v %v", row[1], row[2])
	}
	if row[4] != "" {
		t.Errorf("trailing column = %v, want blank", row[4])
	}
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	var c Config
	c.defaults()
	if c.ContactsSheet == "" || c.StatsSheet == "" || c.LogSheet == "" || c.Source == "" {
		t.Errorf("defaults left blanks: %+v", c)
	}

	c = Config{ContactsSheet: "Members"}
	c.defaults()
	if c.ContactsSheet != "Members" {
		t.Errorf("defaults overwrote explicit sheet name: %q", c.ContactsSheet)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	c := Config{SpreadsheetID: "abc", CredentialsFile: "credentials.json"}
	c.defaults()
	if err := c.validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	if err := (&Config{CredentialsFile: "x"}).validate(); err == nil {
		t.Error("missing spreadsheet_id accepted")
	}
	if err := (&Config{SpreadsheetID: "x"}).validate(); err == nil {
		t.Error("missing credentials_file accepted")
	}
}
