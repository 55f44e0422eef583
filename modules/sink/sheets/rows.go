package sheets

import (
	"time"

	"groupscout/internal/sink"
	"groupscout/pkg/scrape"
)

// timeLayout is the timestamp format the spreadsheet formulas expect.
const timeLayout = "2006-01-02 15:04:05"

// contactRow renders one contact as a 10-column sheet row. Columns 7 to 9 are
// reserved for the operator's own formulas and stay at their seed values.
func contactRow(c scrape.Contact) []any {
	return []any{
		c.ID,
		c.Username,
		c.Phone,
		c.FirstName,
		c.LastName,
		c.Group,
		0,
		"",
		"",
		c.CapturedAt.Format(timeLayout),
	}
}

// statsRow renders one run's counters as a 7-column sheet row.
func statsRow(s scrape.RunStats, at time.Time) []any {
	return []any{
		at.Format(timeLayout),
		s.Groups,
		s.Contacts,
		s.WithUsername,
		s.WithPhone,
		int(s.Duration.Seconds()),
		s.Errors,
	}
}

// logRow renders one log line as a 5-column sheet row. The trailing blank
// keeps the row width stable for the operator's filters.
func logRow(level sink.Level, source, msg string, at time.Time) []any {
	return []any{
		at.Format(timeLayout),
		string(level),
		source,
		msg,
		"",
	}
}
