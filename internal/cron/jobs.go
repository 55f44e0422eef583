package cron

import (
	"context"
	"fmt"
	"log/slog"

	"groupscout/internal/scraper"
	"groupscout/pkg/scrape"
)

// Runner is the subset of the orchestrator needed by collection jobs.
// Defined here to avoid a circular dependency on the scraper package wiring.
type Runner interface {
	RunWith(ctx context.Context, crit scrape.Criteria, targets []string, progress scraper.ProgressFunc) scrape.RunReport
}

// Notifier delivers run summaries to a chat. Implemented by the bot channel.
type Notifier interface {
	SendReport(ctx context.Context, chatID int64, text string) error
}

// CollectionJob runs a pre-configured collection against a fixed target list
// on a schedule, without an operator in the loop.
type CollectionJob struct {
	JobName      string
	ScheduleExpr string
	Targets      []string
	Criteria     scrape.Criteria
	ReportChat   int64 // 0 = no report

	Runner   Runner
	Notifier Notifier
	Logger   *slog.Logger
}

// Compile-time interface check.
var _ Job = (*CollectionJob)(nil)

// Name implements Job.
func (j *CollectionJob) Name() string {
	return "collection:" + j.JobName
}

// Schedule implements Job.
func (j *CollectionJob) Schedule() string {
	return j.ScheduleExpr
}

// Run executes the collection and, when a report chat is configured, delivers
// the summary there.
func (j *CollectionJob) Run(ctx context.Context) error {
	j.Logger.Info("cron: scheduled collection started",
		"job", j.JobName,
		"targets", len(j.Targets),
	)

	report := j.Runner.RunWith(ctx, j.Criteria, j.Targets, nil)

	if j.ReportChat != 0 && j.Notifier != nil {
		if err := j.Notifier.SendReport(ctx, j.ReportChat, report.Summary()); err != nil {
			j.Logger.Warn("cron: report delivery failed",
				"job", j.JobName,
				"chat", j.ReportChat,
				"error", err,
			)
		}
	}

	if report.Err != nil {
		return fmt.Errorf("cron: collection %q: %w", j.JobName, report.Err)
	}
	j.Logger.Info("cron: scheduled collection finished",
		"job", j.JobName,
		"outcome", string(report.Outcome),
		"contacts", report.Stats.Contacts,
	)
	return nil
}
