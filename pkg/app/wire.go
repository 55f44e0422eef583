package app

import (
	"fmt"
	"log/slog"

	"groupscout/internal/config"
	"groupscout/internal/core"
	"groupscout/internal/criteria"
	"groupscout/internal/cron"
	"groupscout/internal/scraper"
	"groupscout/internal/sink"
	"groupscout/pkg/scrape"
)

// wire builds the orchestration layer on top of the loaded modules: the sink
// fanout, the criteria store, the orchestrator, and the scheduler for
// configured runs. Must be called after LoadModules and before Start.
func wire(
	application *core.App,
	appCtx *core.AppContext,
	ids []string,
	cfg *config.Config,
	logger *slog.Logger,
) (*cron.Scheduler, error) {
	// Discover sinks among the loaded modules.
	var sinks []sink.Sink
	for _, id := range ids {
		mod, ok := application.Module(id)
		if !ok {
			continue
		}
		if s, ok := mod.(sink.Sink); ok {
			sinks = append(sinks, s)
			logger.Info("wired sink", "sink", s.Name())
		}
	}
	if len(sinks) == 0 {
		return nil, fmt.Errorf("at least one sink module is required")
	}
	fan := sink.NewFanout(logger, sinks...)

	svc, ok := appCtx.Service("scraper.client")
	if !ok {
		return nil, fmt.Errorf("the client.gotd module is required")
	}
	client, ok := svc.(scraper.Client)
	if !ok {
		return nil, fmt.Errorf("scraper.client has unexpected type %T", svc)
	}

	store := criteria.NewMemoryStore()
	orch := scraper.New(client, store, fan, logger, scraper.Options{})

	// The bot channel resolves these at Start.
	appCtx.RegisterService("scraper.runner", orch)
	appCtx.RegisterService("criteria.store", store)

	return buildScheduler(appCtx, cfg.Scheduled, orch, logger)
}

// buildScheduler registers one collection job per configured scheduled run.
// Returns nil when nothing is scheduled.
func buildScheduler(
	appCtx *core.AppContext,
	runs []config.ScheduledRun,
	orch *scraper.Orchestrator,
	logger *slog.Logger,
) (*cron.Scheduler, error) {
	if len(runs) == 0 {
		return nil, nil
	}

	var notifier cron.Notifier
	if svc, ok := appCtx.Service("channel.notifier"); ok {
		notifier, _ = svc.(cron.Notifier)
	}

	scheduler := cron.NewScheduler(logger)
	for _, run := range runs {
		if run.ReportChat != 0 && notifier == nil {
			logger.Warn("scheduled run has a report chat but no channel module is loaded",
				"job", run.Name,
			)
		}
		job := &cron.CollectionJob{
			JobName:      run.Name,
			ScheduleExpr: run.Schedule,
			Targets:      run.Targets,
			Criteria:     scheduledCriteria(run),
			ReportChat:   run.ReportChat,
			Runner:       orch,
			Notifier:     notifier,
			Logger:       logger,
		}
		if err := scheduler.RegisterJob(job); err != nil {
			return nil, err
		}
	}
	return scheduler, nil
}

// scheduledCriteria maps the per-run config knobs onto collection criteria.
func scheduledCriteria(run config.ScheduledRun) scrape.Criteria {
	crit := scrape.DefaultCriteria()
	if run.MaxContacts > 0 {
		crit.MaxContacts = run.MaxContacts
	}
	crit.ExcludeBots = run.ExcludeBots
	if run.UsernamesOnly {
		crit.Priority = scrape.PriorityUsername
	}
	return crit
}
