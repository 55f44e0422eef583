package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"groupscout/internal/criteria"
	"groupscout/internal/sink"
	"groupscout/pkg/scrape"
)

// Defaults for the orchestration loop.
const (
	DefaultMaxGroups = 10

	defaultDelayMin = 2 * time.Second
	defaultDelayMax = 5 * time.Second
)

// Options tunes an Orchestrator. The zero value uses the defaults above.
type Options struct {
	// MaxGroups bounds how many groups one run may request.
	MaxGroups int

	// DelayMin/DelayMax bound the randomised pause between groups. The
	// randomisation makes successive requests look less mechanical to the
	// provider; it is not a throughput knob.
	DelayMin time.Duration
	DelayMax time.Duration

	// Sleep is swapped out in tests. Defaults to a context-aware sleep.
	Sleep func(ctx context.Context, d time.Duration)
}

func (o *Options) defaults() {
	if o.MaxGroups <= 0 {
		o.MaxGroups = DefaultMaxGroups
	}
	if o.DelayMin <= 0 {
		o.DelayMin = defaultDelayMin
	}
	if o.DelayMax < o.DelayMin {
		o.DelayMax = defaultDelayMax
	}
	if o.Sleep == nil {
		o.Sleep = sleepCtx
	}
}

// ProgressFunc receives interim progress text after each group. May be nil.
type ProgressFunc func(text string)

// Orchestrator sequences one scrape run at a time over the shared client.
type Orchestrator struct {
	client   Client
	store    criteria.Store
	sinks    *sink.Fanout
	logger   *slog.Logger
	opts     Options
	runSlot  chan struct{}
}

// New creates an Orchestrator.
func New(client Client, store criteria.Store, sinks *sink.Fanout, logger *slog.Logger, opts Options) *Orchestrator {
	opts.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	slot := make(chan struct{}, 1)
	slot <- struct{}{}
	return &Orchestrator{
		client:  client,
		store:   store,
		sinks:   sinks,
		logger:  logger,
		opts:    opts,
		runSlot: slot,
	}
}

// MaxGroups returns the per-run group ceiling, for the command surface.
func (o *Orchestrator) MaxGroups() int { return o.opts.MaxGroups }

// Run executes one scrape for the requester under their current criteria.
// It always returns a report; the outcome field says how it ended.
func (o *Orchestrator) Run(ctx context.Context, requesterID int64, targets []string, progress ProgressFunc) scrape.RunReport {
	return o.RunWith(ctx, o.store.Get(requesterID), targets, progress)
}

// RunWith executes one scrape under explicit criteria. Used by Run and by
// scheduled jobs that carry their own settings.
func (o *Orchestrator) RunWith(ctx context.Context, crit scrape.Criteria, targets []string, progress ProgressFunc) (report scrape.RunReport) {
	if len(targets) == 0 {
		return failedReport(ErrNoTargets)
	}
	if len(targets) > o.opts.MaxGroups {
		return failedReport(fmt.Errorf("%w: got %d, max %d", ErrTooManyGroups, len(targets), o.opts.MaxGroups))
	}

	select {
	case <-o.runSlot:
	default:
		return failedReport(ErrRunActive)
	}
	defer func() { o.runSlot <- struct{}{} }()

	if !o.client.Connected() {
		return failedReport(ErrNotConnected)
	}

	start := time.Now()

	// One recovery point for the whole loop: anything unexpected becomes a
	// failed report instead of taking the process down. Contacts collected
	// before the failure are not flushed.
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("run panicked", "panic", r)
			report = failedReport(fmt.Errorf("scraper: run aborted: %v", r))
			metricRuns.WithLabelValues(string(scrape.OutcomeFailed)).Inc()
		}
	}()

	var (
		all    []scrape.Contact
		stats  scrape.RunStats
		groups []scrape.GroupResult
	)
	stats.Groups = len(targets)

	for i, target := range targets {
		o.reportProgress(progress, fmt.Sprintf("Group %d/%d: %s", i+1, len(targets), target))

		contacts := o.collectGroup(ctx, target, crit)
		if contacts == nil {
			stats.Errors++
			metricGroupFailures.Inc()
			groups = append(groups, scrape.GroupResult{Target: target, Failed: true})
		} else {
			all = append(all, contacts...)
			stats.Tally(contacts)
			groups = append(groups, scrape.GroupResult{Target: target, Contacts: len(contacts)})
		}

		o.reportProgress(progress, fmt.Sprintf("%s: %d contacts (total %d)", target, len(contacts), len(all)))

		if i < len(targets)-1 {
			o.opts.Sleep(ctx, o.groupDelay())
		}
	}

	stats.Duration = time.Since(start)
	report = scrape.RunReport{Outcome: scrape.OutcomeSuccess, Stats: stats, Groups: groups}

	if len(all) > 0 {
		o.reportProgress(progress, "Saving…")
		if err := o.persist(ctx, all, stats); err != nil {
			report.Outcome = scrape.OutcomePartial
			report.PersistErr = err
		}
	}

	o.logger.Info("run finished",
		"outcome", string(report.Outcome),
		"groups", stats.Groups,
		"contacts", stats.Contacts,
		"errors", stats.Errors,
		"duration", stats.Duration,
	)
	o.sinks.Log(ctx, sink.LevelInfo, fmt.Sprintf("run finished: %d contacts from %d groups", stats.Contacts, stats.Groups))

	metricRuns.WithLabelValues(string(report.Outcome)).Inc()
	metricContacts.Add(float64(stats.Contacts))
	metricRunDuration.Observe(stats.Duration.Seconds())

	return report
}

// collectGroup resolves and collects one group. Errors stop here: a failed
// group yields nil and the run moves on.
func (o *Orchestrator) collectGroup(ctx context.Context, target string, crit scrape.Criteria) []scrape.Contact {
	entity, err := o.client.Resolve(ctx, target)
	if err != nil {
		o.logger.Warn("group resolution failed", "target", target, "error", err)
		o.sinks.Log(ctx, sink.LevelWarn, fmt.Sprintf("resolve %s: %v", target, err))
		return nil
	}

	contacts, err := o.client.Collect(ctx, entity, target, crit)
	if err != nil {
		o.logger.Warn("participant collection failed",
			"target", target,
			"entity", entity.EntityID(),
			"error", err,
		)
		o.sinks.Log(ctx, sink.LevelWarn, fmt.Sprintf("collect %s: %v", target, err))
		return nil
	}

	// Distinguish "failed" from "legitimately empty".
	if contacts == nil {
		contacts = []scrape.Contact{}
	}
	return contacts
}

// persist flushes the batch and the stats row in one pass. The stats row is
// still attempted when the contact write fails, so the operator can see the
// run happened.
func (o *Orchestrator) persist(ctx context.Context, contacts []scrape.Contact, stats scrape.RunStats) error {
	writeErr := o.sinks.WriteContacts(ctx, contacts)
	statsErr := o.sinks.WriteStats(ctx, stats)
	if writeErr != nil {
		return writeErr
	}
	return statsErr
}

func (o *Orchestrator) reportProgress(progress ProgressFunc, text string) {
	if progress != nil {
		progress(text)
	}
}

// groupDelay picks a random pause within [DelayMin, DelayMax].
func (o *Orchestrator) groupDelay() time.Duration {
	span := o.opts.DelayMax - o.opts.DelayMin
	if span <= 0 {
		return o.opts.DelayMin
	}
	return o.opts.DelayMin + time.Duration(rand.Int63n(int64(span)))
}

func failedReport(err error) scrape.RunReport {
	return scrape.RunReport{Outcome: scrape.OutcomeFailed, Err: err}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
