// Package scraper contains the orchestration core: it sequences group
// resolution and participant collection across a run, aggregates statistics,
// and drives the persistence sinks. The messaging client behind it is
// abstracted to a small capability interface so the engine can be tested
// without a live session.
package scraper

import (
	"context"
	"errors"

	"groupscout/pkg/scrape"
)

// Sentinel errors surfaced to the command interface.
var (
	// ErrNoTargets indicates the requester supplied no groups.
	ErrNoTargets = errors.New("scraper: no target groups")

	// ErrTooManyGroups indicates the target list exceeds the per-run ceiling.
	// Returned before any client call is made.
	ErrTooManyGroups = errors.New("scraper: too many groups for one run")

	// ErrRunActive indicates another run currently owns the client handle.
	// Runs are strictly serialised; concurrent requests are rejected, not
	// queued, so the requester gets an immediate answer.
	ErrRunActive = errors.New("scraper: a run is already in progress")

	// ErrNotConnected indicates the messaging client has no live session.
	ErrNotConnected = errors.New("scraper: client not connected")

	// ErrNoDiscussionGroup indicates a broadcast channel has no linked
	// discussion group and therefore no member list to collect.
	ErrNoDiscussionGroup = errors.New("scraper: channel has no discussion group")
)

// Entity is a resolved reference to a chat whose members can be collected.
// Concrete entities are owned by the client implementation; the orchestrator
// only ever passes them back into Collect.
type Entity interface {
	// EntityID is the numeric chat identifier.
	EntityID() int64

	// EntityTitle is the chat title, used for progress messages.
	EntityTitle() string
}

// Client is the capability surface the orchestrator requires from the
// messaging client. The production implementation lives in
// modules/client/gotd and holds the single shared MTProto session.
type Client interface {
	// Connected reports whether a live session is available.
	Connected() bool

	// Resolve maps a requester-supplied target (handle, t.me link, or
	// numeric ID) to a collectable entity. Broadcast channels are
	// substituted by their linked discussion group; a channel without one
	// fails with ErrNoDiscussionGroup.
	Resolve(ctx context.Context, target string) (Entity, error)

	// Collect pages through the entity's members and returns at most
	// criteria.MaxContacts contacts after filtering. The group label of
	// every returned contact equals the given target string.
	Collect(ctx context.Context, entity Entity, target string, criteria scrape.Criteria) ([]scrape.Contact, error)
}
