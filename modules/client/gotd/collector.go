package gotd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gotd/td/tg"

	"groupscout/internal/scraper"
	"groupscout/pkg/scrape"
)

// fetchMultiplier sizes the raw fetch budget relative to the contact bound,
// absorbing filtering losses without paging through the whole member list.
const fetchMultiplier = 2

// Collect implements scraper.Client.
func (c *Client) Collect(ctx context.Context, entity scraper.Entity, target string, crit scrape.Criteria) ([]scrape.Contact, error) {
	api, err := c.raw()
	if err != nil {
		return nil, err
	}

	switch e := entity.(type) {
	case channelEntity:
		return c.collectChannel(ctx, api, e, target, crit)
	case chatEntity:
		return c.collectChat(ctx, api, e, target, crit)
	default:
		return nil, fmt.Errorf("gotd: unsupported entity type %T", entity)
	}
}

// collectChannel pages through a channel's recent members. The fetch budget is
// fetchMultiplier times the contact bound; collection stops at whichever comes
// first, the bound or the budget.
func (c *Client) collectChannel(ctx context.Context, api *tg.Client, e channelEntity, target string, crit scrape.Criteria) ([]scrape.Contact, error) {
	budget := crit.MaxContacts * fetchMultiplier
	input := e.input()

	var out []scrape.Contact
	for offset := 0; offset < budget && len(out) < crit.MaxContacts; {
		limit := min(c.config.PageSize, budget-offset)
		res, err := api.ChannelsGetParticipants(ctx, &tg.ChannelsGetParticipantsRequest{
			Channel: input,
			Filter:  &tg.ChannelParticipantsRecent{},
			Offset:  offset,
			Limit:   limit,
		})
		if err != nil {
			return nil, fmt.Errorf("gotd: participants of %s: %w", target, err)
		}

		page, ok := res.(*tg.ChannelsChannelParticipants)
		if !ok || len(page.Participants) == 0 {
			break
		}
		offset += len(page.Participants)

		now := time.Now()
		for _, uc := range page.Users {
			u, ok := uc.(*tg.User)
			if !ok || !keepUser(u, crit) {
				continue
			}
			out = append(out, contactFromUser(u, target, now))
			if len(out) >= crit.MaxContacts {
				break
			}
			c.pause(ctx)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	c.logger.Debug("channel collected",
		"target", target,
		"entity", e.EntityID(),
		"contacts", len(out),
	)
	return out, nil
}

// collectChat reads a legacy basic group. These deliver the whole participant
// list in one response, no paging.
func (c *Client) collectChat(ctx context.Context, api *tg.Client, e chatEntity, target string, crit scrape.Criteria) ([]scrape.Contact, error) {
	full, err := api.MessagesGetFullChat(ctx, e.chat.ID)
	if err != nil {
		return nil, fmt.Errorf("gotd: full chat %s: %w", target, err)
	}

	now := time.Now()
	var out []scrape.Contact
	for _, uc := range full.Users {
		u, ok := uc.(*tg.User)
		if !ok || !keepUser(u, crit) {
			continue
		}
		out = append(out, contactFromUser(u, target, now))
		if len(out) >= crit.MaxContacts {
			break
		}
		c.pause(ctx)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// keepUser applies the collection filters: deleted accounts are always
// dropped, bots only when excluded, and the username priority drops members
// without a public handle.
func keepUser(u *tg.User, crit scrape.Criteria) bool {
	if u.Deleted {
		return false
	}
	if crit.ExcludeBots && u.Bot {
		return false
	}
	if crit.Priority == scrape.PriorityUsername && u.Username == "" {
		return false
	}
	return true
}

// contactFromUser derives the persisted contact: @-prefixed handle, +-prefixed
// phone, empty strings for absent fields, group label set to the original
// target string.
func contactFromUser(u *tg.User, group string, at time.Time) scrape.Contact {
	c := scrape.Contact{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Group:      group,
		CapturedAt: at,
	}
	if u.Username != "" {
		c.Username = "@" + u.Username
	}
	if u.Phone != "" {
		c.Phone = "+" + strings.TrimPrefix(u.Phone, "+")
	}
	return c
}
