package gotd

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gotd/td/tg"

	"groupscout/internal/scraper"
)

// usernamePattern matches public Telegram handles.
var usernamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{3,31}$`)

// channelEntity wraps a channel or megagroup resolved for collection.
type channelEntity struct {
	ch *tg.Channel
}

func (e channelEntity) EntityID() int64     { return e.ch.ID }
func (e channelEntity) EntityTitle() string { return e.ch.Title }

func (e channelEntity) input() *tg.InputChannel {
	return &tg.InputChannel{ChannelID: e.ch.ID, AccessHash: e.ch.AccessHash}
}

// chatEntity wraps a legacy basic group.
type chatEntity struct {
	chat *tg.Chat
}

func (e chatEntity) EntityID() int64     { return e.chat.ID }
func (e chatEntity) EntityTitle() string { return e.chat.Title }

// targetRef is a parsed requester-supplied target: a public handle or a
// numeric legacy-chat ID, never both.
type targetRef struct {
	Username string
	ChatID   int64
}

// parseTarget normalises the forms requesters paste: @handle, t.me links with
// or without scheme, bare handles and numeric IDs. Private invite links carry
// no resolvable handle and are rejected up front.
func parseTarget(target string) (targetRef, error) {
	s := strings.TrimSpace(target)
	if s == "" {
		return targetRef{}, errors.New("gotd: empty target")
	}

	for _, prefix := range []string{"https://t.me/", "http://t.me/", "t.me/"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimPrefix(s, prefix)
			break
		}
	}
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimPrefix(s, "@")

	if s == "" {
		return targetRef{}, fmt.Errorf("gotd: no group in target %q", target)
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "joinchat/") {
		return targetRef{}, fmt.Errorf("gotd: private invite links are not supported: %s", target)
	}

	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		if id < 0 {
			id = -id
		}
		return targetRef{ChatID: id}, nil
	}

	if !usernamePattern.MatchString(s) {
		return targetRef{}, fmt.Errorf("gotd: invalid group handle %q", target)
	}
	return targetRef{Username: s}, nil
}

// Resolve implements scraper.Client.
func (c *Client) Resolve(ctx context.Context, target string) (scraper.Entity, error) {
	api, err := c.raw()
	if err != nil {
		return nil, err
	}

	ref, err := parseTarget(target)
	if err != nil {
		return nil, err
	}
	if ref.Username != "" {
		return c.resolveUsername(ctx, api, ref.Username)
	}
	return c.resolveChatID(ctx, api, ref.ChatID)
}

func (c *Client) resolveUsername(ctx context.Context, api *tg.Client, username string) (scraper.Entity, error) {
	res, err := api.ContactsResolveUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("gotd: resolve @%s: %w", username, err)
	}

	for _, chat := range res.Chats {
		switch v := chat.(type) {
		case *tg.Channel:
			if v.Broadcast {
				return c.linkedDiscussion(ctx, api, v)
			}
			return channelEntity{v}, nil
		case *tg.Chat:
			return chatEntity{v}, nil
		}
	}
	return nil, fmt.Errorf("gotd: @%s is not a group or channel", username)
}

// linkedDiscussion substitutes a broadcast channel by its linked discussion
// group. Channels have no collectable member list of their own; the linked
// group is where the audience is reachable.
func (c *Client) linkedDiscussion(ctx context.Context, api *tg.Client, ch *tg.Channel) (scraper.Entity, error) {
	full, err := api.ChannelsGetFullChannel(ctx, &tg.InputChannel{
		ChannelID:  ch.ID,
		AccessHash: ch.AccessHash,
	})
	if err != nil {
		return nil, fmt.Errorf("gotd: full channel %s: %w", ch.Title, err)
	}

	chFull, ok := full.FullChat.(*tg.ChannelFull)
	if !ok {
		return nil, fmt.Errorf("gotd: unexpected full chat type %T for %s", full.FullChat, ch.Title)
	}

	linked, ok := chFull.GetLinkedChatID()
	if !ok {
		return nil, scraper.ErrNoDiscussionGroup
	}

	// The linked group is delivered in the same response's chat list.
	for _, chat := range full.Chats {
		if g, ok := chat.(*tg.Channel); ok && g.ID == linked {
			c.logger.Debug("substituted discussion group",
				"channel", ch.Title,
				"group", g.Title,
			)
			return channelEntity{g}, nil
		}
	}
	return nil, fmt.Errorf("gotd: linked group %d of %s missing from response", linked, ch.Title)
}

func (c *Client) resolveChatID(ctx context.Context, api *tg.Client, id int64) (scraper.Entity, error) {
	res, err := api.MessagesGetChats(ctx, []int64{id})
	if err != nil {
		return nil, fmt.Errorf("gotd: get chat %d: %w", id, err)
	}

	for _, chat := range res.GetChats() {
		if v, ok := chat.(*tg.Chat); ok && v.ID == id {
			if v.Deactivated {
				return nil, fmt.Errorf("gotd: chat %d is deactivated", id)
			}
			return chatEntity{v}, nil
		}
	}
	return nil, fmt.Errorf("gotd: chat %d not found", id)
}
