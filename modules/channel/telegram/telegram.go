package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"groupscout/internal/core"
	"groupscout/internal/criteria"
)

func init() {
	core.RegisterModule(&Telegram{})
}

// Compile-time interface guards.
var (
	_ core.Configurable = (*Telegram)(nil)
	_ core.Provisioner  = (*Telegram)(nil)
	_ core.Validator    = (*Telegram)(nil)
	_ core.Starter      = (*Telegram)(nil)
	_ core.Stopper      = (*Telegram)(nil)
)

// Telegram is the bot command module.
type Telegram struct {
	config    Config
	client    *Client
	logger    *slog.Logger
	allowList *AllowList
	appCtx    *core.AppContext

	handler *Handler
	poller  *Poller
	botUser *User
}

// ModuleInfo implements core.Module.
func (t *Telegram) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "channel.telegram",
		New: func() core.Module { return &Telegram{} },
	}
}

// Configure implements core.Configurable.
func (t *Telegram) Configure(node *yaml.Node) error {
	if err := node.Decode(&t.config); err != nil {
		return fmt.Errorf("telegram: decode config: %w", err)
	}
	t.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (t *Telegram) Provision(ctx *core.AppContext) error {
	t.appCtx = ctx
	t.logger = ctx.Logger
	t.client = NewClient(t.config.Token, t.config.APIURL)
	t.allowList = NewAllowList(t.config.AllowUsers)
	ctx.RegisterService("channel.notifier", t)
	return nil
}

// Validate implements core.Validator.
func (t *Telegram) Validate() error {
	return t.config.validate()
}

// Start implements core.Starter. It validates the bot token, resolves the
// orchestration services the wiring layer registered, and starts polling.
func (t *Telegram) Start() error {
	user, err := t.client.GetMe(context.Background())
	if err != nil {
		return fmt.Errorf("telegram: getMe failed (check token): %w", err)
	}
	t.botUser = user
	t.logger.Info("telegram bot authenticated",
		"id", user.ID,
		"username", user.Username,
	)

	runner, store, err := t.resolveServices()
	if err != nil {
		return err
	}

	t.handler = NewHandler(t.client, runner, store, t.allowList, t.logger)
	t.poller = NewPoller(t.client, t.handler.HandleUpdate, t.logger, t.config)
	t.poller.Start()
	t.logger.Info("telegram polling started", "timeout", t.config.PollingTimeout)
	return nil
}

// resolveServices fetches the orchestrator and the criteria store from the
// service registry.
func (t *Telegram) resolveServices() (Runner, criteria.Store, error) {
	svc, ok := t.appCtx.Service("scraper.runner")
	if !ok {
		return nil, nil, errors.New("telegram: scraper.runner service not found (wiring incomplete)")
	}
	runner, ok := svc.(Runner)
	if !ok {
		return nil, nil, fmt.Errorf("telegram: scraper.runner has unexpected type %T", svc)
	}

	svc, ok = t.appCtx.Service("criteria.store")
	if !ok {
		return nil, nil, errors.New("telegram: criteria.store service not found (wiring incomplete)")
	}
	store, ok := svc.(criteria.Store)
	if !ok {
		return nil, nil, fmt.Errorf("telegram: criteria.store has unexpected type %T", svc)
	}
	return runner, store, nil
}

// Stop implements core.Stopper.
func (t *Telegram) Stop(_ context.Context) error {
	t.logger.Info("telegram channel stopping")
	if t.poller != nil {
		t.poller.Stop()
	}
	return nil
}

// SendReport delivers a run summary to a chat. Used by scheduled runs, which
// have no originating message to edit.
func (t *Telegram) SendReport(ctx context.Context, chatID int64, text string) error {
	_, err := t.client.SendMessage(ctx, SendMessageRequest{
		ChatID: chatID,
		Text:   text,
	})
	return err
}
