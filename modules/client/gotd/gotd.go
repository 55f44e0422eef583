package gotd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gotd/contrib/middleware/floodwait"
	"github.com/gotd/contrib/middleware/ratelimit"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v3"

	"groupscout/internal/core"
	"groupscout/internal/scraper"
)

func init() {
	core.RegisterModule(&Client{})
}

// Compile-time interface guards.
var (
	_ scraper.Client    = (*Client)(nil)
	_ core.Configurable = (*Client)(nil)
	_ core.Provisioner  = (*Client)(nil)
	_ core.Validator    = (*Client)(nil)
	_ core.Starter      = (*Client)(nil)
	_ core.Stopper      = (*Client)(nil)
)

// Client owns the shared MTProto user session. One instance serves the whole
// process; the orchestrator serialises runs over it.
type Client struct {
	config      Config
	logger      *slog.Logger
	sessionPath string

	api       atomic.Pointer[tg.Client]
	connected atomic.Bool

	cancel context.CancelFunc
	done   chan struct{}
}

// ModuleInfo implements core.Module.
func (c *Client) ModuleInfo() core.ModuleInfo {
	return core.ModuleInfo{
		ID:  "client.gotd",
		New: func() core.Module { return &Client{} },
	}
}

// Configure implements core.Configurable.
func (c *Client) Configure(node *yaml.Node) error {
	if err := node.Decode(&c.config); err != nil {
		return fmt.Errorf("gotd: decode config: %w", err)
	}
	c.config.defaults()
	return nil
}

// Provision implements core.Provisioner.
func (c *Client) Provision(ctx *core.AppContext) error {
	c.logger = ctx.Logger
	c.sessionPath = c.config.SessionFile
	if c.sessionPath == "" {
		c.sessionPath = DefaultSessionPath(ctx.DataDir)
	}
	ctx.RegisterService("scraper.client", c)
	return nil
}

// Validate implements core.Validator.
func (c *Client) Validate() error {
	return c.config.validate()
}

// Start implements core.Starter. The connection is established in the
// background; Connected() flips once the session is authenticated.
func (c *Client) Start() error {
	runCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.done = make(chan struct{})
	go c.runLoop(runCtx)
	c.logger.Info("mtproto client starting", "session", c.sessionPath)
	return nil
}

// Stop implements core.Stopper.
func (c *Client) Stop(ctx context.Context) error {
	if c.cancel == nil {
		return nil
	}
	c.cancel()
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Connected implements scraper.Client.
func (c *Client) Connected() bool {
	return c.connected.Load()
}

// raw returns the live API handle or ErrNotConnected.
func (c *Client) raw() (*tg.Client, error) {
	if api := c.api.Load(); api != nil && c.connected.Load() {
		return api, nil
	}
	return nil, scraper.ErrNotConnected
}

// runLoop keeps one session alive, reconnecting with capped backoff when it
// drops. Exits only when the start context is cancelled.
func (c *Client) runLoop(ctx context.Context) {
	defer close(c.done)

	backoff := time.Second
	for {
		err := c.runOnce(ctx)
		c.connected.Store(false)
		if ctx.Err() != nil {
			return
		}
		c.logger.Warn("mtproto session dropped, reconnecting",
			"error", err,
			"backoff", backoff,
		)
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > c.config.ReconnectMax {
			backoff = c.config.ReconnectMax
		}
	}
}

// runOnce runs a single session until it fails or the context is cancelled.
func (c *Client) runOnce(ctx context.Context) error {
	waiter := floodwait.NewWaiter().WithCallback(func(ctx context.Context, wait floodwait.FloodWait) {
		c.logger.Warn("flood wait", "duration", wait.Duration)
	})

	client := telegram.NewClient(c.config.APIID, c.config.APIHash, telegram.Options{
		Logger:         c.wireLogger(),
		SessionStorage: &telegram.FileSessionStorage{Path: c.sessionPath},
		Middlewares: []telegram.Middleware{
			waiter,
			ratelimit.New(rate.Every(c.config.RateEvery), c.config.RateBurst),
		},
	})

	return waiter.Run(ctx, func(ctx context.Context) error {
		return client.Run(ctx, func(ctx context.Context) error {
			flow := auth.NewFlow(terminalAuth{phone: c.config.Phone}, auth.SendCodeOptions{})
			if err := client.Auth().IfNecessary(ctx, flow); err != nil {
				return fmt.Errorf("auth: %w", err)
			}

			self, err := client.Self(ctx)
			if err != nil {
				return fmt.Errorf("self: %w", err)
			}

			c.api.Store(client.API())
			c.connected.Store(true)
			defer c.connected.Store(false)

			c.logger.Info("mtproto session ready",
				"id", self.ID,
				"username", self.Username,
			)

			<-ctx.Done()
			return ctx.Err()
		})
	})
}

// wireLogger builds the zap logger the MTProto library writes its wire
// diagnostics to. Kept out of the main log stream: it is chatty and only
// useful when debugging the transport.
func (c *Client) wireLogger() *zap.Logger {
	if c.config.WireLog == "" {
		return zap.NewNop()
	}
	w := zapcore.AddSync(&lumberjack.Logger{
		Filename:   c.config.WireLog,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     7, // days
	})
	return zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		w,
		zap.InfoLevel,
	))
}

// pause sleeps the per-item delay, honoring cancellation.
func (c *Client) pause(ctx context.Context) {
	if c.config.ItemDelay <= 0 {
		return
	}
	timer := time.NewTimer(c.config.ItemDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// DefaultSessionPath returns the session file location under the data
// directory.
func DefaultSessionPath(dataDir string) string {
	return filepath.Join(dataDir, "telegram", "session.json")
}
