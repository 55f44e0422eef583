package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"groupscout/internal/criteria"
	"groupscout/internal/scraper"
	"groupscout/pkg/scrape"
)

// Callback data values for the criteria keyboard.
const (
	cbCycleMax       = "criteria:max"
	cbToggleBots     = "criteria:bots"
	cbTogglePriority = "criteria:priority"
	cbRun            = "run"
)

const helpText = `Group contact collector.

Commands:
/parse <groups> - prepare a collection run. Groups are @handles, t.me links or numeric IDs, separated by spaces or commas.
/start - this help.

After /parse, adjust the criteria with the buttons and press Run.`

// Runner is the orchestration capability the command surface drives.
type Runner interface {
	Run(ctx context.Context, requesterID int64, targets []string, progress scraper.ProgressFunc) scrape.RunReport
	MaxGroups() int
}

// pendingRun is a prepared target list waiting for the requester to press Run.
type pendingRun struct {
	Targets   []string
	ChatID    int64
	MessageID int
}

// Handler routes bot updates: commands from messages, criteria adjustments
// and run triggers from callback queries.
type Handler struct {
	client *Client
	runner Runner
	store  criteria.Store
	allow  *AllowList
	logger *slog.Logger

	mu      sync.Mutex
	pending map[int64]pendingRun
}

// NewHandler creates a Handler.
func NewHandler(client *Client, runner Runner, store criteria.Store, allow *AllowList, logger *slog.Logger) *Handler {
	return &Handler{
		client:  client,
		runner:  runner,
		store:   store,
		allow:   allow,
		logger:  logger,
		pending: make(map[int64]pendingRun),
	}
}

// HandleUpdate processes one update from the poller.
func (h *Handler) HandleUpdate(u Update) {
	switch {
	case u.Message != nil && u.Message.From != nil:
		h.handleMessage(u.Message)
	case u.CallbackQuery != nil:
		h.handleCallback(u.CallbackQuery)
	}
}

func (h *Handler) handleMessage(msg *Message) {
	if !h.allow.IsAllowed(msg.From.ID) {
		h.logger.Debug("message denied by allow list", "sender", msg.From.ID)
		return
	}

	cmd, args := parseCommand(msg.Text)
	switch cmd {
	case "start", "help":
		h.send(msg.Chat.ID, helpText, nil)
	case "parse":
		h.handleParse(msg, args)
	case "":
		// Plain text outside a command flow; remind about /parse.
		h.send(msg.Chat.ID, "Send /parse with a list of groups to begin.", nil)
	default:
		h.send(msg.Chat.ID, fmt.Sprintf("Unknown command /%s. Send /start for help.", cmd), nil)
	}
}

// handleParse validates the target list and shows the criteria message.
func (h *Handler) handleParse(msg *Message, args string) {
	targets := splitTargets(args)
	if len(targets) == 0 {
		h.send(msg.Chat.ID, "Usage: /parse @group1 @group2 ...", nil)
		return
	}
	if max := h.runner.MaxGroups(); len(targets) > max {
		h.send(msg.Chat.ID, fmt.Sprintf("Too many groups: %d. At most %d per run.", len(targets), max), nil)
		return
	}

	_ = h.client.SendChatAction(context.Background(), msg.Chat.ID, "typing")

	crit := h.store.Get(msg.From.ID)
	sent, err := h.client.SendMessage(context.Background(), SendMessageRequest{
		ChatID:      msg.Chat.ID,
		Text:        criteriaText(crit, targets),
		ReplyMarkup: criteriaKeyboard(crit),
	})
	if err != nil {
		h.logger.Error("criteria message failed", "error", err)
		return
	}

	h.mu.Lock()
	h.pending[msg.From.ID] = pendingRun{
		Targets:   targets,
		ChatID:    msg.Chat.ID,
		MessageID: sent.MessageID,
	}
	h.mu.Unlock()
}

func (h *Handler) handleCallback(cq *CallbackQuery) {
	ctx := context.Background()

	if !h.allow.IsAllowed(cq.From.ID) {
		h.logger.Debug("callback denied by allow list", "sender", cq.From.ID)
		h.answer(ctx, cq.ID, "Not allowed.")
		return
	}

	h.mu.Lock()
	pending, ok := h.pending[cq.From.ID]
	h.mu.Unlock()
	if !ok || cq.Message == nil {
		h.answer(ctx, cq.ID, "No prepared run. Send /parse first.")
		return
	}

	switch cq.Data {
	case cbCycleMax:
		h.adjust(ctx, cq, pending, func(c *scrape.Criteria) { c.CycleMaxContacts() })
	case cbToggleBots:
		h.adjust(ctx, cq, pending, func(c *scrape.Criteria) { c.ToggleBots() })
	case cbTogglePriority:
		h.adjust(ctx, cq, pending, func(c *scrape.Criteria) { c.TogglePriority() })
	case cbRun:
		h.answer(ctx, cq.ID, "Starting...")
		go h.runAndReport(cq.From.ID, pending)
	default:
		h.answer(ctx, cq.ID, "")
	}
}

// adjust applies a criteria mutation and re-renders the criteria message.
func (h *Handler) adjust(ctx context.Context, cq *CallbackQuery, pending pendingRun, fn func(*scrape.Criteria)) {
	crit := h.store.Update(cq.From.ID, fn)
	h.answer(ctx, cq.ID, "")

	if _, err := h.client.EditMessageText(ctx, EditMessageTextRequest{
		ChatID:      pending.ChatID,
		MessageID:   pending.MessageID,
		Text:        criteriaText(crit, pending.Targets),
		ReplyMarkup: criteriaKeyboard(crit),
	}); err != nil {
		h.logger.Warn("criteria edit failed", "error", err)
	}
}

// runAndReport executes the run and streams progress into the criteria
// message. Runs in its own goroutine; the poller keeps serving updates, and a
// second Run press is answered by the orchestrator's run gate.
func (h *Handler) runAndReport(requesterID int64, pending pendingRun) {
	ctx := context.Background()

	progress := func(text string) {
		h.edit(ctx, pending.ChatID, pending.MessageID, text)
	}

	report := h.runner.Run(ctx, requesterID, pending.Targets, progress)
	h.edit(ctx, pending.ChatID, pending.MessageID, report.Summary())

	h.logger.Info("run reported",
		"requester", requesterID,
		"outcome", string(report.Outcome),
		"contacts", report.Stats.Contacts,
	)
}

func (h *Handler) send(chatID int64, text string, markup *InlineKeyboardMarkup) {
	if _, err := h.client.SendMessage(context.Background(), SendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	}); err != nil {
		h.logger.Error("send failed", "chat", chatID, "error", err)
	}
}

func (h *Handler) edit(ctx context.Context, chatID int64, messageID int, text string) {
	if _, err := h.client.EditMessageText(ctx, EditMessageTextRequest{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	}); err != nil {
		h.logger.Warn("edit failed", "chat", chatID, "error", err)
	}
}

func (h *Handler) answer(ctx context.Context, callbackID, text string) {
	if err := h.client.AnswerCallbackQuery(ctx, AnswerCallbackQueryRequest{
		CallbackQueryID: callbackID,
		Text:            text,
	}); err != nil {
		h.logger.Debug("answerCallbackQuery failed", "error", err)
	}
}

// parseCommand splits "/cmd@bot args" into the command name and its argument
// string. Non-command text yields an empty command.
func parseCommand(text string) (cmd, args string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	rest := text[1:]
	if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
		cmd, args = rest[:i], strings.TrimSpace(rest[i+1:])
	} else {
		cmd = rest
	}
	if i := strings.Index(cmd, "@"); i >= 0 {
		cmd = cmd[:i]
	}
	return strings.ToLower(cmd), args
}

// splitTargets splits the /parse argument on commas and whitespace.
func splitTargets(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// criteriaText renders the prepared-run message body.
func criteriaText(crit scrape.Criteria, targets []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ready to collect from %d group(s):\n%s\n\n", len(targets), strings.Join(targets, ", "))
	fmt.Fprintf(&b, "Max contacts per group: %d\n", crit.MaxContacts)
	fmt.Fprintf(&b, "Bots: %s\n", includedLabel(!crit.ExcludeBots))
	fmt.Fprintf(&b, "Priority: %s", priorityLabel(crit.Priority))
	return b.String()
}

// criteriaKeyboard renders the adjustment buttons for the current settings.
func criteriaKeyboard(crit scrape.Criteria) *InlineKeyboardMarkup {
	return &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{
			{{Text: fmt.Sprintf("Max contacts: %d", crit.MaxContacts), CallbackData: cbCycleMax}},
			{{Text: "Bots: " + includedLabel(!crit.ExcludeBots), CallbackData: cbToggleBots}},
			{{Text: "Priority: " + priorityLabel(crit.Priority), CallbackData: cbTogglePriority}},
			{{Text: "Run", CallbackData: cbRun}},
		},
	}
}

func includedLabel(included bool) string {
	if included {
		return "included"
	}
	return "excluded"
}

func priorityLabel(p scrape.Priority) string {
	if p == scrape.PriorityUsername {
		return "with username only"
	}
	return "any member"
}
