package gateway

import (
	"encoding/json"
	"net/http"
	"time"
)

// StatusResponse is the JSON response for GET /status.
type StatusResponse struct {
	UptimeSeconds    int64 `json:"uptime_seconds"`
	Telegram         bool  `json:"telegram_connected"`
	ArchivedContacts int   `json:"archived_contacts"`
}

// handleStatus returns an http.HandlerFunc for GET /status.
func (g *Gateway) handleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := StatusResponse{
			UptimeSeconds: int64(time.Since(g.startedAt).Seconds()),
		}

		if g.client != nil {
			resp.Telegram = g.client.Connected()
		}
		if g.archive != nil {
			if n, err := g.archive.ContactCount(r.Context()); err == nil {
				resp.ArchivedContacts = n
			} else {
				g.logger.Warn("archive count failed", "error", err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
