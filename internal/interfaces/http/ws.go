package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/irfon92/carbon-dashboard/internal/alerts"
)

// alertPushInterval is how often connected clients receive a fresh
// alert payload.
const alertPushInterval = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return strings.Contains(origin, "localhost") || strings.Contains(origin, "127.0.0.1")
	},
}

// AlertStream upgrades the connection and pushes the current alert
// feed immediately and then on every interval tick until the client
// disconnects.
func (h *Handlers) AlertStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.metrics.WSClients.Inc()
	defer h.metrics.WSClients.Dec()

	// Drain client frames so close messages are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.pushAlerts(conn); err != nil {
		return
	}

	ticker := time.NewTicker(alertPushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := h.pushAlerts(conn); err != nil {
				return
			}
		}
	}
}

func (h *Handlers) pushAlerts(conn *websocket.Conn) error {
	snap := h.store.Current()
	derived, total := alerts.Derive(snap.Commitments, snap.Funding, time.Now().UTC())

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(AlertsResponse{
		Alerts:    derived,
		Total:     total,
		Generated: time.Now().UTC(),
	})
}
