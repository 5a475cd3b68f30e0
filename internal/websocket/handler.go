package websocket

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/jrfournier/carttally/internal/metrics"
)

// Handle returns an HTTP handler that upgrades connections to WebSocket and
// runs them as Hub clients.
func Handle(hub *Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			// The app serves personal devices on a local network; any origin is fine.
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Warn("websocket accept", "error", err)
			return
		}

		metrics.WebsocketClients.Inc()
		defer metrics.WebsocketClients.Dec()

		client := NewClient(hub, conn)
		client.Run(r.Context())
	}
}
