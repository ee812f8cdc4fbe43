package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/aphex18/URL-SHORTENER/internal/auth"
	ws "github.com/aphex18/URL-SHORTENER/internal/websocket"
)

// WebSocketHandler upgrades dashboard connections and registers them with
// the event hub.
type WebSocketHandler struct {
	hub    *ws.Hub
	tokens *auth.TokenManager
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub, tokens *auth.TokenManager) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, tokens: tokens}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// Serve handles the WebSocket connection request. Browsers cannot set an
// Authorization header on the upgrade, so a ?token= query parameter is
// accepted as a fallback credential.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		claims, err := h.tokens.Validate(r.URL.Query().Get("token"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		identity = auth.Identity{UserID: claims.UserID, Email: claims.Email}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, identity.UserID)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
