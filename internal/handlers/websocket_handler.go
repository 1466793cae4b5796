package handlers

import (
	"net/http"
	"users-api/internal/utils"
	"users-api/internal/wsnotify"
)

// WebSocketHandler streams user change events. Messages sent by the client
// are read and discarded until the connection drops.
func WebSocketHandler(hub *wsnotify.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := hub.Upgrade(w, r)
		if err != nil {
			utils.LogWarning("Error upgrading websocket: %v", err)
			return
		}
		hub.AddClient(conn)
		defer func() {
			hub.RemoveClient(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
