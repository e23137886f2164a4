package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches one observer connection to the hub. sessionFilter may
// be empty to watch all sessions.
func ServeWs(hub *Hub, c *websocket.Conn, sessionFilter string) {
	client := &Client{Hub: hub, Conn: c, SessionFilter: sessionFilter, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // runs in the handler goroutine
}
