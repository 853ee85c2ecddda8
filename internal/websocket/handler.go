package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs streams review events for reviewID to the peer until either side
// hangs up.
func ServeWs(hub *Hub, c *websocket.Conn, reviewID string) {
	client := &Client{Hub: hub, Conn: c, ReviewID: reviewID, Send: make(chan []byte, 256)}
	if !hub.join(client) {
		c.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
