package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches a connection to the hub under topic and blocks until it
// closes.
func ServeWs(hub *Hub, c *websocket.Conn, topic string) {
	client := &Client{Hub: hub, Conn: c, ID: uuid.NewString(), Topic: topic, Send: make(chan []byte, 256)}
	hub.Register(client)

	go client.writePump()
	client.readPump()
}
