// Package main provides the WebSocket endpoint for real-time contact events.
package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/contactdeck/backend/internal/broadcast"
	"github.com/contactdeck/backend/internal/logging"
	"github.com/contactdeck/backend/internal/metrics"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// wsMessage is the envelope delivered for every change event.
type wsMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// wsClient represents one connected real-time subscriber.
type wsClient struct {
	id     string
	conn   *websocket.Conn
	sub    broadcast.Subscriber
	broker *broadcast.Broker
}

// newUpgrader builds the websocket upgrader for the configured origins.
// Requests without an Origin header (non-browser clients) are accepted.
func newUpgrader(origins []string) websocket.Upgrader {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed[origin]
		},
	}
}

// handleWebSocket upgrades the connection and registers it with the broker.
// The subscription lives exactly as long as the connection.
func handleWebSocket(broker *broadcast.Broker, upgrader websocket.Upgrader) http.HandlerFunc {
	log := logging.WithComponent("websocket")

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Msg("failed to upgrade connection")
			return
		}

		client := &wsClient{
			id:     uuid.New().String(),
			conn:   conn,
			sub:    broker.Subscribe(),
			broker: broker,
		}
		metrics.SubscribersConnected.Inc()
		log.Info().Str("client_id", client.id).Int("total", broker.SubscriberCount()).Msg("client connected")

		go client.writePump()
		go client.readPump(log)
	}
}

// readPump drains the connection. Clients send nothing the server acts on;
// the pump exists to notice disconnects and keep the pong deadline fresh.
// On exit the subscription is removed, which in turn stops the write pump.
func (c *wsClient) readPump(log zerolog.Logger) {
	defer func() {
		c.broker.Unsubscribe(c.sub)
		metrics.SubscribersConnected.Dec()
		c.conn.Close()
		log.Info().Str("client_id", c.id).Int("total", c.broker.SubscriberCount()).Msg("client disconnected")
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("client_id", c.id).Msg("read error")
			}
			return
		}
	}
}

// writePump forwards broker events to the connection and keeps it alive
// with pings. Events arrive already ordered; one pump per connection means
// payloads can never interleave.
func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.sub:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			message, err := json.Marshal(wsMessage{Type: event.Type, Payload: event.Payload()})
			if err != nil {
				logging.Errorf("failed to marshal event", err)
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
