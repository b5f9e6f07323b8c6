package live

import (
	"context"
	"errors"
	"time"

	"github.com/gorilla/websocket"

	json "github.com/goccy/go-json"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
	sendBuffer     = 64
)

// SampleSink receives rider samples.
type SampleSink func(ctx context.Context, c domain.Coordinates) error

// Client is one websocket connection in a delivery room.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	deliveryID int64
	rider      bool
	sink       SampleSink
	send       chan []byte
}

func newClient(h *Hub, conn *websocket.Conn, deliveryID int64, sink SampleSink) *Client {
	return &Client{
		hub:        h,
		conn:       conn,
		deliveryID: deliveryID,
		rider:      sink != nil,
		sink:       sink,
		send:       make(chan []byte, sendBuffer),
	}
}

func (c *Client) start(ctx context.Context) {
	go c.writePump()
	go c.readPump(ctx)
}

// readPump reads until the connection fails. Subscriber input is discarded.
func (c *Client) readPump(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		c.hub.leave(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("live channel dropped",
					logx.Err(&apperr.ChannelError{DeliveryID: c.deliveryID, Err: err}),
				)
			}
			return
		}
		if !c.rider {
			continue
		}
		if !c.handleSample(ctx, data) {
			return
		}
	}
}

// handleSample reports whether the channel stays open.
func (c *Client) handleSample(ctx context.Context, data []byte) bool {
	var s RiderSample
	if err := json.Unmarshal(data, &s); err != nil {
		c.hub.logger.Debug("live: bad rider frame", logx.Int64("delivery_id", c.deliveryID), logx.Err(err))
		return true
	}
	err := c.sink(ctx, domain.Coordinates{Lat: s.Lat, Lng: s.Lng})
	switch {
	case err == nil, errors.Is(err, apperr.Invalid):
		return true
	case apperr.IsRejected(err):
		c.hub.logger.Info("rider channel closed", logx.Int64("delivery_id", c.deliveryID), logx.Err(err))
		return false
	default:
		c.hub.logger.Warn("rider sample not stored", logx.Int64("delivery_id", c.deliveryID), logx.Err(err))
		return true
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				// room closed by the hub
				_ = c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
