package live

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
)

// ErrHubStopped is returned when the hub no longer accepts clients.
var ErrHubStopped = errors.New("live: hub stopped")

type gauge interface {
	Inc()
	Dec()
}

type envelope struct {
	deliveryID int64
	payload    []byte
	terminal   bool
}

// Hub keeps one room of clients per delivery and fans frames out to them.
// Room state is owned by the Run goroutine.
type Hub struct {
	broker   Broker
	logger   logx.Logger
	clients  gauge
	upgrader websocket.Upgrader

	rooms      map[int64]map[*Client]struct{}
	nrooms     atomic.Int64
	nclients   atomic.Int64
	register   chan *Client
	unregister chan *Client
	inbound    chan envelope
	done       chan struct{}
}

// NewHub creates a new Hub. broker defaults to a MemoryBroker, clients may be nil.
func NewHub(broker Broker, clients gauge, logger logx.Logger) *Hub {
	if broker == nil {
		broker = NewMemoryBroker()
	}
	return &Hub{
		broker:  broker,
		logger:  logger,
		clients: clients,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		rooms:      make(map[int64]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan envelope, 256),
		done:       make(chan struct{}),
	}
}

// Broker returns the broker frames travel through.
func (h *Hub) Broker() Broker { return h.broker }

// Publish encodes f and publishes it for the delivery.
func (h *Hub) Publish(ctx context.Context, deliveryID int64, f domain.Fragment) error {
	if f.Empty() {
		return nil
	}
	payload, err := EncodeFragment(f)
	if err != nil {
		return err
	}
	return h.broker.Publish(ctx, deliveryID, payload)
}

// Dispatch queues a frame received from the broker for local clients.
func (h *Hub) Dispatch(deliveryID int64, payload []byte) {
	env := envelope{deliveryID: deliveryID, payload: payload}
	if fr, err := DecodeFrame(payload); err == nil {
		env.terminal = fr.Terminal()
	}
	select {
	case h.inbound <- env:
	case <-h.done:
	}
}

// Run owns the rooms until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			n := 0
			for id := range h.rooms {
				n += len(h.rooms[id])
				h.closeRoom(id)
			}
			h.logger.Info("live hub stopped", logx.Int("clients", n))
			return nil

		case c := <-h.register:
			room, ok := h.rooms[c.deliveryID]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[c.deliveryID] = room
				h.nrooms.Add(1)
			}
			room[c] = struct{}{}
			h.nclients.Add(1)
			if h.clients != nil {
				h.clients.Inc()
			}
			h.logger.Debug("live client joined",
				logx.Int64("delivery_id", c.deliveryID),
				logx.Bool("rider", c.rider),
				logx.Int("room_size", len(room)),
			)

		case c := <-h.unregister:
			h.remove(c)

		case env := <-h.inbound:
			h.broadcast(env)
		}
	}
}

func (h *Hub) broadcast(env envelope) {
	room := h.rooms[env.deliveryID]
	for c := range room {
		select {
		case c.send <- env.payload:
		default:
			h.logger.Warn("live client too slow, dropping", logx.Int64("delivery_id", env.deliveryID))
			h.remove(c)
		}
	}
	if env.terminal {
		h.closeRoom(env.deliveryID)
	}
}

func (h *Hub) remove(c *Client) {
	room, ok := h.rooms[c.deliveryID]
	if !ok {
		return
	}
	if _, ok := room[c]; !ok {
		return
	}
	delete(room, c)
	close(c.send)
	h.nclients.Add(-1)
	if h.clients != nil {
		h.clients.Dec()
	}
	if len(room) == 0 {
		delete(h.rooms, c.deliveryID)
		h.nrooms.Add(-1)
	}
}

// Stats is a point-in-time view of hub occupancy.
type Stats struct {
	Rooms   int64 `json:"rooms"`
	Clients int64 `json:"clients"`
}

// Stats reports open delivery rooms and connected clients.
func (h *Hub) Stats() Stats {
	return Stats{Rooms: h.nrooms.Load(), Clients: h.nclients.Load()}
}

func (h *Hub) closeRoom(id int64) {
	for c := range h.rooms[id] {
		h.remove(c)
	}
}

func (h *Hub) join(c *Client) error {
	select {
	case h.register <- c:
		return nil
	case <-h.done:
		return ErrHubStopped
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ServeSubscriber upgrades the request to a read-only channel for the delivery.
func (h *Hub) ServeSubscriber(w http.ResponseWriter, r *http.Request, deliveryID int64) error {
	return h.serve(w, r, deliveryID, nil)
}

// ServeRider upgrades the request to a rider channel. Every received sample goes to sink.
func (h *Hub) ServeRider(w http.ResponseWriter, r *http.Request, deliveryID int64, sink SampleSink) error {
	if sink == nil {
		return errors.New("live: nil sample sink")
	}
	return h.serve(w, r, deliveryID, sink)
}

func (h *Hub) serve(w http.ResponseWriter, r *http.Request, deliveryID int64, sink SampleSink) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		return err
	}
	c := newClient(h, conn, deliveryID, sink)
	if err := h.join(c); err != nil {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		_ = conn.Close()
		return err
	}
	c.start(context.WithoutCancel(r.Context()))
	return nil
}

// Listen feeds frames from the broker into the hub until ctx is done.
func (h *Hub) Listen(ctx context.Context) error {
	return h.broker.Subscribe(ctx, h.Dispatch)
}
