package deliveryapi

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	json "github.com/goccy/go-json"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/live"
)

const writeWait = 5 * time.Second

// liveConn adapts a websocket connection to tracking.LiveConn.
type liveConn struct {
	conn *websocket.Conn
	wmu  sync.Mutex
	once sync.Once
	err  error
}

func newLiveConn(conn *websocket.Conn) *liveConn {
	return &liveConn{conn: conn}
}

func (c *liveConn) Read() (domain.Fragment, error) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return domain.Fragment{}, err
		}
		f, err := live.DecodeFrame(data)
		if err != nil {
			// malformed frames are skipped
			continue
		}
		return f.Fragment(), nil
	}
}

func (c *liveConn) Send(p domain.Coordinates) error {
	payload, err := json.Marshal(live.RiderSample{Lat: p.Lat, Lng: p.Lng})
	if err != nil {
		return err
	}
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Close is idempotent.
func (c *liveConn) Close() error {
	c.once.Do(func() {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.err = c.conn.Close()
	})
	return c.err
}
