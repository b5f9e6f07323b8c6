package deliveryapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	json "github.com/goccy/go-json"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/domain"
)

const shippedSwapJSON = `{
	"id": 7,
	"tracking_code": "TRK-7",
	"status": "shipped",
	"pickup_location": "Nyeri Town",
	"dropoff_location": "Karatina",
	"transport_cost": 250,
	"books_total": 0,
	"current_lat": -0.42,
	"current_lng": 36.95,
	"rider": {"id": 9, "name": "Wanjiru", "phone": "254712345678"},
	"swap": {"id": 3, "sender_id": 1, "receiver_id": 2,
		"offered_listing": {"id": 10, "title": "Biology F2", "seller_id": 1},
		"requested_listing": {"id": 11, "title": "Chemistry F2", "seller_id": 2},
		"status": "accepted"},
	"conversation_id": 55,
	"capabilities": {"role_name": "Proposer"},
	"is_rider": false
}`

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, UserID: 1}, nil)
	require.NoError(t, err)
	return c
}

func TestNewClient_Validates(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{BaseURL: "not a url", UserID: 1}, nil)
	require.Error(t, err)

	_, err = NewClient(Config{BaseURL: "http://localhost:8080"}, nil)
	require.Error(t, err)

	c, err := NewClient(Config{BaseURL: "http://localhost:8080/", UserID: 3}, nil)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", c.baseURL)
}

func TestClient_FetchDelivery_DecodesAndNormalises(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/deliveries/7", r.URL.Path)
		assert.Equal(t, "1", r.Header.Get("X-User-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, shippedSwapJSON)
	}))

	d, err := c.FetchDelivery(context.Background(), 7)
	require.NoError(t, err)

	require.Equal(t, domain.StatusShipped, d.Status)
	require.Equal(t, "TRK-7", d.TrackingCode)
	require.Equal(t, int64(250), d.TransportCost)
	require.NotNil(t, d.Position)
	require.Equal(t, -0.42, d.Position.Lat)
	require.Equal(t, domain.UserID(9), d.Rider.ID)
	require.True(t, d.IsSwap())
	require.Equal(t, domain.UserID(1), d.Swap.SenderID)
	require.Equal(t, domain.UserID(2), d.Swap.ReceiverID)
	require.Equal(t, int64(55), *d.ConversationID)
}

func TestClient_UpdateDelivery_SendsFeeWithLocations(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Nyeri Town", body["pickup_location"])
		assert.Equal(t, "Karatina", body["dropoff_location"])
		assert.EqualValues(t, 250, body["transport_cost"])

		_, _ = io.WriteString(w, `{"id":7,"status":"pending","pickup_location":"Nyeri Town","dropoff_location":"Karatina","transport_cost":250,"orders":[{"id":1,"buyer_id":3,"listing":{"id":4,"title":"Maths","seller_id":4},"amount_paid":800}]}`)
	}))

	pickup, dropoff, fee := "Nyeri Town", "Karatina", int64(250)
	d, err := c.UpdateDelivery(context.Background(), 7, domain.DeliveryPatch{
		PickupLocation:  &pickup,
		DropoffLocation: &dropoff,
		TransportCost:   &fee,
	})
	require.NoError(t, err)
	require.Equal(t, int64(250), d.TransportCost)
	require.Len(t, d.Orders, 1)
	require.Equal(t, domain.UserID(3), d.Orders[0].BuyerID)
	require.Nil(t, d.Position)
}

func TestClient_ErrorMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"invalid", http.StatusBadRequest, func(t *testing.T, err error) { require.ErrorIs(t, err, apperr.Invalid) }},
		{"forbidden", http.StatusForbidden, func(t *testing.T, err error) { require.ErrorIs(t, err, apperr.Forbidden) }},
		{"not found", http.StatusNotFound, func(t *testing.T, err error) { require.ErrorIs(t, err, apperr.NotFound) }},
		{"rejected", http.StatusConflict, func(t *testing.T, err error) { require.True(t, apperr.IsRejected(err)) }},
		{"routing", http.StatusUnprocessableEntity, func(t *testing.T, err error) { require.True(t, apperr.IsRouting(err)) }},
		{"unavailable", http.StatusServiceUnavailable, func(t *testing.T, err error) {
			var se *StatusError
			require.ErrorAs(t, err, &se)
			require.Equal(t, http.StatusServiceUnavailable, se.Code)
			require.True(t, isRetryable(err))
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, `{"error":"nope"}`)
			}))
			err := c.CancelDelivery(context.Background(), 7)
			require.Error(t, err)
			tc.check(t, err)
		})
	}
}

func TestClient_ComputeFee(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/deliveries/fee", r.URL.Path)
		_, _ = io.WriteString(w, `{"fee":250,"distance_km":40.1,"distance_text":"40.1 km","pickup_coords":{"lat":-0.42,"lng":36.95},"dropoff_coords":{"lat":-0.48,"lng":37.13},"route":[{"lat":-0.42,"lng":36.95},{"lat":-0.48,"lng":37.13}]}`)
	}))

	q, err := c.ComputeFee(context.Background(), "Nyeri Town", "Karatina", false)
	require.NoError(t, err)
	require.Equal(t, int64(250), q.Fee)
	require.Equal(t, 37.13, q.DropoffCoords.Lng)
	require.NotNil(t, q.Route)
	require.Len(t, q.Route.Geometry, 2)
}

func TestClient_InitiatePayment(t *testing.T) {
	t.Parallel()

	t.Run("initiated", func(t *testing.T) {
		t.Parallel()
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/payments/mpesa", r.URL.Path)
			_, _ = io.WriteString(w, `{"initiated":true,"checkout_id":"ws_CO_1"}`)
		}))
		res, err := c.InitiatePayment(context.Background(), 7, "0712345678")
		require.NoError(t, err)
		require.True(t, res.Initiated)
		require.Equal(t, "ws_CO_1", res.CheckoutID)
	})

	t.Run("gateway failure", func(t *testing.T) {
		t.Parallel()
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		_, err := c.InitiatePayment(context.Background(), 7, "0712345678")
		require.True(t, apperr.IsPaymentInitiation(err))
	})

	t.Run("invalid phone", func(t *testing.T) {
		t.Parallel()
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		_, err := c.InitiatePayment(context.Background(), 7, "12")
		require.ErrorIs(t, err, apperr.Invalid)
		require.False(t, apperr.IsPaymentInitiation(err))
	})
}

func TestClient_DialLive_RiderChannel(t *testing.T) {
	t.Parallel()

	samples := make(chan string, 1)
	upgrader := websocket.Upgrader{}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ws/deliveries/7/rider", r.URL.Path)
		assert.Equal(t, "1", r.Header.Get("X-User-ID"))
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"latitude":-0.42,"longitude":36.95}`))
		_, data, err := conn.ReadMessage()
		if err == nil {
			samples <- string(data)
		}
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	lc, err := c.DialLive(ctx, 7, true)
	require.NoError(t, err)

	f, err := lc.Read()
	require.NoError(t, err)
	require.Nil(t, f.Status)
	require.Equal(t, 36.95, *f.Longitude)

	require.NoError(t, lc.Send(domain.Coordinates{Lat: -0.43, Lng: 36.96}))
	select {
	case got := <-samples:
		require.JSONEq(t, `{"lat":-0.43,"lng":36.96}`, got)
	case <-ctx.Done():
		t.Fatal("sample not received")
	}

	require.NoError(t, lc.Close())
	require.NoError(t, lc.Close())
}

func TestClient_DialLive_HandshakeRejected(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := c.DialLive(context.Background(), 7, true)
	var ce *apperr.ChannelError
	require.ErrorAs(t, err, &ce)
	require.ErrorIs(t, err, apperr.Forbidden)
}
