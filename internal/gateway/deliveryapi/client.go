package deliveryapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	json "github.com/goccy/go-json"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/tracking"
)

const (
	userHeader   = "X-User-ID"
	maxBodyBytes = 1 << 20
)

// Config holds the delivery API endpoint and the acting user.
type Config struct {
	BaseURL string
	UserID  domain.UserID
	Timeout time.Duration
}

// Client is the HTTP implementation of tracking.Backend.
type Client struct {
	baseURL string
	user    domain.UserID
	http    *http.Client
	dialer  *websocket.Dialer
}

// NewClient creates a new Client. hc may be nil.
func NewClient(cfg Config, hc *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid delivery api url %q", cfg.BaseURL)
	}
	if cfg.UserID <= 0 {
		return nil, fmt.Errorf("invalid user id %d", cfg.UserID)
	}
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: u.String(),
		user:    cfg.UserID,
		http:    hc,
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}, nil
}

// FetchDelivery returns the full delivery snapshot.
func (c *Client) FetchDelivery(ctx context.Context, id int64) (*domain.Delivery, error) {
	var out deliveryDTO
	if err := c.do(ctx, "fetch", http.MethodGet, deliveryPath(id), nil, &out); err != nil {
		return nil, err
	}
	return out.toModel(), nil
}

// UpdateDelivery patches the delivery and returns the refreshed record.
func (c *Client) UpdateDelivery(ctx context.Context, id int64, p domain.DeliveryPatch) (*domain.Delivery, error) {
	body := patchRequest{
		PickupLocation:  p.PickupLocation,
		DropoffLocation: p.DropoffLocation,
		TransportCost:   p.TransportCost,
	}
	var out deliveryDTO
	if err := c.do(ctx, "edit", http.MethodPatch, deliveryPath(id), body, &out); err != nil {
		return nil, err
	}
	return out.toModel(), nil
}

// CancelDelivery cancels the delivery.
func (c *Client) CancelDelivery(ctx context.Context, id int64) error {
	return c.do(ctx, "cancel", http.MethodPost, deliveryPath(id)+"/cancel", nil, nil)
}

// ComputeFee prices a route without persisting anything.
func (c *Client) ComputeFee(ctx context.Context, pickup, dropoff string, isSwap bool) (domain.FeeQuote, error) {
	var out quoteDTO
	body := feeRequest{Pickup: pickup, Dropoff: dropoff, IsSwap: isSwap}
	if err := c.do(ctx, "fee", http.MethodPost, "/deliveries/fee", body, &out); err != nil {
		return domain.FeeQuote{}, err
	}
	return out.toModel(), nil
}

// InitiatePayment hands the payment off. Initiated is not confirmed.
func (c *Client) InitiatePayment(ctx context.Context, id int64, phone string) (domain.PaymentInitiation, error) {
	var out paymentResponse
	body := paymentRequest{DeliveryID: id, Phone: phone}
	err := c.do(ctx, "pay", http.MethodPost, "/payments/mpesa", body, &out)
	switch {
	case err == nil:
		return domain.PaymentInitiation{
			Initiated:       out.Initiated,
			CheckoutID:      out.CheckoutID,
			CustomerMessage: out.CustomerMessage,
		}, nil
	case errors.Is(err, apperr.Invalid), errors.Is(err, apperr.NotFound), apperr.IsRejected(err):
		return domain.PaymentInitiation{}, err
	default:
		return domain.PaymentInitiation{}, &apperr.PaymentInitiationError{DeliveryID: id, Err: err}
	}
}

// PushRiderPosition sends one rider sample over HTTP.
func (c *Client) PushRiderPosition(ctx context.Context, id int64, p domain.Coordinates) error {
	body := locationRequest{Lat: p.Lat, Lng: p.Lng}
	return c.do(ctx, "position", http.MethodPost, deliveryPath(id)+"/location", body, nil)
}

// DialLive opens the subscriber channel, or the rider channel when rider is set.
func (c *Client) DialLive(ctx context.Context, id int64, rider bool) (tracking.LiveConn, error) {
	u, err := url.Parse(c.baseURL + "/ws" + deliveryPath(id))
	if err != nil {
		return nil, err
	}
	if rider {
		u.Path += "/rider"
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	header := http.Header{}
	header.Set(userHeader, strconv.FormatInt(int64(c.user), 10))
	conn, resp, err := c.dialer.DialContext(ctx, u.String(), header)
	if err != nil {
		if resp != nil {
			return nil, &apperr.ChannelError{DeliveryID: id, Err: statusToError("live", resp.StatusCode, resp.Status)}
		}
		return nil, &apperr.ChannelError{DeliveryID: id, Err: err}
	}
	return newLiveConn(conn), nil
}

func deliveryPath(id int64) string {
	return "/deliveries/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set(userHeader, strconv.FormatInt(int64(c.user), 10))
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	limited := io.LimitReader(resp.Body, maxBodyBytes)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		_ = json.NewDecoder(limited).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return statusToError(op, resp.StatusCode, e.Error)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, limited)
		return nil
	}
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}
	return nil
}
