package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"textbook-logistics/internal/domain"
)

const (
	tokenPath   = "/oauth/v1/generate?grant_type=client_credentials"
	stkPushPath = "/mpesa/stkpush/v1/processrequest"

	transactionType = "CustomerPayBillOnline"
	transactionDesc = "Textbook Delivery Fee"

	// DefaultBaseURL is the Daraja sandbox.
	DefaultBaseURL = "https://sandbox.safaricom.co.ke"
)

// ErrRejected is returned when Daraja answers but does not accept the request.
var ErrRejected = errors.New("mpesa: request rejected")

// Config holds Daraja credentials.
type Config struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	PassKey        string
	CallbackURL    string
}

// Client is a Daraja STK push client.
type Client struct {
	cfg  Config
	http *http.Client
	now  func() time.Time

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient creates a new Client. hc may be nil.
func NewClient(cfg Config, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: hc, now: time.Now}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

type stkRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type stkResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
	ErrorCode           string `json:"errorCode"`
	ErrorMessage        string `json:"errorMessage"`
}

// STKPush asks Daraja to prompt the customer's phone for the amount.
func (c *Client) STKPush(ctx context.Context, req domain.PaymentRequest) (domain.PaymentInitiation, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return domain.PaymentInitiation{}, err
	}

	ts := c.now().Format("20060102150405")
	body := stkRequest{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          Password(c.cfg.ShortCode, c.cfg.PassKey, ts),
		Timestamp:         ts,
		TransactionType:   transactionType,
		Amount:            req.Amount,
		PartyA:            req.Phone,
		PartyB:            c.cfg.ShortCode,
		PhoneNumber:       req.Phone,
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  "Order-" + req.Reference,
		TransactionDesc:   transactionDesc,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.PaymentInitiation{}, fmt.Errorf("encode stk push: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+stkPushPath, bytes.NewReader(payload))
	if err != nil {
		return domain.PaymentInitiation{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return domain.PaymentInitiation{}, fmt.Errorf("stk push: %w", err)
	}
	defer resp.Body.Close()

	var out stkResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
		return domain.PaymentInitiation{}, fmt.Errorf("stk push: status %d: decode: %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK || out.ResponseCode != "0" {
		msg := out.ErrorMessage
		if msg == "" {
			msg = out.ResponseDescription
		}
		return domain.PaymentInitiation{}, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, msg)
	}

	return domain.PaymentInitiation{
		Initiated:       true,
		CheckoutID:      out.CheckoutRequestID,
		CustomerMessage: out.CustomerMessage,
	}, nil
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && c.now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+tokenPath, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.cfg.ConsumerKey, c.cfg.ConsumerSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("mpesa token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mpesa token: unexpected status %d", resp.StatusCode)
	}
	var tr tokenResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&tr); err != nil {
		return "", fmt.Errorf("mpesa token: decode: %w", err)
	}
	if tr.AccessToken == "" {
		return "", errors.New("mpesa token: empty access token")
	}

	ttl := time.Hour
	if secs, err := strconv.Atoi(strings.TrimSpace(tr.ExpiresIn)); err == nil && secs > 60 {
		ttl = time.Duration(secs) * time.Second
	}
	c.token = tr.AccessToken
	// refresh a minute early
	c.tokenExpiry = c.now().Add(ttl - time.Minute)
	return c.token, nil
}

// Password is base64(shortcode + passkey + timestamp).
func Password(shortCode, passKey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passKey + timestamp))
}
