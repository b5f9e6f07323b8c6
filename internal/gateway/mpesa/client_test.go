package mpesa_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/gateway/mpesa"
)

func newDaraja(t *testing.T, stk http.HandlerFunc) (*httptest.Server, *int32) {
	t.Helper()
	var tokenCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v1/generate", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)
		_, _ = w.Write([]byte(`{"access_token":"tok","expires_in":"3599"}`))
	})
	mux.HandleFunc("/mpesa/stkpush/v1/processrequest", stk)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &tokenCalls
}

func testConfig(baseURL string) mpesa.Config {
	return mpesa.Config{
		BaseURL:        baseURL,
		ConsumerKey:    "key",
		ConsumerSecret: "secret",
		ShortCode:      "174379",
		PassKey:        "pk",
		CallbackURL:    "https://example.test/payments/mpesa/callback",
	}
}

func TestClient_STKPush_Success(t *testing.T) {
	t.Parallel()

	srv, tokenCalls := newDaraja(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "254712345678", body["PartyA"])
		assert.Equal(t, "174379", body["PartyB"])
		assert.Equal(t, "Order-21", body["AccountReference"])
		assert.Equal(t, "Textbook Delivery Fee", body["TransactionDesc"])
		assert.Equal(t, float64(140), body["Amount"])
		ts, _ := body["Timestamp"].(string)
		assert.Len(t, ts, 14)
		assert.Equal(t, mpesa.Password("174379", "pk", ts), body["Password"])

		_, _ = w.Write([]byte(`{"CheckoutRequestID":"ws_CO_1","ResponseCode":"0","CustomerMessage":"Success"}`))
	})

	c := mpesa.NewClient(testConfig(srv.URL), srv.Client())
	req := domain.PaymentRequest{DeliveryID: 21, Phone: "254712345678", Amount: 140, Reference: "21"}

	res, err := c.STKPush(context.Background(), req)
	require.NoError(t, err)
	require.True(t, res.Initiated)
	require.Equal(t, "ws_CO_1", res.CheckoutID)

	_, err = c.STKPush(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(tokenCalls))
}

func TestClient_STKPush_Rejected(t *testing.T) {
	t.Parallel()

	srv, _ := newDaraja(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errorCode":"400.002.02","errorMessage":"Bad Request - Invalid PhoneNumber"}`))
	})

	c := mpesa.NewClient(testConfig(srv.URL), srv.Client())
	_, err := c.STKPush(context.Background(), domain.PaymentRequest{Phone: "254712345678", Amount: 1})
	require.ErrorIs(t, err, mpesa.ErrRejected)
	require.Contains(t, err.Error(), "Invalid PhoneNumber")
}

func TestClient_STKPush_TokenFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	c := mpesa.NewClient(testConfig(srv.URL), srv.Client())
	_, err := c.STKPush(context.Background(), domain.PaymentRequest{Phone: "254712345678", Amount: 1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "401")
}

func TestParseCallback(t *testing.T) {
	t.Parallel()

	body := `{"Body":{"stkCallback":{"MerchantRequestID":"m1","CheckoutRequestID":"ws_CO_1","ResultCode":0,
"ResultDesc":"The service request is processed successfully.","CallbackMetadata":{"Item":[
{"Name":"Amount","Value":140},{"Name":"MpesaReceiptNumber","Value":"QK12ABC"},{"Name":"PhoneNumber","Value":254712345678}]}}}}`

	res, err := mpesa.ParseCallback(strings.NewReader(body))
	require.NoError(t, err)
	require.True(t, res.Succeeded())
	require.Equal(t, "ws_CO_1", res.CheckoutID)
	require.Equal(t, "QK12ABC", res.Receipt)
}

func TestParseCallback_Cancelled(t *testing.T) {
	t.Parallel()

	body := `{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_2","ResultCode":1032,"ResultDesc":"Request cancelled by user"}}}`

	res, err := mpesa.ParseCallback(strings.NewReader(body))
	require.NoError(t, err)
	require.False(t, res.Succeeded())
	require.Equal(t, 1032, res.ResultCode)
}

func TestParseCallback_Garbage(t *testing.T) {
	t.Parallel()

	_, err := mpesa.ParseCallback(strings.NewReader("{"))
	require.Error(t, err)
}
