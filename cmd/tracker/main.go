package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	json "github.com/goccy/go-json"

	"textbook-logistics/internal/app"
	"textbook-logistics/internal/config"
	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/gateway/deliveryapi"
	"textbook-logistics/internal/logx"
	"textbook-logistics/internal/tracking"
)

const usage = `usage: tracker -d <delivery> -u <user> [--rider] [command]

commands:
  watch                          follow the delivery until it finishes (default)
  show                           print the current state once
  edit pickup|dropoff <location> change a location, the fee is recomputed
  cancel                         cancel the delivery (payer only)
  pay <phone>                    start an M-Pesa payment (payer only)

with --rider, "lat,lng" lines read from stdin are pushed as position samples`

func main() {
	cfg, err := config.LoadTracker(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	logger := app.NewCLILogger(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("tracker failed", logx.Err(err))
		_ = logger.Sync()
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Tracker, logger logx.Logger, in io.Reader, out io.Writer) error {
	client, err := deliveryapi.NewClient(deliveryapi.Config{
		BaseURL: cfg.APIBaseURL,
		UserID:  domain.UserID(cfg.UserID),
	}, nil)
	if err != nil {
		return err
	}
	backend := deliveryapi.NewRetryingBackend(client, logger, nil, deliveryapi.RetryConfig{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    2 * time.Second,
	})

	sc := tracking.Config{
		DeliveryID:   cfg.DeliveryID,
		Viewer:       domain.UserID(cfg.UserID),
		PollInterval: cfg.PollInterval,
	}
	watching := len(cfg.Command) == 0 || cfg.Command[0] == "watch"
	if watching {
		sc.OnChange = func(st tracking.State) { printState(out, st) }
	}
	if cfg.Rider {
		sc.Locations = newLineLocations(in)
	}

	return tracking.WithSession(ctx, backend, sc, logger, func(s *tracking.Session) error {
		return execute(ctx, s, cfg.Command, out)
	})
}

func execute(ctx context.Context, s *tracking.Session, cmd []string, out io.Writer) error {
	if len(cmd) == 0 {
		cmd = []string{"watch"}
	}
	switch cmd[0] {
	case "watch":
		return watch(ctx, s)

	case "show":
		printState(out, s.Snapshot())
		return nil

	case "edit":
		if len(cmd) < 3 {
			return errors.New("edit: want pickup|dropoff <location>")
		}
		st, err := s.EditEndpoint(ctx, domain.Endpoint(cmd[1]), strings.Join(cmd[2:], " "))
		if err != nil {
			return err
		}
		printState(out, st)
		return nil

	case "cancel":
		if err := s.Cancel(ctx); err != nil {
			return err
		}
		printState(out, s.Snapshot())
		return nil

	case "pay":
		if len(cmd) != 2 {
			return errors.New("pay: want <phone>")
		}
		res, err := s.Pay(ctx, cmd[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "payment initiated: %t checkout=%s %s\n", res.Initiated, res.CheckoutID, res.CustomerMessage)
		return nil

	default:
		return fmt.Errorf("unknown command %q", cmd[0])
	}
}

// watch blocks until ctx is done or the delivery reaches a terminal status.
func watch(ctx context.Context, s *tracking.Session) error {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if s.Snapshot().Finished {
				return nil
			}
		}
	}
}

type stateView struct {
	Status       domain.DeliveryStatus `json:"status"`
	TrackingCode string                `json:"tracking_code,omitempty"`
	Pickup       string                `json:"pickup"`
	Dropoff      string                `json:"dropoff"`
	Fee          int64                 `json:"transport_cost"`
	Distance     string                `json:"distance,omitempty"`
	Role         domain.Role           `json:"role"`
	CanPay       bool                  `json:"can_pay"`
	Rider        string                `json:"rider,omitempty"`
	RiderPhone   string                `json:"rider_phone,omitempty"`
	Lat          *float64              `json:"lat,omitempty"`
	Lng          *float64              `json:"lng,omitempty"`
	Live         bool                  `json:"live"`
	Conversation *int64                `json:"conversation_id,omitempty"`
	Notice       string                `json:"notice,omitempty"`
	Finished     bool                  `json:"finished,omitempty"`
}

func viewOf(st tracking.State) stateView {
	v := stateView{
		Role:     st.Capabilities.RoleName,
		CanPay:   st.Capabilities.IsPayer,
		Live:     st.LiveActive,
		Finished: st.Finished,
	}
	if st.Notice != nil {
		v.Notice = st.Notice.Error()
	}
	if st.Quote != nil {
		v.Distance = st.Quote.DistanceText
	}
	if st.Position != nil {
		lat, lng := st.Position.Lat, st.Position.Lng
		v.Lat, v.Lng = &lat, &lng
	}
	d := st.Delivery
	if d == nil {
		return v
	}
	v.Status = d.Status
	v.TrackingCode = d.TrackingCode
	v.Pickup = d.PickupLocation
	v.Dropoff = d.DropoffLocation
	v.Fee = d.TransportCost
	v.Conversation = d.ConversationID
	if d.Rider != nil && st.RiderContactVisible {
		v.Rider = d.Rider.Name
		v.RiderPhone = d.Rider.Phone
	}
	return v
}

func printState(out io.Writer, st tracking.State) {
	b, err := json.Marshal(viewOf(st))
	if err != nil {
		return
	}
	fmt.Fprintln(out, string(b))
}
