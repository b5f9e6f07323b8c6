package notify

import (
	"context"
	"fmt"
	"strconv"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/logx"
)

// DefaultRiderTopic is the FCM topic rider devices subscribe to.
const DefaultRiderTopic = "riders"

type sender interface {
	Send(ctx context.Context, msg *messaging.Message) (string, error)
}

// FCM pushes job notifications to the riders topic.
type FCM struct {
	client sender
	topic  string
	logger logx.Logger
}

// NewFCM initialises the Firebase Admin SDK. An empty credentialsFile falls back
// to application default credentials.
func NewFCM(ctx context.Context, credentialsFile, topic string, logger logx.Logger) (*FCM, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase app.Messaging: %w", err)
	}
	return NewFCMWithSender(client, topic, logger), nil
}

// NewFCMWithSender creates an FCM notifier over an existing sender.
func NewFCMWithSender(client sender, topic string, logger logx.Logger) *FCM {
	if topic == "" {
		topic = DefaultRiderTopic
	}
	return &FCM{client: client, topic: topic, logger: logger}
}

// NotifyJobAvailable tells riders that d is paid and waiting for pickup.
func (n *FCM) NotifyJobAvailable(ctx context.Context, d *domain.Delivery) error {
	msg := JobMessage(n.topic, d)
	id, err := n.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("send job notification for delivery %d: %w", d.ID, err)
	}
	n.logger.Info("rider notification sent",
		logx.String("event", "rider_notified"),
		logx.Int64("delivery_id", d.ID),
		logx.String("message_id", id),
	)
	return nil
}

// JobMessage builds the FCM message announcing d.
func JobMessage(topic string, d *domain.Delivery) *messaging.Message {
	kind := "sale"
	if d.IsSwap() {
		kind = "swap"
	}
	return &messaging.Message{
		Topic: topic,
		Data: map[string]string{
			"type":           "job_available",
			"delivery_id":    strconv.FormatInt(d.ID, 10),
			"kind":           kind,
			"pickup":         d.PickupLocation,
			"dropoff":        d.DropoffLocation,
			"transport_cost": strconv.FormatInt(d.TransportCost, 10),
		},
		Notification: &messaging.Notification{
			Title: "New delivery job",
			Body:  fmt.Sprintf("%s to %s, KSh %d", d.PickupLocation, d.DropoffLocation, d.TransportCost),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}
}

// Nop drops notifications.
type Nop struct{}

// NotifyJobAvailable does nothing.
func (Nop) NotifyJobAvailable(context.Context, *domain.Delivery) error { return nil }
