package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"textbook-logistics/internal/apperr"
	"textbook-logistics/internal/config"
	"textbook-logistics/internal/logx"
	"textbook-logistics/internal/service/payment"
	"textbook-logistics/internal/transport/kafka"
)

// WorkerRunner runs the payment-result consumer.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// Run consumes payment results until the container context is done.
// Cancellation is a clean stop and returns nil.
func (r *WorkerRunner) Run(container *dig.Container) error {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// MustRun is Run that panics on failure.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	if err := r.Run(container); err != nil {
		panic(err)
	}
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config, logger logx.Logger, p *payment.Processor) (*kafka.Consumer, error) {
			k := cfg.Kafka
			return kafka.NewConsumer(logger, k.Brokers, k.GroupID, k.PaymentsTopic, makePaymentsKafka(p))
		},
	)
}

// makePaymentsKafka marks results that can never apply as permanent so the
// consumer commits them instead of retrying.
func makePaymentsKafka(p *payment.Processor) kafka.HandleFunc {
	return func(ctx context.Context, event payment.Event) error {
		err := p.Handle(ctx, event)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, apperr.NotFound), errors.Is(err, apperr.Invalid), apperr.IsRejected(err):
			return kafka.Permanent(err)
		default:
			return err
		}
	}
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

type workerIn struct {
	dig.In

	Ctx      context.Context
	Pool     *pgxpool.Pool `optional:"true"`
	Redis    *redis.Client `optional:"true"`
	Logger   logx.Logger
	Consumer *kafka.Consumer `optional:"true"`
}

func workerRun(in workerIn) error {
	if in.Consumer == nil {
		return fmt.Errorf("kafka consumer is nil: worker container misconfigured")
	}
	defer closeWorker(in.Pool, in.Redis, in.Logger, in.Consumer)

	in.Logger.Info("payment worker started")
	return in.Consumer.Run(in.Ctx)
}

func closeWorker(pool *pgxpool.Pool, rdb *redis.Client, logger logx.Logger, kafkaConsumer *kafka.Consumer) {
	if kafkaConsumer != nil {
		if err := kafkaConsumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
	closeResources(pool, rdb, logger)
}
