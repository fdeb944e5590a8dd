package monitor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourneighborhoodchef/stocksms/internal/domain"
)

// Monitor is the sequential poll, notify and back-off loop.
type Monitor struct {
	checker  Checker
	sender   Sender
	gate     Gate
	cooldown time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
	logger   *zap.Logger
	hooks    Hooks
}

type Option func(*Monitor)

// WithSleep replaces the cooldown wait.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(m *Monitor) { m.sleep = sleep }
}

func WithHooks(h Hooks) Option {
	return func(m *Monitor) { m.hooks = h }
}

func New(checker Checker, sender Sender, gate Gate, cooldown time.Duration, logger *zap.Logger, opts ...Option) *Monitor {
	m := &Monitor{
		checker:  checker,
		sender:   sender,
		gate:     gate,
		cooldown: cooldown,
		sleep:    sleepContext,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.hooks.OnCheck == nil {
		m.hooks.OnCheck = func(*domain.Notification, time.Duration) {}
	}
	if m.hooks.OnDelivery == nil {
		m.hooks.OnDelivery = func(error) {}
	}
	if m.hooks.OnState == nil {
		m.hooks.OnState = func(State) {}
	}
	return m
}

// Run polls until a fatal notification has been delivered, which returns nil.
// Otherwise it only returns when ctx is cancelled, with ctx's error.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		m.hooks.OnState(StatePolling)
		if err := m.gate.WaitForToken(ctx); err != nil {
			return err
		}

		log := m.logger.With(zap.String("cycle_id", uuid.NewString()))

		start := time.Now()
		n := m.checker.Check(ctx)
		m.hooks.OnCheck(n, time.Since(start))

		if n == nil {
			log.Debug("product matches baseline")
			continue
		}

		m.hooks.OnState(StateNotifying)
		log.Warn("stock check raised notification",
			zap.String("kind", string(n.Kind)),
			zap.Bool("fatal", n.Fatal),
			zap.String("message", n.Body),
		)

		err := m.sender.Send(ctx, *n)
		m.hooks.OnDelivery(err)

		switch {
		case err != nil:
			log.Error("notification not delivered", zap.Error(err), zap.String("kind", string(n.Kind)))
		case n.Fatal:
			m.hooks.OnState(StateTerminated)
			log.Info("fatal notification delivered, stopping", zap.String("kind", string(n.Kind)))
			return nil
		}

		m.hooks.OnState(StateSleeping)
		log.Info("cooling down before next poll", zap.Duration("cooldown", m.cooldown))
		if err := m.sleep(ctx, m.cooldown); err != nil {
			return err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
