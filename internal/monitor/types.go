package monitor

import (
	"context"
	"time"

	"github.com/yourneighborhoodchef/stocksms/internal/domain"
)

type State string

const (
	StatePolling    State = "polling"
	StateNotifying  State = "notifying"
	StateSleeping   State = "sleeping"
	StateTerminated State = "terminated"
)

// Checker runs one stock check. A nil notification means nothing changed.
type Checker interface {
	Check(ctx context.Context) *domain.Notification
}

type Sender interface {
	Send(ctx context.Context, n domain.Notification) error
}

// Gate admits one poll per token.
type Gate interface {
	WaitForToken(ctx context.Context) error
}

// Hooks are optional observation callbacks; nil fields are no-ops.
type Hooks struct {
	OnCheck    func(n *domain.Notification, latency time.Duration)
	OnDelivery func(err error)
	OnState    func(s State)
}
