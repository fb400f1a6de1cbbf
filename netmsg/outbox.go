package netmsg

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Outbox wraps a Sender with the core's sending policy: player-update
// messages are rate-limited (excess samples dropped, newest wins next slot),
// everything else passes through, and transport failures are swallowed so
// the simulation stays fully playable offline.
type Outbox struct {
	sender Sender
	lim    *rate.Limiter
	logger *zap.Logger
}

// NewOutbox creates an Outbox. sender may be nil for offline play.
func NewOutbox(sender Sender, updatesPerSec float64, burst int, logger *zap.Logger) *Outbox {
	if updatesPerSec <= 0 {
		updatesPerSec = 20
	}
	if burst <= 0 {
		burst = 1
	}
	return &Outbox{
		sender: sender,
		lim:    rate.NewLimiter(rate.Limit(updatesPerSec), burst),
		logger: logger,
	}
}

// Send delivers m according to policy. Never returns an error.
func (o *Outbox) Send(m Message) {
	if o == nil || o.sender == nil {
		return
	}
	if m.Type == TypePlayerUpdate && !o.lim.Allow() {
		return
	}
	if err := o.sender.Send(m); err != nil {
		o.logger.Debug("outbound message dropped", zap.String("type", string(m.Type)), zap.Error(err))
	}
}

// Loopback is an in-memory Sender used by tests and single-actor sessions.
type Loopback struct {
	mu   sync.Mutex
	msgs []Message
}

func (l *Loopback) Send(m Message) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, m)
	return nil
}

// Drain returns and clears all captured messages.
func (l *Loopback) Drain() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.msgs
	l.msgs = nil
	return out
}
