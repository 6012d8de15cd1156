package sim

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/automoto/burrow/logging"
)

// Loop steps a world on a fixed ticker.
type Loop struct {
	world    *World
	tickRate int
	log      *zap.Logger

	stopChan chan struct{}
	stopOnce sync.Once
}

func NewLoop(world *World, tickRate int, log *zap.Logger) *Loop {
	return &Loop{
		world:    world,
		tickRate: tickRate,
		log:      logging.OrNop(log).Named("loop"),
		stopChan: make(chan struct{}),
	}
}

// Run blocks until Stop is called, ctx is done, or the world halts. Only the halt is
// reported as an error; stopping is a normal return.
func (l *Loop) Run(ctx context.Context) error {
	if l.tickRate <= 0 {
		return errors.New("loop: tick rate must be positive")
	}
	ticker := time.NewTicker(time.Second / time.Duration(l.tickRate))
	defer ticker.Stop()

	l.log.Info("loop started", zap.Int("tick_rate", l.tickRate))

	for {
		select {
		case <-ctx.Done():
			l.log.Info("loop stopped", zap.Uint64("tick", l.world.Tick()))
			return nil
		case <-l.stopChan:
			l.log.Info("loop stopped", zap.Uint64("tick", l.world.Tick()))
			return nil
		case <-ticker.C:
			if err := l.world.Step(); err != nil {
				l.log.Error("loop halted", zap.Error(err))
				return err
			}
		}
	}
}

// Stop ends Run. It is safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
}
