package engine

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/dm/bmsmon/internal/client"
	"github.com/dm/bmsmon/internal/model"
	"github.com/dm/bmsmon/internal/profile"
)

// Request is the handle for one in-flight poll cycle. The three legs run as
// independent goroutines with no shared mutable state; the only
// cross-goroutine signal is each leg's done channel, closed exactly once
// when that leg finishes. That makes IsFinished safe to call from any
// goroutine at any frequency.
type Request struct {
	main  *legRun[model.MainReading]
	ucell *legRun[model.CellVoltageReport]
	tcell *legRun[model.CellTemperatureReport]
}

type legRun[T any] struct {
	name string
	done chan struct{}
	val  T
	err  error
}

func runLeg[T any](name string, fn func() (T, error)) *legRun[T] {
	l := &legRun[T]{name: name, done: make(chan struct{})}
	go func() {
		defer close(l.done)
		defer func() {
			if r := recover(); r != nil {
				l.err = &PanicError{Leg: name, Value: r, Stack: debug.Stack()}
			}
		}()

		v, err := fn()
		if err != nil {
			l.err = &LegError{Leg: name, Err: err}
			return
		}
		l.val = v
	}()
	return l
}

func (l *legRun[T]) finished() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

func (l *legRun[T]) wait() (T, error) {
	<-l.done
	return l.val, l.err
}

// Fetch starts one acquisition cycle and returns immediately. Discarding
// the Request without calling Join abandons the legs; they run to
// completion on their own (bounded by the client timeout) and nothing is
// reclaimed synchronously.
func Fetch(ctx context.Context, c client.ControllerClient, p *profile.Profile, sanitize bool) *Request {
	return &Request{
		main: runLeg(legMain, func() (model.MainReading, error) {
			return mainLeg(ctx, c, p)
		}),
		ucell: runLeg(legCellVoltage, func() (model.CellVoltageReport, error) {
			return cellVoltageLeg(ctx, c, p, sanitize)
		}),
		tcell: runLeg(legCellTemperature, func() (model.CellTemperatureReport, error) {
			return cellTemperatureLeg(ctx, c, p, sanitize)
		}),
	}
}

// IsFinished reports whether every leg has completed, successfully or not.
// It never blocks and has no side effects.
func (r *Request) IsFinished() bool {
	return r.main.finished() && r.ucell.finished() && r.tcell.finished()
}

// Join blocks until every leg completes, then combines the results. All
// legs succeeding yields a Snapshot; otherwise the first failure in leg
// order is returned, a *LegError for a typed failure or a *PanicError for a
// leg that crashed. Join is idempotent: repeated calls return the same
// outcome.
func (r *Request) Join() (*model.Snapshot, error) {
	main, mainErr := r.main.wait()
	ucell, ucellErr := r.ucell.wait()
	tcell, tcellErr := r.tcell.wait()

	for _, err := range []error{mainErr, ucellErr, tcellErr} {
		if err != nil {
			return nil, err
		}
	}

	return &model.Snapshot{
		Main:            main,
		CellVoltage:     ucell,
		CellTemperature: tcell,
		FetchedAt:       time.Now(),
	}, nil
}
