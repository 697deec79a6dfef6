// Package poller drives repeated acquisition cycles against one controller
// and emits the outcomes on a channel. It enforces the one-cycle-in-flight
// convention: a new cycle starts only after the previous one has been
// joined and the poll interval has elapsed.
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dm/bmsmon/internal/client"
	"github.com/dm/bmsmon/internal/engine"
	"github.com/dm/bmsmon/internal/model"
	"github.com/dm/bmsmon/internal/profile"
)

// Result is the outcome of one poll cycle. Exactly one of Snapshot and Err
// is set.
type Result struct {
	// CycleID correlates log lines with the emitted result.
	CycleID  string
	Snapshot *model.Snapshot
	Err      error
	Elapsed  time.Duration
}

// Poller owns the polling loop state. It is not safe for concurrent use;
// run exactly one Run per Poller.
type Poller struct {
	client   client.ControllerClient
	profile  *profile.Profile
	interval time.Duration
	sanitize bool
	log      logrus.FieldLogger

	results chan Result
}

// readyTick is how often the loop checks the in-flight request's readiness.
// Polling IsFinished instead of blocking in Join keeps the loop responsive
// to cancellation while a slow cycle is outstanding.
const readyTick = 50 * time.Millisecond

// New creates a Poller. A nil log falls back to the logrus standard logger.
func New(c client.ControllerClient, p *profile.Profile, interval time.Duration, sanitize bool, log logrus.FieldLogger) *Poller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Poller{
		client:   c,
		profile:  p,
		interval: interval,
		sanitize: sanitize,
		log:      log,
		results:  make(chan Result, 1),
	}
}

// Results emits one Result per completed cycle. The channel is closed when
// Run returns.
func (p *Poller) Results() <-chan Result {
	return p.results
}

// Run polls until ctx is cancelled. The first cycle starts immediately;
// each later cycle starts once the interval has elapsed since the previous
// cycle began. A cycle in flight when ctx is cancelled is abandoned: its
// legs run to completion on their own and the remote side closes the
// connection.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.results)

	ticker := time.NewTicker(readyTick)
	defer ticker.Stop()

	var (
		req      *engine.Request
		cycleID  string
		started  time.Time
		nextPoll time.Time
	)

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			switch {
			case req == nil:
				if now.Before(nextPoll) {
					continue
				}
				cycleID = uuid.NewString()
				started = time.Now()
				nextPoll = started.Add(p.interval)
				p.log.WithFields(logrus.Fields{
					"cycle":      cycleID,
					"controller": p.client.BaseURL(),
				}).Debug("starting poll cycle")
				req = engine.Fetch(ctx, p.client, p.profile, p.sanitize)
			case req.IsFinished():
				snap, err := req.Join()
				req = nil
				p.emit(ctx, Result{
					CycleID:  cycleID,
					Snapshot: snap,
					Err:      err,
					Elapsed:  time.Since(started),
				})
			}
		}
	}
}

func (p *Poller) emit(ctx context.Context, res Result) {
	log := p.log.WithFields(logrus.Fields{
		"cycle":   res.CycleID,
		"elapsed": res.Elapsed.Round(time.Millisecond).String(),
	})

	switch {
	case res.Err == nil:
		log.Debug("poll cycle complete")
	default:
		var pe *engine.PanicError
		if errors.As(res.Err, &pe) {
			// Internal fault, not a controller fault: keep the stack.
			log.WithField("stack", string(pe.Stack)).Error("acquisition failed unexpectedly")
		} else {
			log.WithError(res.Err).Warn("controller fetch failed")
		}
	}

	select {
	case p.results <- res:
	case <-ctx.Done():
	}
}
