package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dm/bmsmon/internal/client"
	"github.com/dm/bmsmon/internal/model"
	"github.com/dm/bmsmon/internal/profile"
)

// FetchAll runs one acquisition cycle and blocks until it completes. It is
// the synchronous counterpart of Fetch/Join for callers that have no use
// for readiness polling, such as one-shot CLI invocations. A failing leg
// cancels the group context, so the remaining legs abort at their next
// network call instead of running to completion.
func FetchAll(ctx context.Context, c client.ControllerClient, p *profile.Profile, sanitize bool) (*model.Snapshot, error) {
	var (
		main  model.MainReading
		ucell model.CellVoltageReport
		tcell model.CellTemperatureReport
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if main, err = mainLeg(gctx, c, p); err != nil {
			return &LegError{Leg: legMain, Err: err}
		}
		return nil
	})

	g.Go(func() error {
		var err error
		if ucell, err = cellVoltageLeg(gctx, c, p, sanitize); err != nil {
			return &LegError{Leg: legCellVoltage, Err: err}
		}
		return nil
	})

	g.Go(func() error {
		var err error
		if tcell, err = cellTemperatureLeg(gctx, c, p, sanitize); err != nil {
			return &LegError{Leg: legCellTemperature, Err: err}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.Snapshot{
		Main:            main,
		CellVoltage:     ucell,
		CellTemperature: tcell,
		FetchedAt:       time.Now(),
	}, nil
}
