package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dm/bmsmon/internal/poller"
)

var watchCmd = &cobra.Command{
	Use:   "watch <controller-address>",
	Short: "Poll the controller and log each snapshot",
	Long: `Poll the controller at a fixed interval and log a summary of each
snapshot. At most one poll cycle is in flight at a time; a slow controller
delays the next cycle instead of piling up requests.

Runs until interrupted (Ctrl+C) or SIGTERM.

Example:
  bmsmon watch 192.168.0.200
  bmsmon watch --interval 2s --sanitize=false 192.168.0.200`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Duration("interval", 2*time.Second, "polling interval")
	watchCmd.Flags().Duration("timeout", 10*time.Second, "per-request timeout")
	watchCmd.Flags().Bool("sanitize", true, "replace implausible samples with the array average")
	watchCmd.Flags().StringP("profile", "p", "", "firmware profile YAML (default: built-in profile)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	interval, _ := cmd.Flags().GetDuration("interval")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	sanitize, _ := cmd.Flags().GetBool("sanitize")
	profilePath, _ := cmd.Flags().GetString("profile")

	prof, err := loadProfile(profilePath)
	if err != nil {
		return err
	}
	c, err := newClient(args[0], prof, timeout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithFields(logrus.Fields{
		"controller": c.BaseURL(),
		"interval":   interval.String(),
		"sanitize":   sanitize,
		"profile":    prof.Name,
	}).Info("watching controller")

	p := poller.New(c, prof, interval, sanitize, log)
	go p.Run(ctx)

	for res := range p.Results() {
		if res.Err != nil {
			// The poller already logged the failure with its cycle ID.
			continue
		}
		snap := res.Snapshot
		log.WithFields(logrus.Fields{
			"cycle":      res.CycleID,
			"voltage":    snap.Main.Voltage,
			"current":    snap.Main.Current,
			"soc":        snap.Main.StateOfCharge,
			"cell_avg":   snap.CellVoltage.Overall.Avg,
			"cell_delta": snap.CellVoltage.Overall.Delta,
			"temp_max":   snap.CellTemperature.Overall.Max,
		}).Info("snapshot")
	}

	log.Info("stopped")
	return nil
}
