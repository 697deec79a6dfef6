package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dm/bmsmon/internal/client"
	"github.com/dm/bmsmon/internal/engine"
	"github.com/dm/bmsmon/internal/format"
	"github.com/dm/bmsmon/internal/model"
	"github.com/dm/bmsmon/internal/profile"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <controller-address>",
	Short: "Fetch and print one snapshot",
	Long: `Fetch one snapshot from the controller and print it.

All three controller pages are fetched concurrently; the command fails if
any of them cannot be decoded.

Example:
  bmsmon fetch 192.168.0.200
  bmsmon fetch --cells --sanitize=false 192.168.0.200`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().Duration("timeout", 10*time.Second, "per-request timeout")
	fetchCmd.Flags().Bool("sanitize", true, "replace implausible samples with the array average")
	fetchCmd.Flags().StringP("profile", "p", "", "firmware profile YAML (default: built-in profile)")
	fetchCmd.Flags().Bool("cells", false, "also print the per-cell voltage array")
}

// loadProfile returns the built-in profile or the overlay named by path.
func loadProfile(path string) (*profile.Profile, error) {
	if path == "" {
		return profile.Default(), nil
	}
	return profile.Load(path)
}

func newClient(addr string, prof *profile.Profile, timeout time.Duration) (*client.DefaultClient, error) {
	baseURL, err := parseAddress(addr)
	if err != nil {
		return nil, err
	}
	return client.NewDefaultClient(client.ClientConfig{
		BaseURL:             baseURL,
		RequestTimeout:      timeout,
		MainPath:            prof.MainPath,
		CellVoltagePath:     prof.CellVoltagePath,
		CellTemperaturePath: prof.CellTemperaturePath,
	})
}

func runFetch(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	sanitize, _ := cmd.Flags().GetBool("sanitize")
	profilePath, _ := cmd.Flags().GetString("profile")
	showCells, _ := cmd.Flags().GetBool("cells")

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

	snap, err := engine.FetchAll(ctx, c, prof, sanitize)
	if err != nil {
		var pe *engine.PanicError
		if errors.As(err, &pe) {
			log.WithField("stack", string(pe.Stack)).Error("internal fault during acquisition")
			return fmt.Errorf("internal fault: %v", pe.Value)
		}
		return fmt.Errorf("controller fetch failed: %w", err)
	}

	printSnapshot(cmd.OutOrStdout(), snap, showCells)
	return nil
}

func printSnapshot(w io.Writer, snap *model.Snapshot, showCells bool) {
	m := snap.Main
	fmt.Fprintf(w, "pack:    %s  %s  SoC %s\n",
		format.Volts(m.Voltage), format.Milliamps(m.Current), format.Percent(m.StateOfCharge))
	fmt.Fprintf(w, "temps:   avg %s  min %s  max %s  master %s\n",
		format.Celsius(m.TempAvg), format.Celsius(m.TempMin), format.Celsius(m.TempMax), format.Celsius(m.TempMaster))

	cv := snap.CellVoltage
	fmt.Fprintf(w, "layout:  %d slaves, %d cells (%d per slave), %d temp sensors, %d safety resistors\n",
		cv.NumSlaves, cv.NumCells, cv.NumCellsPerSlave, cv.NumTempSensors, cv.NumSafetyResistors)
	printVoltageStats(w, "cells", cv.Overall)
	printVoltageStats(w, "right", cv.Right)
	printVoltageStats(w, "left", cv.Left)

	ct := snap.CellTemperature
	printTempStats(w, "sensors", ct.Overall)
	printTempStats(w, "right", ct.Right)
	printTempStats(w, "left", ct.Left)

	if showCells {
		fmt.Fprintln(w, "cell voltages:")
		for i, mv := range cv.Cells {
			fmt.Fprintf(w, "  %3d  %s\n", i+1, format.Millivolts(mv))
		}
	}
}

func printVoltageStats(w io.Writer, name string, s model.VoltageStats) {
	fmt.Fprintf(w, "%-8s avg %s  min %s  max %s  delta %s\n",
		name+":", format.Millivolts(s.Avg), format.Millivolts(s.Min), format.Millivolts(s.Max), format.Millivolts(s.Delta))
}

func printTempStats(w io.Writer, name string, s model.TempStats) {
	fmt.Fprintf(w, "%-8s avg %s  min %s  max %s  delta %s\n",
		name+":", format.Celsius(s.Avg), format.Celsius(s.Min), format.Celsius(s.Max), format.Celsius(s.Delta))
}
