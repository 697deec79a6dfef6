// Package main is the entry point for the bmsmon CLI.
//
// bmsmon scrapes telemetry from a battery-management controller's embedded
// web pages and prints pack readings and per-cell statistics.
//
// Usage:
//
//	bmsmon fetch 192.168.0.200            # one snapshot
//	bmsmon watch --interval 2s 192.168.0.200
//	bmsmon validate -p firmware.yaml      # check a firmware profile
package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
var version = "dev"

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "bmsmon",
	Short: "Battery-management controller monitor",
	Long: `bmsmon polls a battery-management controller over HTTP, decodes the
telemetry embedded in its status pages, and reports pack-level readings and
per-cell voltage/temperature statistics.

The controller address is a host, host:port, or http:// URL, e.g.:
  bmsmon fetch 192.168.0.200
  bmsmon watch --interval 2s --sanitize=false 192.168.0.200`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		return setLogLevel(level)
	},
}

func setLogLevel(level string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q", level)
	}
	log.SetLevel(parsed)
	return nil
}

// parseAddress validates a controller address and returns it in URL form.
// Bare hosts gain an http:// scheme; credentials are rejected since the
// controller has no auth and a password in the address is a mistake.
func parseAddress(addr string) (string, error) {
	if addr == "" {
		return "", fmt.Errorf("controller address is required")
	}
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}

	u, err := url.Parse(addr)
	if err != nil {
		return "", fmt.Errorf("invalid address %q: %w", addr, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q (must be http or https)", u.Scheme)
	}
	if u.Hostname() == "" {
		return "", fmt.Errorf("invalid address %q: host is required", addr)
	}
	if u.User != nil {
		return "", fmt.Errorf("invalid address %q: credentials are not supported", addr)
	}
	return u.String(), nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bmsmon %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
