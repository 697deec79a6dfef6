//go:build integration

package engine_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/bmsmon/internal/client"
	"github.com/dm/bmsmon/internal/engine"
	"github.com/dm/bmsmon/internal/profile"
)

// bmsClient creates a DefaultClient from $BMS_URI or skips the test if unset.
func bmsClient(t *testing.T) client.ControllerClient {
	t.Helper()
	uri := os.Getenv("BMS_URI")
	if uri == "" {
		t.Skip("BMS_URI not set; skipping integration test")
	}
	c, err := client.NewDefaultClient(client.ClientConfig{
		BaseURL:        uri,
		RequestTimeout: 10 * time.Second,
	})
	require.NoError(t, err)
	return c
}

// TestLiveController connects to $BMS_URI, runs one full cycle, and checks
// that the snapshot is plausibly populated.
func TestLiveController(t *testing.T) {
	c := bmsClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap, err := engine.FetchAll(ctx, c, profile.Default(), true)
	require.NoError(t, err)
	require.NotNil(t, snap)

	assert.Greater(t, snap.Main.Voltage, 0.0, "pack voltage should be positive")
	assert.NotEmpty(t, snap.CellVoltage.Cells, "cell array should not be empty")
	assert.Greater(t, snap.CellVoltage.NumCells, 0, "topology should report cells")
	assert.Equal(t, snap.CellVoltage.Overall.Delta,
		snap.CellVoltage.Overall.Max-snap.CellVoltage.Overall.Min)
	assert.False(t, snap.FetchedAt.IsZero(), "fetch timestamp should be set")
}
