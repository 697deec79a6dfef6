package client

import (
	"context"
	"fmt"
)

// Page layout of the observed firmware. The pages are server-side-include
// HTML; the interesting data is a single embedded assignment per page.
const (
	defaultMainPath            = "/main_data.shtml"
	defaultCellVoltagePath     = "/ucell.shtml"
	defaultCellTemperaturePath = "/tcell.shtml"
)

// GetMainPage fetches the main panel page with the pack-level scalars.
func (c *DefaultClient) GetMainPage(ctx context.Context) (string, error) {
	body, err := c.doGet(ctx, c.config.MainPath)
	if err != nil {
		return "", fmt.Errorf("GetMainPage: %w", err)
	}
	return body, nil
}

// GetCellVoltagePage fetches the page carrying the per-cell voltage array
// and the pack topology counters.
func (c *DefaultClient) GetCellVoltagePage(ctx context.Context) (string, error) {
	body, err := c.doGet(ctx, c.config.CellVoltagePath)
	if err != nil {
		return "", fmt.Errorf("GetCellVoltagePage: %w", err)
	}
	return body, nil
}

// GetCellTemperaturePage fetches the page carrying the temperature-sensor
// array.
func (c *DefaultClient) GetCellTemperaturePage(ctx context.Context) (string, error) {
	body, err := c.doGet(ctx, c.config.CellTemperaturePath)
	if err != nil {
		return "", fmt.Errorf("GetCellTemperaturePage: %w", err)
	}
	return body, nil
}
