package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/dm/bmsmon/internal/profile"
)

// Canned controller pages. The surrounding markup mimics the firmware's
// server-side-include output; only the embedded assignments matter.
func page(assignments ...string) string {
	doc := "<html><head><title>BMS</title></head><body>\n<script>\n"
	for _, a := range assignments {
		doc += a + ";\n"
	}
	return doc + "</script>\n</body></html>"
}

var (
	mainDoc = page(`Parametersatz = "0,48500,0,0,1500,0,0,650,0,0,250,0,0,210,0,0,320,0,0,400"`)

	// 6 cells after the two leading skips, topology to match.
	ucellDoc = page(
		`PSet0 = "2,6,3,4,2"`,
		`PSet = "0,0,3650,3700,3720,3800,3900,4000"`,
	)

	// 4 sensors in tenths of a °C after one leading skip.
	tcellDoc = page(`PSet = "0,200,250,300,450"`)
)

// testProfile shrinks the partition splits to fit the small fixtures.
func testProfile() *profile.Profile {
	p := profile.Default()
	p.VoltageSplit = 3
	p.TempSplit = 2
	return p
}

// MockControllerClient implements client.ControllerClient for testing.
// Unset hooks serve the canned documents above.
type MockControllerClient struct {
	MainFn  func(ctx context.Context) (string, error)
	UcellFn func(ctx context.Context) (string, error)
	TcellFn func(ctx context.Context) (string, error)
}

func (m *MockControllerClient) GetMainPage(ctx context.Context) (string, error) {
	if m.MainFn != nil {
		return m.MainFn(ctx)
	}
	return mainDoc, nil
}

func (m *MockControllerClient) GetCellVoltagePage(ctx context.Context) (string, error) {
	if m.UcellFn != nil {
		return m.UcellFn(ctx)
	}
	return ucellDoc, nil
}

func (m *MockControllerClient) GetCellTemperaturePage(ctx context.Context) (string, error) {
	if m.TcellFn != nil {
		return m.TcellFn(ctx)
	}
	return tcellDoc, nil
}

func (m *MockControllerClient) Ping(ctx context.Context) error {
	return nil
}

func (m *MockControllerClient) BaseURL() string {
	return "http://mock-bms"
}

// blockOn returns a page hook that serves doc once the latch channel is
// closed, for exercising per-leg completion independently.
func blockOn(latch <-chan struct{}, doc string) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		select {
		case <-latch:
			return doc, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// failWith returns a page hook that always fails.
func failWith(err error) func(ctx context.Context) (string, error) {
	return func(_ context.Context) (string, error) {
		return "", fmt.Errorf("fetch page: %w", err)
	}
}

var errMockFailure = errors.New("mock failure")
