package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// newTestClient creates a DefaultClient pointed at the given test server URL.
func newTestClient(t *testing.T, baseURL string) *DefaultClient {
	t.Helper()
	c, err := NewDefaultClient(ClientConfig{
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewDefaultClient: %v", err)
	}
	return c
}

func TestGetMainPage(t *testing.T) {
	body := `<html><body>Parametersatz = "0,48500,0,0,1500";</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/main_data.shtml" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.GetMainPage(context.Background())
	if err != nil {
		t.Fatalf("GetMainPage: %v", err)
	}
	if got != body {
		t.Errorf("body = %q, want %q", got, body)
	}
}

func TestGetCellPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ucell.shtml":
			_, _ = w.Write([]byte("ucell page"))
		case "/tcell.shtml":
			_, _ = w.Write([]byte("tcell page"))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	got, err := c.GetCellVoltagePage(context.Background())
	if err != nil {
		t.Fatalf("GetCellVoltagePage: %v", err)
	}
	if got != "ucell page" {
		t.Errorf("voltage body = %q", got)
	}

	got, err = c.GetCellTemperaturePage(context.Background())
	if err != nil {
		t.Fatalf("GetCellTemperaturePage: %v", err)
	}
	if got != "tcell page" {
		t.Errorf("temperature body = %q", got)
	}
}

func TestCustomPaths(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status/main.cgi" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c, err := NewDefaultClient(ClientConfig{
		BaseURL:  srv.URL,
		MainPath: "/status/main.cgi",
	})
	if err != nil {
		t.Fatalf("NewDefaultClient: %v", err)
	}
	if _, err := c.GetMainPage(context.Background()); err != nil {
		t.Fatalf("GetMainPage: %v", err)
	}
}

func TestNonOKStatusIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone fishing", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetMainPage(context.Background())
	if err == nil {
		t.Fatal("expected error for 503 response")
	}

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("error %v is not a *TransportError", err)
	}
	if !strings.Contains(transport.Error(), "503") {
		t.Errorf("error %q does not mention the status code", transport.Error())
	}
}

func TestConnectionRefusedIsTransportError(t *testing.T) {
	// Grab a port that nothing is listening on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := newTestClient(t, addr)
	_, err := c.GetMainPage(context.Background())

	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("error %v is not a *TransportError", err)
	}
}

func TestInvalidTextBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{0xff, 0xfe, 0x00, 0x80})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetMainPage(context.Background())
	if !errors.Is(err, ErrBodyDecode) {
		t.Fatalf("error %v is not ErrBodyDecode", err)
	}
}

func TestBaseURLNormalization(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare host", "192.168.0.200", "http://192.168.0.200"},
		{"host and port", "bms.local:8080", "http://bms.local:8080"},
		{"explicit scheme kept", "https://bms.local", "https://bms.local"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewDefaultClient(ClientConfig{BaseURL: tc.in})
			if err != nil {
				t.Fatalf("NewDefaultClient: %v", err)
			}
			if c.BaseURL() != tc.want {
				t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), tc.want)
			}
		})
	}
}

func TestEmptyBaseURLRejected(t *testing.T) {
	if _, err := NewDefaultClient(ClientConfig{}); err == nil {
		t.Fatal("expected error for empty BaseURL")
	}
}

func TestContextCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := newTestClient(t, srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.GetMainPage(ctx)
	var transport *TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("error %v is not a *TransportError", err)
	}
}
