package statsd

import (
	"net"
	"strings"
	"testing"
	"time"
)

func TestNormalizeMetricName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		" auth/login ":    "auth_login",
		"auth..login":     "auth.login",
		"multi  space":    "multi__space",
		".auth.login.":    "auth.login",
		"auth/login/slow": "auth_login_slow",
	}

	for input, want := range tests {
		if got := normalizeMetricName(input); got != want {
			t.Fatalf("normalizeMetricName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestMetricNamePrefixing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix string
		name   string
		want   string
	}{
		{"acceso", "auth.login", "acceso.auth.login"},
		{"", "auth.login", "auth.login"},
		{"acceso", "  ", "acceso"},
		{"", "", ""},
	}

	for _, tc := range tests {
		client := &Client{prefix: tc.prefix}
		if got := client.metricName(tc.name); got != tc.want {
			t.Fatalf("metricName(%q) with prefix %q = %q, want %q", tc.name, tc.prefix, got, tc.want)
		}
	}
}

func TestFormatTags(t *testing.T) {
	t.Parallel()

	global := map[string]string{
		"env": "prod",
		// Intentionally padded key/value to ensure trimming logic works.
		//nolint:gocritic // whitespace is part of the test case
		" service ": " acceso ",
	}
	local := map[string]string{
		"result": " success ",
		"":       "ignored",
		"env":    "stage",
	}

	got := formatTags(global, local)
	want := "|#env:stage,result:success,service:acceso"

	if got != want {
		t.Fatalf("formatTags mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestFormatTagsEmpty(t *testing.T) {
	t.Parallel()

	if got := formatTags(nil, nil); got != "" {
		t.Fatalf("formatTags(nil, nil) = %q, want empty string", got)
	}
}

func TestCleanTagsDropsEmptyKeys(t *testing.T) {
	t.Parallel()

	cleaned := cleanTags(map[string]string{
		"env": "prod",
		"":    "ignored",
		" k ": " v ",
	})

	if _, ok := cleaned[""]; ok {
		t.Fatal("cleanTags kept empty key")
	}
	if cleaned["k"] != "v" {
		t.Fatalf("cleanTags did not trim key/value: %v", cleaned)
	}
}

func TestClientEnabledAndClose(t *testing.T) {
	t.Parallel()

	clientConn, peerConn := net.Pipe()
	defer peerConn.Close()

	client := &Client{
		enabled: true,
		conn:    clientConn,
	}

	if !client.Enabled() {
		t.Fatal("expected client.Enabled to report true with active connection")
	}

	if err := client.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	if client.Enabled() {
		t.Fatal("expected client.Enabled to report false after Close")
	}

	// Verify Close can be called again without error.
	if err := client.Close(); err != nil {
		t.Fatalf("Close (second call) error: %v", err)
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatal("nil client should report disabled")
	}
	if err := nilClient.Close(); err != nil {
		t.Fatalf("nil client Close error: %v", err)
	}
}

func TestNewClientDisabledWithoutAddress(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{
		Enabled: true,
		Address: "   ",
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	if client.Enabled() {
		t.Fatal("expected client to stay disabled when address is empty")
	}
}

func TestNewClientDialError(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{
		Enabled: true,
		Address: "bad address",
	})
	if err == nil {
		t.Fatal("expected NewClient to error for invalid address")
	}
	if !strings.Contains(err.Error(), "statsd dial") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCountEmitsStatsdLine(t *testing.T) {
	t.Parallel()

	listener, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	defer listener.Close()

	client, err := NewClient(Config{
		Enabled:    true,
		Address:    listener.LocalAddr().String(),
		Prefix:     "acceso",
		GlobalTags: map[string]string{"env": "test"},
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer client.Close()

	client.Count("auth.login", 1, map[string]string{"result": "success"})

	if err := listener.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	buf := make([]byte, 512)
	n, _, err := listener.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	got := string(buf[:n])
	want := "acceso.auth.login:1|c|#env:test,result:success"
	if got != want {
		t.Fatalf("unexpected line\n got: %q\nwant: %q", got, want)
	}
}

func TestTimingEmitsMilliseconds(t *testing.T) {
	t.Parallel()

	listener, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen error: %v", err)
	}
	defer listener.Close()

	client, err := NewClient(Config{
		Enabled: true,
		Address: listener.LocalAddr().String(),
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer client.Close()

	client.Timing("auth.login.duration", 1500*time.Millisecond, nil)

	if err := listener.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	buf := make([]byte, 512)
	n, _, err := listener.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	got := string(buf[:n])
	want := "auth.login.duration:1500|ms"
	if got != want {
		t.Fatalf("unexpected line\n got: %q\nwant: %q", got, want)
	}
}

func TestDisabledClientDropsMetrics(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{Enabled: false, Address: "127.0.0.1:8125"})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	// Must not panic or write anywhere.
	client.Count("auth.login", 1, nil)
	client.Timing("auth.login.duration", time.Second, nil)
}
