package skyq

import (
	"errors"
	"testing"
)

func TestNewEndpoint_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"192.168.1.20", "192.168.1.20:9006"},
		{" 10.0.0.5 ", "10.0.0.5:9006"},
		{"fd00::20", "[fd00::20]:9006"},
		{"[fd00::20]", "[fd00::20]:9006"},
	}
	for _, tt := range tests {
		e, err := NewEndpoint(tt.in)
		if err != nil {
			t.Fatalf("NewEndpoint(%q) returned error: %v", tt.in, err)
		}
		if e.String() != tt.want {
			t.Fatalf("NewEndpoint(%q).String() = %q, want %q", tt.in, e.String(), tt.want)
		}
		if e.Port() != DefaultPort {
			t.Fatalf("Port = %d, want %d", e.Port(), DefaultPort)
		}
	}
}

func TestNewEndpoint_Invalid(t *testing.T) {
	for _, in := range []string{"999.999.1.1", "not-an-ip", "", "skyq.local", "192.168.1"} {
		if _, err := NewEndpoint(in); !errors.Is(err, ErrInvalidAddress) {
			t.Fatalf("NewEndpoint(%q) error = %v, want ErrInvalidAddress", in, err)
		}
	}
}

func TestEndpoint_BaseURL(t *testing.T) {
	e, err := newEndpoint("fd00::1", 8080)
	if err != nil {
		t.Fatalf("newEndpoint returned error: %v", err)
	}
	if got := e.baseURL().String(); got != "http://[fd00::1]:8080" {
		t.Fatalf("baseURL = %q", got)
	}
	if _, err := newEndpoint("10.0.0.1", 70000); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("newEndpoint with bad port error = %v, want ErrInvalidAddress", err)
	}
}
