package skyq

import (
	"fmt"
	"net/netip"
	"net/url"
	"strings"
)

// DefaultPort is the port the Sky Q and Sky Q Mini boxes serve their
// REST API on.
const DefaultPort = 9006

// Endpoint is a validated device address. The zero value is not usable.
type Endpoint struct {
	addr netip.Addr
	port uint16
}

// NewEndpoint validates address as an IPv4 or IPv6 literal. Host names are
// rejected; no resolution is attempted.
func NewEndpoint(address string) (Endpoint, error) {
	return newEndpoint(address, DefaultPort)
}

func newEndpoint(address string, port int) (Endpoint, error) {
	trimmed := strings.TrimSpace(address)
	// Accept the bracketed form people paste from URLs.
	trimmed = strings.TrimSuffix(strings.TrimPrefix(trimmed, "["), "]")
	addr, err := netip.ParseAddr(trimmed)
	if err != nil {
		return Endpoint{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	if port <= 0 || port > 65535 {
		return Endpoint{}, fmt.Errorf("%w: port %d out of range", ErrInvalidAddress, port)
	}
	return Endpoint{addr: addr, port: uint16(port)}, nil
}

// Addr returns the IP address.
func (e Endpoint) Addr() netip.Addr { return e.addr }

// Port returns the TCP port.
func (e Endpoint) Port() int { return int(e.port) }

// String returns host:port, bracketing IPv6 addresses.
func (e Endpoint) String() string {
	return netip.AddrPortFrom(e.addr, e.port).String()
}

func (e Endpoint) baseURL() *url.URL {
	return &url.URL{Scheme: "http", Host: e.String()}
}
