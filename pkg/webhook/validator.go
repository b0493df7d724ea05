package webhook

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strings"
)

var (
	// ErrInvalidURL is returned for URLs that do not parse or carry no
	// hostname.
	ErrInvalidURL = errors.New("invalid webhook URL")
	// ErrInvalidScheme is returned for schemes other than http and https.
	ErrInvalidScheme = errors.New("webhook URL must use http or https scheme")
	// ErrPrivateIP is returned when the URL points inside the network
	// the server runs on.
	ErrPrivateIP = errors.New("webhook URL cannot resolve to private or internal IP addresses")
)

// blockedNets are ranges netip does not classify itself: this-network,
// carrier-grade NAT, the IETF protocol and benchmarking blocks, the
// TEST-NETs, and everything from 240.0.0.0 up.
var blockedNets = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("192.0.2.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
	netip.MustParsePrefix("198.51.100.0/24"),
	netip.MustParsePrefix("203.0.113.0/24"),
	netip.MustParsePrefix("240.0.0.0/4"),
}

// ValidateWebhookURL checks that rawURL is an http or https URL whose
// host stays outside loopback, private, link-local, and reserved
// address space. Hostnames are resolved and every returned address is
// checked, so a public-looking name backed by a private record is
// rejected as well.
func ValidateWebhookURL(rawURL string) error {
	if rawURL == "" {
		return ErrInvalidURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidScheme
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("%w: missing hostname", ErrInvalidURL)
	}
	if isLocalhost(host) {
		return ErrPrivateIP
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		if isBlockedAddr(addr) {
			return ErrPrivateIP
		}
		return nil
	}

	addrs, err := net.DefaultResolver.LookupNetIP(context.Background(), "ip", host)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve hostname: %v", ErrInvalidURL, err)
	}
	for _, addr := range addrs {
		if isBlockedAddr(addr) {
			return ErrPrivateIP
		}
	}

	return nil
}

// validateDialAddr re-checks the literal address handed to the dialer.
// The transport dials after name resolution, so a record that changed
// since ValidateWebhookURL ran is still caught here.
func validateDialAddr(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err //nolint:wrapcheck
	}
	addrIP, err := netip.ParseAddr(host)
	if err != nil {
		return nil
	}
	if isBlockedAddr(addrIP) {
		return fmt.Errorf("blocked connection to private IP: %w", ErrPrivateIP)
	}
	return nil
}

func isLocalhost(host string) bool {
	host = strings.ToLower(host)
	return host == "localhost" ||
		host == "localhost.localdomain" ||
		strings.HasSuffix(host, ".localhost")
}

func isBlockedAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	if addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsUnspecified() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsMulticast() {
		return true
	}
	for _, p := range blockedNets {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
