package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"
)

func TestValidateWebhookURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want error
	}{
		{"https with public host", "https://1.1.1.1/hooks/convene", nil},
		{"http with port", "http://8.8.8.8:8080/hooks", nil},
		{"query string", "https://8.8.8.8/hooks?team=platform", nil},
		{"public IPv6", "http://[2001:4860:4860::8888]/hooks", nil},

		{"empty", "", ErrInvalidURL},
		{"no hostname", "http:///hooks", ErrInvalidURL},
		{"ftp scheme", "ftp://example.com/hooks", ErrInvalidScheme},
		{"file scheme", "file:///etc/passwd", ErrInvalidScheme},
		{"bare host", "example.com/hooks", ErrInvalidScheme},

		{"localhost", "http://localhost/hooks", ErrPrivateIP},
		{"localhost with port", "http://localhost:8080/hooks", ErrPrivateIP},
		{"localhost subdomain", "http://api.localhost/hooks", ErrPrivateIP},
		{"loopback", "http://127.0.0.1:9000/hooks", ErrPrivateIP},
		{"loopback off the first address", "http://127.1.2.3/hooks", ErrPrivateIP},
		{"loopback IPv6", "http://[::1]/hooks", ErrPrivateIP},
		{"rfc1918 10/8", "http://10.1.2.3/hooks", ErrPrivateIP},
		{"rfc1918 172.16/12", "http://172.20.0.1/hooks", ErrPrivateIP},
		{"rfc1918 192.168/16", "http://192.168.0.10/hooks", ErrPrivateIP},
		{"cloud metadata", "http://169.254.169.254/latest/meta-data/", ErrPrivateIP},
		{"unspecified", "http://0.0.0.0/hooks", ErrPrivateIP},
		{"carrier-grade nat", "http://100.64.0.1/hooks", ErrPrivateIP},
		{"test net", "http://203.0.113.7/hooks", ErrPrivateIP},
		{"broadcast", "http://255.255.255.255/hooks", ErrPrivateIP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWebhookURL(tt.url)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("ValidateWebhookURL(%q) = %v, want nil", tt.url, err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("ValidateWebhookURL(%q) = %v, want %v", tt.url, err, tt.want)
			}
		})
	}
}

func TestIsBlockedAddr(t *testing.T) {
	tests := []struct {
		addr    string
		blocked bool
	}{
		{"8.8.8.8", false},
		{"1.1.1.1", false},
		{"2001:4860:4860::8888", false},

		{"127.0.0.1", true},
		{"127.5.6.7", true},
		{"::1", true},
		{"10.0.0.1", true},
		{"172.16.0.1", true},
		{"172.31.255.255", true},
		{"192.168.1.1", true},
		{"169.254.169.254", true},
		{"fe80::1", true},
		{"0.0.0.0", true},
		{"0.1.2.3", true},
		{"100.64.0.1", true},
		{"100.127.255.255", true},
		{"192.0.2.1", true},
		{"198.18.0.1", true},
		{"198.51.100.9", true},
		{"203.0.113.10", true},
		{"240.0.0.1", true},
		{"255.255.255.255", true},

		// IPv4-mapped IPv6 must not slip past the IPv4 rules.
		{"::ffff:10.0.0.1", true},
		{"::ffff:169.254.169.254", true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			if got := isBlockedAddr(netip.MustParseAddr(tt.addr)); got != tt.blocked {
				t.Errorf("isBlockedAddr(%s) = %v, want %v", tt.addr, got, tt.blocked)
			}
		})
	}
}

func TestIsLocalhost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"LOCALHOST", true},
		{"localhost.localdomain", true},
		{"api.localhost", true},
		{"example.com", false},
		{"localhos", false},
		{"localhost.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := isLocalhost(tt.host); got != tt.want {
				t.Errorf("isLocalhost(%q) = %v, want %v", tt.host, got, tt.want)
			}
		})
	}
}

func TestValidateDialAddr(t *testing.T) {
	tests := []struct {
		addr    string
		wantErr bool
	}{
		{"8.8.8.8:443", false},
		{"example.com:443", false},
		{"127.0.0.1:80", true},
		{"10.0.0.1:80", true},
		{"169.254.169.254:80", true},
		{"[::1]:443", true},
		{"no-port", true},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			err := validateDialAddr(tt.addr)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateDialAddr(%q) = %v, wantErr %v", tt.addr, err, tt.wantErr)
			}
		})
	}
}

func TestDeliveryClientRefusesLoopback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL, nil)
	if err != nil {
		t.Fatal(err)
	}

	res, err := deliveryClient.Do(req)
	if res != nil {
		res.Body.Close()
	}
	if !errors.Is(err, ErrPrivateIP) {
		t.Fatalf("expected ErrPrivateIP dialing %s, got %v", srv.URL, err)
	}
}

func TestDeliveryClientNeverFollowsRedirects(t *testing.T) {
	err := deliveryClient.CheckRedirect(nil, nil)
	if !errors.Is(err, http.ErrUseLastResponse) {
		t.Fatalf("CheckRedirect = %v, want http.ErrUseLastResponse", err)
	}
}
