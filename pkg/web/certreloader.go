package web

import (
	"crypto/tls"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/charmbracelet/log"
)

// CertReloader serves the TLS certificate, swapping it for a fresh read
// of the cert and key files whenever the process receives SIGHUP.
type CertReloader struct {
	cert     atomic.Pointer[tls.Certificate]
	certPath string
	keyPath  string
}

// NewCertReloader loads the initial certificate and starts watching for
// SIGHUP.
func NewCertReloader(certPath, keyPath string, logger *log.Logger) (*CertReloader, error) {
	cr := &CertReloader{certPath: certPath, keyPath: keyPath}
	if err := cr.Reload(); err != nil {
		return nil, err
	}

	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	go func() {
		for range sighup {
			logger.Info("reloading TLS certificate", "cert", certPath, "key", keyPath)
			if err := cr.Reload(); err != nil {
				logger.Error("keeping the previous TLS certificate", "err", err)
			}
		}
	}()

	return cr, nil
}

// Reload reads the certificate and key files and swaps the served
// certificate on success. A failed reload leaves the previous
// certificate in place.
func (cr *CertReloader) Reload() error {
	cert, err := tls.LoadX509KeyPair(cr.certPath, cr.keyPath)
	if err != nil {
		return fmt.Errorf("load x509 key pair: %w", err)
	}
	cr.cert.Store(&cert)
	return nil
}

// GetCertificateFunc plugs into tls.Config.GetCertificate.
func (cr *CertReloader) GetCertificateFunc() func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	return func(*tls.ClientHelloInfo) (*tls.Certificate, error) {
		return cr.cert.Load(), nil
	}
}
