package web

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func writeTestCert(t *testing.T, certPath, keyPath, cn string) {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject:      pkix.Name{CommonName: cn},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, pub, priv)
	if err != nil {
		t.Fatal(err)
	}
	keyDer, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		t.Fatal(err)
	}

	certPem := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPem := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDer})
	if err := os.WriteFile(certPath, certPem, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(keyPath, keyPem, 0o600); err != nil {
		t.Fatal(err)
	}
}

func commonName(t *testing.T, cr *CertReloader) string {
	t.Helper()
	cert, err := cr.GetCertificateFunc()(nil)
	if err != nil {
		t.Fatal(err)
	}
	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	if err != nil {
		t.Fatal(err)
	}
	return leaf.Subject.CommonName
}

func TestCertReloader(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "tls.crt")
	keyPath := filepath.Join(dir, "tls.key")
	writeTestCert(t, certPath, keyPath, "convene.test")

	cr, err := NewCertReloader(certPath, keyPath, log.New(os.Stderr))
	if err != nil {
		t.Fatal(err)
	}
	if cn := commonName(t, cr); cn != "convene.test" {
		t.Fatalf("expected convene.test, got %q", cn)
	}

	writeTestCert(t, certPath, keyPath, "convene.next")
	if err := cr.Reload(); err != nil {
		t.Fatal(err)
	}
	if cn := commonName(t, cr); cn != "convene.next" {
		t.Fatalf("expected convene.next after reload, got %q", cn)
	}
}

func TestCertReloaderMissingFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := NewCertReloader(filepath.Join(dir, "nope.crt"), filepath.Join(dir, "nope.key"), log.New(os.Stderr))
	if err == nil {
		t.Fatal("expected an error for missing cert files")
	}
}

func TestCertReloaderKeepsServingOnBadReload(t *testing.T) {
	dir := t.TempDir()
	certPath := filepath.Join(dir, "tls.crt")
	keyPath := filepath.Join(dir, "tls.key")
	writeTestCert(t, certPath, keyPath, "convene.test")

	cr, err := NewCertReloader(certPath, keyPath, log.New(os.Stderr))
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(certPath, []byte("not a certificate"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := cr.Reload(); err == nil {
		t.Fatal("expected reload to fail on a corrupt certificate")
	}
	if cn := commonName(t, cr); cn != "convene.test" {
		t.Fatalf("expected the previous certificate to keep serving, got %q", cn)
	}
}
