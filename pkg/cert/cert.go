// SPDX-License-Identifier: Apache-2.0

// Package cert generates self-signed certificate/key pairs used to establish
// provisioning trust. Each pair is written as <name>.pem and <name>-key.pem
// with a human-readable summary available for standard output.
package cert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Validity is how long generated certificates remain valid.
const Validity = 10 * 365 * 24 * time.Hour

// Options parameterizes certificate generation. Name is required; Principal
// overrides the subject CN (which otherwise defaults to Name); OutputDir
// overrides where the pair is written.
type Options struct {
	Name      string
	Principal string
	OutputDir string
}

// Certificate is a generated certificate/key pair, PEM-encoded and ready to
// write.
type Certificate struct {
	Name      string
	Subject   string
	NotAfter  time.Time
	CertPEM   []byte
	KeyPEM    []byte
	outputDir string
}

// Generate creates a new self-signed certificate and private key.
func Generate(opts Options) (*Certificate, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("certificate name is required")
	}

	subject := opts.Principal
	if subject == "" {
		subject = opts.Name
	}

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, fmt.Errorf("failed to generate serial number: %w", err)
	}

	now := time.Now()
	template := x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: subject},
		NotBefore:             now,
		NotAfter:              now.Add(Validity),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}

	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return nil, fmt.Errorf("failed to create certificate: %w", err)
	}

	keyDER, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}

	log.Debugf("generated certificate for %q (CN=%s)", opts.Name, subject)

	return &Certificate{
		Name:      opts.Name,
		Subject:   subject,
		NotAfter:  template.NotAfter,
		CertPEM:   pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		KeyPEM:    pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER}),
		outputDir: opts.OutputDir,
	}, nil
}

// WriteFiles writes the pair into the configured output directory and
// returns the paths written. The key file is only readable by the owner.
func (c *Certificate) WriteFiles() (string, string, error) {
	dir := c.outputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create output directory: %w", err)
	}

	certPath := filepath.Join(dir, c.Name+".pem")
	keyPath := filepath.Join(dir, c.Name+"-key.pem")

	if err := os.WriteFile(certPath, c.CertPEM, 0644); err != nil {
		return "", "", fmt.Errorf("failed to write certificate: %w", err)
	}
	if err := os.WriteFile(keyPath, c.KeyPEM, 0600); err != nil {
		return "", "", fmt.Errorf("failed to write private key: %w", err)
	}

	return certPath, keyPath, nil
}

// Summary renders a human-readable description of the certificate.
func (c *Certificate) Summary(w io.Writer) {
	fmt.Fprintf(w, "Certificate: %s\n", c.Name)
	fmt.Fprintf(w, "  Subject CN: %s\n", c.Subject)
	fmt.Fprintf(w, "  Expires:    %s\n", c.NotAfter.Format("2006-01-02"))
}
