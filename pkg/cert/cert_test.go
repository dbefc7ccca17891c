// SPDX-License-Identifier: Apache-2.0
package cert_test

import (
	"bytes"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Work-Fort/Bellows/pkg/cert"
)

func TestGenerate_DefaultsSubjectToName(t *testing.T) {
	c, err := cert.Generate(cert.Options{Name: "provisioner"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	block, _ := pem.Decode(c.CertPEM)
	if block == nil || block.Type != "CERTIFICATE" {
		t.Fatal("expected PEM-encoded certificate")
	}

	parsed, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		t.Fatalf("failed to parse certificate: %v", err)
	}
	if parsed.Subject.CommonName != "provisioner" {
		t.Errorf("CN = %s, want provisioner", parsed.Subject.CommonName)
	}
}

func TestGenerate_PrincipalOverride(t *testing.T) {
	c, err := cert.Generate(cert.Options{Name: "provisioner", Principal: "rack-1.example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Subject != "rack-1.example.com" {
		t.Errorf("Subject = %s, want rack-1.example.com", c.Subject)
	}
}

func TestGenerate_RequiresName(t *testing.T) {
	if _, err := cert.Generate(cert.Options{}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()

	c, err := cert.Generate(cert.Options{Name: "provisioner", OutputDir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	certPath, keyPath, err := c.WriteFiles()
	if err != nil {
		t.Fatalf("WriteFiles failed: %v", err)
	}

	if certPath != filepath.Join(dir, "provisioner.pem") {
		t.Errorf("unexpected cert path: %s", certPath)
	}

	info, err := os.Stat(keyPath)
	if err != nil {
		t.Fatalf("key file not written: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("key file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestSummary(t *testing.T) {
	c, err := cert.Generate(cert.Options{Name: "provisioner"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	c.Summary(&buf)

	out := buf.String()
	if !strings.Contains(out, "provisioner") || !strings.Contains(out, "Subject CN") {
		t.Errorf("summary missing expected fields: %q", out)
	}
}
