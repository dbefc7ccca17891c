// SPDX-License-Identifier: Apache-2.0
package util

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ulikunitz/xz"
)

// ReadFileMaybeCompressed reads a file, transparently decompressing it when
// the name ends in .xz. Published image catalogs are routinely shipped
// compressed; everything else passes through untouched.
func ReadFileMaybeCompressed(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".xz") {
		log.Debugf("decompressing %s", path)
		xzReader, err := xz.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		reader = xzReader
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}
