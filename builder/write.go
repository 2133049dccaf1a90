// Copyright 2025 Keith Nytati
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package builder

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/keithnytati/go-searchindex"
)

// WriteFile encodes data in the given format and writes it to path,
// replacing any existing file. The index is written to a temporary
// file in the target directory and renamed into place, so readers
// never observe a partially written index. Paths ending in .gz are
// gzip-compressed.
func WriteFile(path string, data *searchindex.Data, format searchindex.Format) error {
	var buf bytes.Buffer
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		zw := gzip.NewWriter(&buf)
		if err := searchindex.Encode(zw, data, format); err != nil {
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("compressing %q: %w", path, err)
		}
	} else {
		if err := searchindex.Encode(&buf, data, format); err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return fmt.Errorf("writing %q: %w", f.Name(), err)
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return fmt.Errorf("setting permissions on %q: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", f.Name(), err)
	}

	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("replacing %q: %w", path, err)
	}
	return nil
}
