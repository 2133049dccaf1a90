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

package searchindex

import (
	"fmt"
)

// jsPrefix opens the JavaScript framing of a search index file. The
// matching close is a single ")".
const jsPrefix = "Search.setIndex("

// Format identifies the framing of a search index file.
type Format int

const (
	// FormatJSON frames the index as a bare JSON object.
	FormatJSON Format = iota

	// FormatJS frames the index in a Search.setIndex JavaScript call so
	// the file can be loaded with a script tag.
	FormatJS
)

// String returns the format's name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatJS:
		return "js"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses a format name as returned by Format.String.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "js":
		return FormatJS, nil
	default:
		return 0, fmt.Errorf("unknown format: %q", s)
	}
}
