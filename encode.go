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
	"encoding/json"
	"fmt"
	"io"
)

// rawData fixes the canonical top-level field order. The order matches
// a bytewise sort of the field names, so the whole encoding has one
// key-ordering rule.
type rawData struct {
	EnvVersion int             `json:"envversion"`
	Filenames  []string        `json:"filenames"`
	Objects    ObjectTable     `json:"objects"`
	ObjNames   map[int]ObjName `json:"objnames"`
	ObjTypes   map[int]string  `json:"objtypes"`
	Terms      TermTable       `json:"terms"`
	TitleTerms TermTable       `json:"titleterms"`
}

// Encode writes data to w in the given format. The encoding is
// canonical and byte-deterministic: fixed top-level field order, all
// object keys sorted bytewise, compact separators, and a trailing
// newline. Encoding the result of Decode reproduces a canonically
// encoded file byte for byte.
func Encode(w io.Writer, data *Data, format Format) error {
	raw := rawData{
		EnvVersion: data.EnvVersion,
		Filenames:  data.Filenames,
		Objects:    data.Objects,
		ObjNames:   data.ObjNames,
		ObjTypes:   data.ObjTypes,
		Terms:      data.Terms,
		TitleTerms: data.TitleTerms,
	}

	// Nil maps and slices would encode as null; the format wants empty
	// containers.
	if raw.Filenames == nil {
		raw.Filenames = []string{}
	}
	if raw.Objects == nil {
		raw.Objects = ObjectTable{}
	}
	if raw.ObjNames == nil {
		raw.ObjNames = map[int]ObjName{}
	}
	if raw.ObjTypes == nil {
		raw.ObjTypes = map[int]string{}
	}
	if raw.Terms == nil {
		raw.Terms = TermTable{}
	}
	if raw.TitleTerms == nil {
		raw.TitleTerms = TermTable{}
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encoding search index: %w", err)
	}

	var out []byte
	switch format {
	case FormatJSON:
		out = append(b, '\n')
	case FormatJS:
		out = make([]byte, 0, len(jsPrefix)+len(b)+2)
		out = append(out, jsPrefix...)
		out = append(out, b...)
		out = append(out, ')', '\n')
	default:
		return fmt.Errorf("unknown format: %v", format)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("writing search index: %w", err)
	}
	return nil
}
