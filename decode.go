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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// ErrMalformed indicates data that cannot be parsed as a search index.
// All parse errors returned by Decode unwrap to it.
var ErrMalformed = errors.New("malformed search index")

// Decode reads a search index from r. Both framings are accepted and
// the detected one is returned so the file can be re-encoded in kind.
func Decode(r io.Reader) (*Data, Format, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("reading search index: %w", err)
	}

	payload, format, err := unframe(raw)
	if err != nil {
		return nil, 0, err
	}

	data, err := decodePayload(payload)
	if err != nil {
		return nil, 0, err
	}
	return data, format, nil
}

// unframe strips the JavaScript loader call when present and returns
// the JSON payload.
func unframe(raw []byte) ([]byte, Format, error) {
	body := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(body, []byte(jsPrefix)) {
		return body, FormatJSON, nil
	}

	body = bytes.TrimSpace(body[len(jsPrefix):])
	// Some emitters terminate the call with a semicolon.
	if bytes.HasSuffix(body, []byte(";")) {
		body = bytes.TrimSpace(body[:len(body)-1])
	}
	if !bytes.HasSuffix(body, []byte(")")) {
		return nil, 0, fmt.Errorf("%w: unterminated Search.setIndex call", ErrMalformed)
	}
	return bytes.TrimSpace(body[:len(body)-1]), FormatJS, nil
}

func decodePayload(payload []byte) (*Data, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var unknown []string
	for name := range raw {
		switch name {
		case "envversion", "filenames", "objects", "objnames", "objtypes", "terms", "titleterms":
		default:
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: unknown fields: %s", ErrMalformed, strings.Join(unknown, ", "))
	}

	data := &Data{}
	if err := requireField(raw, "envversion", &data.EnvVersion); err != nil {
		return nil, err
	}
	if err := requireField(raw, "filenames", &data.Filenames); err != nil {
		return nil, err
	}
	if err := requireField(raw, "objtypes", &data.ObjTypes); err != nil {
		return nil, err
	}

	var err error
	if data.Terms, err = decodeTermTable(raw, "terms"); err != nil {
		return nil, err
	}
	if data.TitleTerms, err = decodeTermTable(raw, "titleterms"); err != nil {
		return nil, err
	}
	if data.Objects, err = decodeObjects(raw); err != nil {
		return nil, err
	}
	if data.ObjNames, err = decodeObjNames(raw); err != nil {
		return nil, err
	}

	return data, nil
}

// requireRaw returns the named top-level field, rejecting missing and
// null values.
func requireRaw(raw map[string]json.RawMessage, name string) (json.RawMessage, error) {
	value, ok := raw[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing field %q", ErrMalformed, name)
	}
	if string(bytes.TrimSpace(value)) == "null" {
		return nil, fmt.Errorf("%w: field %q is null", ErrMalformed, name)
	}
	return value, nil
}

// requireField unmarshals the named top-level field into v.
func requireField(raw map[string]json.RawMessage, name string, v any) error {
	value, err := requireRaw(raw, name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(value, v); err != nil {
		return fmt.Errorf("%w: field %q: %v", ErrMalformed, name, err)
	}
	return nil
}

func decodeTermTable(raw map[string]json.RawMessage, name string) (TermTable, error) {
	value, err := requireRaw(raw, name)
	if err != nil {
		return nil, err
	}

	var rawTable map[string]json.RawMessage
	if err := json.Unmarshal(value, &rawTable); err != nil {
		return nil, fmt.Errorf("%w: field %q: %v", ErrMalformed, name, err)
	}

	table := make(TermTable, len(rawTable))
	for term, v := range rawTable {
		var p Postings
		if err := json.Unmarshal(v, &p); err != nil {
			return nil, fmt.Errorf("%w: %s[%q]: %v", ErrMalformed, name, term, err)
		}
		table[term] = p
	}
	return table, nil
}

func decodeObjects(raw map[string]json.RawMessage) (ObjectTable, error) {
	value, err := requireRaw(raw, "objects")
	if err != nil {
		return nil, err
	}

	var rawTable map[string]map[string]json.RawMessage
	if err := json.Unmarshal(value, &rawTable); err != nil {
		return nil, fmt.Errorf("%w: field \"objects\": %v", ErrMalformed, err)
	}

	table := make(ObjectTable, len(rawTable))
	for prefix, objects := range rawTable {
		entries := make(map[string]ObjectEntry, len(objects))
		for name, v := range objects {
			var entry ObjectEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return nil, fmt.Errorf("%w: objects[%q][%q]: %v", ErrMalformed, prefix, name, err)
			}
			entries[name] = entry
		}
		table[prefix] = entries
	}
	return table, nil
}

func decodeObjNames(raw map[string]json.RawMessage) (map[int]ObjName, error) {
	value, err := requireRaw(raw, "objnames")
	if err != nil {
		return nil, err
	}

	var rawNames map[int]json.RawMessage
	if err := json.Unmarshal(value, &rawNames); err != nil {
		return nil, fmt.Errorf("%w: field \"objnames\": %v", ErrMalformed, err)
	}

	names := make(map[int]ObjName, len(rawNames))
	for ref, v := range rawNames {
		var name ObjName
		if err := json.Unmarshal(v, &name); err != nil {
			return nil, fmt.Errorf("%w: objnames[%d]: %v", ErrMalformed, ref, err)
		}
		names[ref] = name
	}
	return names, nil
}
