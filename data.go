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
	"slices"
	"sort"
)

// Data is the decoded contents of a search index file. It is produced
// in one step by the documentation build and treated as immutable,
// read-only data afterwards; a new build replaces the file wholesale.
type Data struct {
	// EnvVersion is the format/version tag of the generating tool.
	EnvVersion int

	// Filenames is the ordered list of page identifiers. The position
	// of an identifier in this list is the index the term tables refer
	// to.
	Filenames []string

	// Terms maps each body-text term to the pages containing it.
	Terms TermTable

	// TitleTerms maps each term occurring in a page title to the pages
	// whose title contains it. Title hits are ranked higher than body
	// hits.
	TitleTerms TermTable

	// Objects is the API object inventory: prefix name to object name
	// to entry. It may be empty.
	Objects ObjectTable

	// ObjNames maps an object type index to its display name triple.
	ObjNames map[int]ObjName

	// ObjTypes maps an object type index to its "domain:objtype"
	// identifier.
	ObjTypes map[int]string
}

// TermTable maps a normalized term to the postings recording which
// pages contain it.
type TermTable map[string]Postings

// Terms returns the table's terms sorted bytewise.
func (t TermTable) Terms() []string {
	terms := make([]string, 0, len(t))
	for term := range t {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// Postings records the pages one term occurs on, as indices into the
// filenames list. The wire encoding of a postings value is either a
// bare integer or a list of integers; Postings remembers which form it
// was decoded from so that encoding reproduces the source exactly.
type Postings struct {
	refs   []int
	scalar bool
}

// NewPostings returns postings in canonical form for the given page
// indices: refs are sorted ascending with duplicates removed, and a
// single ref encodes as a bare integer.
func NewPostings(refs ...int) Postings {
	sorted := make([]int, len(refs))
	copy(sorted, refs)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return Postings{
		refs:   sorted,
		scalar: len(sorted) == 1,
	}
}

// ListPostings returns postings that encode as a list even when they
// hold a single ref. The refs are kept in the given order. It is used
// to reconstruct non-canonical source data.
func ListPostings(refs ...int) Postings {
	return Postings{refs: slices.Clone(refs)}
}

// Refs returns the page indices. The returned slice is shared and must
// not be modified.
func (p Postings) Refs() []int {
	return p.refs
}

// Len returns the number of page indices.
func (p Postings) Len() int {
	return len(p.refs)
}

// Scalar reports whether the postings encode as a bare integer rather
// than a list.
func (p Postings) Scalar() bool {
	return p.scalar
}

// Equal reports whether two postings hold the same refs in the same
// order and encode in the same form.
func (p Postings) Equal(o Postings) bool {
	return p.scalar == o.scalar && slices.Equal(p.refs, o.refs)
}

// String returns the postings in their wire form.
func (p Postings) String() string {
	b, err := p.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("!%v", err)
	}
	return string(b)
}

// MarshalJSON encodes the postings as a bare integer or a list of
// integers depending on their form.
func (p Postings) MarshalJSON() ([]byte, error) {
	if p.scalar && len(p.refs) == 1 {
		return json.Marshal(p.refs[0])
	}
	if p.refs == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p.refs)
}

// UnmarshalJSON decodes a bare integer or a list of integers,
// remembering which form was used.
func (p *Postings) UnmarshalJSON(data []byte) error {
	v := bytes.TrimSpace(data)
	if len(v) == 0 {
		return errors.New("empty postings value")
	}

	if v[0] == '[' {
		var refs []int
		if err := json.Unmarshal(v, &refs); err != nil {
			return fmt.Errorf("postings list: %w", err)
		}
		*p = Postings{refs: refs}
		return nil
	}

	if v[0] != '-' && (v[0] < '0' || v[0] > '9') {
		return errors.New("postings must be an integer or a list of integers")
	}
	var ref int
	if err := json.Unmarshal(v, &ref); err != nil {
		return fmt.Errorf("postings ref: %w", err)
	}
	*p = Postings{refs: []int{ref}, scalar: true}
	return nil
}

// ObjectTable is the API object inventory: prefix name to object name
// to entry. The empty prefix holds unprefixed objects.
type ObjectTable map[string]map[string]ObjectEntry

// Len returns the total number of object entries across all prefixes.
func (t ObjectTable) Len() int {
	n := 0
	for _, objects := range t {
		n += len(objects)
	}
	return n
}

// ObjectEntry locates one documented API object. Its wire encoding is
// the four-element list [page, type, priority, anchor].
type ObjectEntry struct {
	// PageRef is the index of the object's page in the filenames list.
	PageRef int

	// TypeRef is the object's type index into ObjTypes/ObjNames.
	TypeRef int

	// Priority controls ranking of object search results: 0 is
	// important, 1 is normal, 2 and above is hidden.
	Priority int

	// Anchor is the URL fragment locating the object on its page. An
	// empty anchor means the page top.
	Anchor string
}

// MarshalJSON encodes the entry as [page, type, priority, anchor].
func (e ObjectEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.PageRef, e.TypeRef, e.Priority, e.Anchor})
}

// UnmarshalJSON decodes an entry from [page, type, priority, anchor].
func (e *ObjectEntry) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("object entry: %w", err)
	}
	if len(parts) != 4 {
		return fmt.Errorf("object entry has %d elements, want 4", len(parts))
	}

	var entry ObjectEntry
	for i, dst := range []any{&entry.PageRef, &entry.TypeRef, &entry.Priority, &entry.Anchor} {
		if err := json.Unmarshal(parts[i], dst); err != nil {
			return fmt.Errorf("object entry element %d: %w", i, err)
		}
	}
	*e = entry
	return nil
}

// ObjName is the display name triple for an object type. Its wire
// encoding is the three-element list [domain, objtype, label].
type ObjName struct {
	// Domain is the documentation domain, e.g. "py".
	Domain string

	// Type is the object type within the domain, e.g. "method".
	Type string

	// Label is the human-readable type name, e.g. "Python method".
	Label string
}

// MarshalJSON encodes the name as [domain, objtype, label].
func (n ObjName) MarshalJSON() ([]byte, error) {
	return json.Marshal([]string{n.Domain, n.Type, n.Label})
}

// UnmarshalJSON decodes a name from [domain, objtype, label].
func (n *ObjName) UnmarshalJSON(data []byte) error {
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("object name: %w", err)
	}
	if len(parts) != 3 {
		return fmt.Errorf("object name has %d elements, want 3", len(parts))
	}
	*n = ObjName{Domain: parts[0], Type: parts[1], Label: parts[2]}
	return nil
}
