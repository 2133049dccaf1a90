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
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/keithnytati/go-searchindex"
)

// Manifest describes the API object inventory of a documentation tree.
// It is compiled into the objects, objnames and objtypes tables of the
// generated index.
type Manifest struct {
	// Types optionally assign display labels to object types. Types
	// without a label get one derived from their identifier.
	Types []TypeLabel `yaml:"types"`

	// Objects are the documented API objects.
	Objects []Object `yaml:"objects"`
}

// TypeLabel assigns a display label to an object type.
type TypeLabel struct {
	// Type is the "domain:objtype" identifier, e.g. "py:function".
	Type string `yaml:"type"`

	// Label is the human-readable type name, e.g. "Python function".
	Label string `yaml:"label"`
}

// Object is one documented API object.
type Object struct {
	// Name is the object's unqualified name. Required.
	Name string `yaml:"name"`

	// Prefix is the dotted namespace the object lives in. Empty for
	// top-level objects.
	Prefix string `yaml:"prefix"`

	// Type is the object's "domain:objtype" identifier. Required.
	Type string `yaml:"type"`

	// Page is the identifier of the page documenting the object.
	// Required; it must name a page of the built tree.
	Page string `yaml:"page"`

	// Priority controls search ranking: 0 is important, 1 is normal, 2
	// and above is hidden. Omitted means 1.
	Priority *int `yaml:"priority"`

	// Anchor is the URL fragment locating the object on its page.
	Anchor string `yaml:"anchor"`
}

// LoadManifest reads a YAML object manifest. Unknown fields are an
// error.
func LoadManifest(path string) (*Manifest, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var manifest Manifest
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&manifest); err != nil {
		if errors.Is(err, io.EOF) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("%w: parsing manifest %q: %v", ErrSource, path, err)
	}
	return &manifest, nil
}

// compileObjects fills data's object tables from the manifest. Type
// indices are assigned in sorted order of the type identifiers so the
// compiled tables do not depend on manifest order.
func compileObjects(data *searchindex.Data, manifest *Manifest, refs map[string]int) error {
	labels := make(map[string]string, len(manifest.Types))
	for _, t := range manifest.Types {
		if _, _, err := splitType(t.Type); err != nil {
			return err
		}
		labels[t.Type] = t.Label
	}

	used := map[string]struct{}{}
	for _, obj := range manifest.Objects {
		if obj.Name == "" {
			return fmt.Errorf("%w: object with empty name in manifest", ErrSource)
		}
		if _, ok := refs[obj.Page]; !ok {
			return fmt.Errorf("%w: object %q references unknown page %q",
				ErrSource, qualifiedName(obj), obj.Page)
		}
		if _, _, err := splitType(obj.Type); err != nil {
			return fmt.Errorf("object %q: %w", qualifiedName(obj), err)
		}
		used[obj.Type] = struct{}{}
	}

	typeIDs := make([]string, 0, len(used))
	for t := range used {
		typeIDs = append(typeIDs, t)
	}
	slices.Sort(typeIDs)

	typeRef := make(map[string]int, len(typeIDs))
	for i, t := range typeIDs {
		domain, objType, _ := splitType(t)
		label := labels[t]
		if label == "" {
			label = domain + " " + objType
		}
		typeRef[t] = i
		data.ObjTypes[i] = t
		data.ObjNames[i] = searchindex.ObjName{
			Domain: domain,
			Type:   objType,
			Label:  label,
		}
	}

	for _, obj := range manifest.Objects {
		names := data.Objects[obj.Prefix]
		if names == nil {
			names = map[string]searchindex.ObjectEntry{}
			data.Objects[obj.Prefix] = names
		}
		if _, ok := names[obj.Name]; ok {
			return fmt.Errorf("%w: duplicate object %q", ErrSource, qualifiedName(obj))
		}

		priority := 1
		if obj.Priority != nil {
			priority = *obj.Priority
		}
		names[obj.Name] = searchindex.ObjectEntry{
			PageRef:  refs[obj.Page],
			TypeRef:  typeRef[obj.Type],
			Priority: priority,
			Anchor:   obj.Anchor,
		}
	}

	return nil
}

// splitType parses a "domain:objtype" identifier.
func splitType(s string) (domain, objType string, err error) {
	domain, objType, ok := strings.Cut(s, ":")
	if !ok || domain == "" || objType == "" || strings.Contains(objType, ":") {
		return "", "", fmt.Errorf("%w: malformed object type %q", ErrSource, s)
	}
	return domain, objType, nil
}

func qualifiedName(obj Object) string {
	if obj.Prefix == "" {
		return obj.Name
	}
	return obj.Prefix + "." + obj.Name
}
