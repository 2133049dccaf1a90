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

// Package searchindex implements a library for reading, validating,
// querying, and writing documentation search index files in pure Go.
//
// A search index file is a single JSON object, produced in one step by
// a documentation build and replaced wholesale by the next build. It
// holds these top-level fields:
//
//  1. envversion: the format/version tag of the generating tool.
//  2. filenames: the ordered list of page identifiers. A page's
//     position in this list is the index the term tables refer to.
//  3. terms: a table mapping each body-text term to the pages
//     containing it, as a bare integer for one page or a list of
//     integers for several.
//  4. titleterms: the same table for terms occurring in page titles,
//     which search ranks higher.
//  5. objects, objnames, objtypes: the inventory of documented API
//     objects and their type names. The inventory may be empty.
//
// The object may stand alone (JSON) or be wrapped in a
// Search.setIndex(...) JavaScript call so a viewer can load it with a
// script tag. Files may be gzip-compressed.
//
// The builder subpackage generates index files from a documentation
// source tree.
package searchindex
