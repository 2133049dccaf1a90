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
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/k3a/html2text"

	"github.com/keithnytati/go-searchindex/internal/folding"
)

// pageFile is one discovered documentation source file.
type pageFile struct {
	// id is the page identifier: the slash-separated path relative to
	// the root with the extension stripped.
	id string

	path string
	ext  string
}

// pageDoc is the analyzed content of one page.
type pageDoc struct {
	terms      []string
	titleTerms []string
}

// parsers maps recognized source file extensions to their parser. Each
// parser returns the page title and the indexable text.
var parsers = map[string]func([]byte) (title, body string){
	".html":     parseHTML,
	".htm":      parseHTML,
	".md":       parseMarkdown,
	".markdown": parseMarkdown,
	".txt":      parseText,
}

// discoverPages walks the source tree and collects page files. Hidden
// files and directories, files with unrecognized extensions, and files
// matching an exclude pattern are skipped; the count of skipped files
// is returned alongside the pages.
func discoverPages(root string, excludes []string) ([]pageFile, int, error) {
	var pages []pageFile
	var skipped int

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		name := d.Name()
		if d.IsDir() {
			if p != root && strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		excluded, err := matchesAny(excludes, rel)
		if err != nil {
			return err
		}
		if excluded {
			skipped++
			return nil
		}

		ext := path.Ext(rel)
		if _, ok := parsers[strings.ToLower(ext)]; !ok {
			skipped++
			return nil
		}

		pages = append(pages, pageFile{
			id:   strings.TrimSuffix(rel, ext),
			path: p,
			ext:  strings.ToLower(ext),
		})
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walking %q: %w", root, err)
	}

	return pages, skipped, nil
}

// matchesAny reports whether rel matches any of the patterns.
func matchesAny(patterns []string, rel string) (bool, error) {
	for _, pattern := range patterns {
		ok, err := path.Match(pattern, rel)
		if err != nil {
			return false, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// parsePage reads and parses one source file.
func parsePage(p, ext string) (title, body string, err error) {
	src, err := os.ReadFile(p)
	if err != nil {
		return "", "", fmt.Errorf("reading page: %w", err)
	}
	title, body = parsers[ext](src)
	return title, body, nil
}

var (
	htmlTitleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	htmlH1Re    = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
)

// parseHTML extracts the title and readable text from an HTML page.
// The title comes from the <title> element, or from the first <h1>
// when there is none.
func parseHTML(src []byte) (string, string) {
	doc := string(src)

	var title string
	if m := htmlTitleRe.FindStringSubmatch(doc); m != nil {
		title = m[1]
	} else if m := htmlH1Re.FindStringSubmatch(doc); m != nil {
		title = m[1]
	}
	title = folding.FoldTitle(html2text.HTML2Text(title))

	return title, html2text.HTML2Text(doc)
}

var (
	mdHeadingRe = regexp.MustCompile(`^#{1,6}\s+(.*)$`)
	mdImageRe   = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLinkRe    = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
)

// parseMarkdown extracts the title and indexable text from a Markdown
// page. The title is the text of the first ATX heading. Link targets
// and code fence delimiter lines are dropped so that URLs and fence
// info strings do not leak into the term tables; link text and code
// content are kept.
func parseMarkdown(src []byte) (string, string) {
	var title string
	var body strings.Builder

	for _, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			continue
		}

		if m := mdHeadingRe.FindStringSubmatch(trimmed); m != nil {
			heading := stripMarkdownLinks(m[1])
			if title == "" {
				title = heading
			}
			body.WriteString(heading)
		} else {
			body.WriteString(stripMarkdownLinks(line))
		}
		body.WriteByte('\n')
	}

	return folding.FoldTitle(title), body.String()
}

// stripMarkdownLinks replaces image and link syntax with the link text.
func stripMarkdownLinks(s string) string {
	s = mdImageRe.ReplaceAllString(s, "$1")
	s = mdLinkRe.ReplaceAllString(s, "$1")
	return s
}

// parseText treats the first non-blank line as the page title and the
// whole file as the body.
func parseText(src []byte) (string, string) {
	text := string(src)

	var title string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			title = trimmed
			break
		}
	}

	return folding.FoldTitle(title), text
}
