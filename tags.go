// Copyright 2024 The yamlemit Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlemit

import (
	"fmt"
	"strings"
)

var defaultTagDirectives = []TagDirective{
	{Handle: "!", Prefix: "!"},
	{Handle: "!!", Prefix: "tag:yaml.org,2002:"},
}

// tagDirectiveTable tracks the %TAG directives in scope for the document
// currently being emitted, keyed by handle to enforce uniqueness.
type tagDirectiveTable struct {
	order []TagDirective
	seen  map[string]string // handle -> prefix
}

func newTagDirectiveTable() *tagDirectiveTable {
	return &tagDirectiveTable{seen: map[string]string{}}
}

// add appends a directive, reporting a DuplicateTagDirective error if the
// handle is already registered with a different prefix, unless
// allowDuplicates is set (used when merging in the built-in defaults after
// user directives have already been recorded).
func (t *tagDirectiveTable) add(d TagDirective, allowDuplicates bool) error {
	if prefix, ok := t.seen[d.Handle]; ok {
		if prefix == d.Prefix || allowDuplicates {
			return nil
		}
		return newError(DuplicateTagDirective, invalidState,
			fmt.Sprintf("duplicate %%TAG directive for handle %q", d.Handle))
	}
	t.seen[d.Handle] = d.Prefix
	t.order = append(t.order, d)
	return nil
}

func (t *tagDirectiveTable) reset() {
	t.order = nil
	t.seen = map[string]string{}
}

// resolve finds the longest-prefix directive matching tag, splitting it into
// a known handle plus suffix, or leaving handle empty if nothing matches.
func (t *tagDirectiveTable) resolve(tag string) (handle, suffix string, ok bool) {
	best := -1
	for _, d := range t.order {
		if strings.HasPrefix(tag, d.Prefix) && len(d.Prefix) > best {
			best = len(d.Prefix)
			handle, suffix = d.Handle, tag[len(d.Prefix):]
			ok = true
		}
	}
	return
}

// uriEncode percent-encodes every byte of s not in the YAML tag-safe set:
// alphanumerics, '_', '-' (is_alpha in the teacher's yamlprivateh.go), plus
// the fixed punctuation set yaml_emitter_write_tag_content treats as safe,
// and '!'.
func uriEncode(s string) string {
	const safe = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz" +
		"-;/?:@&=+$,_.~*'()[]!"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(safe, c) >= 0 {
			b.WriteByte(c)
		} else {
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// processTag writes the current node's tag indicator, using the
// handle/suffix pair analyzeEvent already resolved into e.tagData:
// "handle+suffix" when a directive matched, the bare handle when the suffix
// is empty, or a verbatim "!<uri>" form when no directive covers the tag.
func (e *Emitter) processTag() error {
	if e.tagData.handle == "" && e.tagData.suffix == "" {
		return nil
	}
	if e.tagData.handle == "" {
		return e.writeIndicator("!<"+uriEncode(e.tagData.suffix)+">", true, false, false)
	}
	if e.tagData.suffix == "" {
		return e.writeIndicator(e.tagData.handle, true, false, false)
	}
	return e.writeIndicator(e.tagData.handle+uriEncode(e.tagData.suffix), true, false, false)
}
