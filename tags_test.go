// Copyright 2024 The yamlemit Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlemit

import "testing"

func TestTagDirectiveTableResolveLongestPrefix(t *testing.T) {
	tbl := newTagDirectiveTable()
	mustAdd(t, tbl, TagDirective{Handle: "!!", Prefix: "tag:yaml.org,2002:"}, false)
	mustAdd(t, tbl, TagDirective{Handle: "!e!", Prefix: "tag:example.com,2024:"}, false)
	mustAdd(t, tbl, TagDirective{Handle: "!e2!", Prefix: "tag:example.com,2024:v2:"}, false)

	handle, suffix, ok := tbl.resolve("tag:example.com,2024:v2:widget")
	if !ok || handle != "!e2!" || suffix != "widget" {
		t.Fatalf("resolve() = (%q, %q, %v), want the longest matching prefix !e2!", handle, suffix, ok)
	}

	handle, suffix, ok = tbl.resolve("tag:example.com,2024:foo")
	if !ok || handle != "!e!" || suffix != "foo" {
		t.Fatalf("resolve() = (%q, %q, %v), want !e!/foo", handle, suffix, ok)
	}
}

func TestTagDirectiveTableResolveUnknownPrefix(t *testing.T) {
	tbl := newTagDirectiveTable()
	mustAdd(t, tbl, TagDirective{Handle: "!!", Prefix: "tag:yaml.org,2002:"}, false)

	_, _, ok := tbl.resolve("tag:other.example,2024:thing")
	if ok {
		t.Fatal("a tag with no matching directive prefix must not resolve")
	}
}

func TestTagDirectiveTableRejectsDuplicateHandle(t *testing.T) {
	tbl := newTagDirectiveTable()
	mustAdd(t, tbl, TagDirective{Handle: "!e!", Prefix: "tag:example.com,2024:"}, false)

	err := tbl.add(TagDirective{Handle: "!e!", Prefix: "tag:other.example,2024:"}, false)
	if err == nil {
		t.Fatal("re-declaring a handle with a different prefix must fail")
	}
	var yerr *Error
	if !asError(err, &yerr) || yerr.Kind != DuplicateTagDirective {
		t.Fatalf("want a DuplicateTagDirective error, got %v", err)
	}
}

func TestTagDirectiveTableSameHandleSamePrefixIsNotDuplicate(t *testing.T) {
	tbl := newTagDirectiveTable()
	mustAdd(t, tbl, TagDirective{Handle: "!e!", Prefix: "tag:example.com,2024:"}, false)
	if err := tbl.add(TagDirective{Handle: "!e!", Prefix: "tag:example.com,2024:"}, false); err != nil {
		t.Fatalf("re-adding an identical directive should be a no-op, got %v", err)
	}
}

func TestTagDirectiveTableAllowDuplicatesBypassesConflict(t *testing.T) {
	tbl := newTagDirectiveTable()
	mustAdd(t, tbl, TagDirective{Handle: "!", Prefix: "!my-prefix:"}, false)
	if err := tbl.add(TagDirective{Handle: "!", Prefix: "!"}, true); err != nil {
		t.Fatalf("allowDuplicates must tolerate a conflicting handle, got %v", err)
	}
}

func TestTagDirectiveTableReset(t *testing.T) {
	tbl := newTagDirectiveTable()
	mustAdd(t, tbl, TagDirective{Handle: "!e!", Prefix: "tag:example.com,2024:"}, false)
	tbl.reset()
	if _, _, ok := tbl.resolve("tag:example.com,2024:foo"); ok {
		t.Fatal("reset must clear all previously registered directives")
	}
	if err := tbl.add(TagDirective{Handle: "!e!", Prefix: "tag:elsewhere.example,2024:"}, false); err != nil {
		t.Fatalf("after reset the same handle should be free to redefine, got %v", err)
	}
}

func TestURIEncodeLeavesSafeCharactersAlone(t *testing.T) {
	const safe = "abcXYZ019-;/?:@&=+$,_.!~*'()[]"
	if got := uriEncode(safe); got != safe {
		t.Fatalf("uriEncode(%q) = %q, want it unchanged", safe, got)
	}
}

func TestURIEncodePercentEncodesUnsafeBytes(t *testing.T) {
	got := uriEncode("a b#é")
	want := "a%20b%23%C3%A9"
	if got != want {
		t.Fatalf("uriEncode = %q, want %q", got, want)
	}
}

func mustAdd(t *testing.T, tbl *tagDirectiveTable, d TagDirective, allowDuplicates bool) {
	t.Helper()
	if err := tbl.add(d, allowDuplicates); err != nil {
		t.Fatalf("add(%+v) failed: %v", d, err)
	}
}

func asError(err error, target **Error) bool {
	e, ok := err.(*Error)
	if ok {
		*target = e
	}
	return ok
}
