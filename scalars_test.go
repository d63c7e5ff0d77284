// Copyright 2024 The yamlemit Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlemit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yamlcraft/yamlemit"
)

func emitOneScalar(t *testing.T, value string, style yamlemit.ScalarStyle) string {
	t.Helper()
	events := []yamlemit.Event{
		{Kind: yamlemit.StreamStartEvent},
		{Kind: yamlemit.DocumentStartEvent, Implicit: true},
		scalar(value, style),
		{Kind: yamlemit.DocumentEndEvent, Implicit: true},
		{Kind: yamlemit.StreamEndEvent},
	}
	return emitAll(t, yamlemit.DefaultEmitterOptions(), events)
}

func TestWritePlainScalar(t *testing.T) {
	out := emitOneScalar(t, "hello world", yamlemit.PlainScalarStyle)
	// A plain scalar standing alone as the document root leaves the
	// document open-ended, so the stream-end handler appends "...".
	require.Equal(t, "hello world\n...\n", out)
}

func TestWriteSingleQuotedScalarEscapesEmbeddedQuote(t *testing.T) {
	out := emitOneScalar(t, "it's fine", yamlemit.SingleQuotedScalarStyle)
	require.Equal(t, "'it''s fine'\n", out)
}

func TestWriteDoubleQuotedScalarEscapesControlCharacters(t *testing.T) {
	out := emitOneScalar(t, "tab\there", yamlemit.DoubleQuotedScalarStyle)
	require.Equal(t, "\"tab\\there\"\n", out)
}

func TestWriteDoubleQuotedScalarEscapesBackslashAndQuote(t *testing.T) {
	out := emitOneScalar(t, `a"b\c`, yamlemit.DoubleQuotedScalarStyle)
	require.Equal(t, `"a\"b\\c"`+"\n", out)
}

func TestWriteLiteralScalarPreservesBreaks(t *testing.T) {
	out := emitOneScalar(t, "line1\nline2\n", yamlemit.LiteralScalarStyle)
	require.True(t, strings.HasPrefix(out, "|"), "literal style must open with \"|\", got %q", out)
	require.Contains(t, out, "line1\n")
	require.Contains(t, out, "line2")
}

func TestWriteLiteralScalarStripsWhenNoTrailingBreak(t *testing.T) {
	out := emitOneScalar(t, "line1\nline2", yamlemit.LiteralScalarStyle)
	require.True(t, strings.HasPrefix(out, "|-"), "a value with no trailing break must get a strip chomping indicator, got %q", out)
}

func TestWriteLiteralScalarKeepsWhenDoubleTrailingBreak(t *testing.T) {
	out := emitOneScalar(t, "line1\n\n", yamlemit.LiteralScalarStyle)
	require.True(t, strings.HasPrefix(out, "|+"), "two trailing breaks must get a keep chomping indicator, got %q", out)
}

func TestWriteFoldedScalarOpensWithFoldIndicator(t *testing.T) {
	out := emitOneScalar(t, "some long folded content\nmore content\n", yamlemit.FoldedScalarStyle)
	require.True(t, strings.HasPrefix(out, ">"), "folded style must open with \">\", got %q", out)
}

func TestWriteBlockScalarIndentHintWhenLeadingSpace(t *testing.T) {
	out := emitOneScalar(t, "  indented first line\nrest\n", yamlemit.LiteralScalarStyle)
	require.True(t, strings.HasPrefix(out, "|2"), "a value beginning with whitespace needs an explicit indent hint, got %q", out)
}

func TestSelectScalarStyleOverridesPlainHintWhenIllegal(t *testing.T) {
	// A value with an embedded line break cannot be rendered as requested
	// (Plain); the selector must fall back to a quoted style rather than
	// producing invalid YAML. A bare line break still permits single quotes,
	// so single-quoted is the style chosen, with the break written twice.
	out := emitOneScalar(t, "a\nb", yamlemit.PlainScalarStyle)
	require.Equal(t, "'a\n\n  b'\n", out)
}

func TestSelectScalarStyleCanonicalForcesDoubleQuoted(t *testing.T) {
	events := []yamlemit.Event{
		{Kind: yamlemit.StreamStartEvent},
		{Kind: yamlemit.DocumentStartEvent, Implicit: true},
		scalar("plain-looking", yamlemit.PlainScalarStyle),
		{Kind: yamlemit.DocumentEndEvent, Implicit: true},
		{Kind: yamlemit.StreamEndEvent},
	}
	opts := yamlemit.DefaultEmitterOptions()
	opts.Canonical = true
	out := emitAll(t, opts, events)
	require.Contains(t, out, `"plain-looking"`)
}
