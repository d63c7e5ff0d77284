// Copyright 2024 The yamlemit Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlemit

import "fmt"

// selectScalarStyle resolves a style hint plus the scalar analysis and
// current context down to one concrete style the writers know how to
// render. An impossible hint (e.g. Plain requested for a value that
// contains a line break) is overridden rather than rejected, matching the
// teacher emitter's own permissive behavior.
func (e *Emitter) selectScalarStyle(hint ScalarStyle, noTag bool) ScalarStyle {
	a := e.scalarData
	style := hint

	if style == AnyScalarStyle {
		style = PlainScalarStyle
	}

	if e.opts.Canonical {
		return DoubleQuotedScalarStyle
	}

	plainAllowed := a.blockPlainAllowed
	if e.flowLevel > 0 || e.simpleKeyContext {
		plainAllowed = a.flowPlainAllowed
	}

	if style == PlainScalarStyle {
		if e.simpleKeyContext && a.isMultiline {
			style = DoubleQuotedScalarStyle
		} else if !plainAllowed {
			if a.singleQuoteAllowed {
				style = SingleQuotedScalarStyle
			} else {
				style = DoubleQuotedScalarStyle
			}
		}
	}
	if style == SingleQuotedScalarStyle && !a.singleQuoteAllowed {
		style = DoubleQuotedScalarStyle
	}
	if (style == LiteralScalarStyle || style == FoldedScalarStyle) &&
		(!a.blockAllowed || e.flowLevel > 0 || e.simpleKeyContext) {
		if a.singleQuoteAllowed {
			style = SingleQuotedScalarStyle
		} else {
			style = DoubleQuotedScalarStyle
		}
	}

	// noTag (the scalar has no tag to write at all) intentionally
	// does not force a "!" tag handle here, even for non-plain styles --
	// tag assignment stays purely explicit and is left to the caller.

	return style
}

// writeScalar renders the current scalar (e.tagData/e.scalarData already
// populated by analyzeEvent) in the given style.
func (e *Emitter) writeScalar(style ScalarStyle) error {
	switch style {
	case SingleQuotedScalarStyle:
		return e.writeSingleQuoted(e.scalarData.value)
	case DoubleQuotedScalarStyle:
		return e.writeDoubleQuoted(e.scalarData.value)
	case LiteralScalarStyle:
		return e.writeLiteral(e.scalarData.value)
	case FoldedScalarStyle:
		return e.writeFolded(e.scalarData.value)
	default:
		return e.writePlain(e.scalarData.value)
	}
}

func (e *Emitter) writePlain(value string) error {
	if value == "" {
		return nil
	}
	if !e.isWhitespace {
		if err := e.writeStr(" "); err != nil {
			return err
		}
	}

	runes := []rune(value)
	var spaces, breaks bool

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case isSpace(r):
			if e.opts.BestWidth > 0 && e.column > e.opts.BestWidth &&
				!spaces && i+1 < len(runes) && !isSpace(runes[i+1]) {
				if err := e.writeIndent(); err != nil {
					return err
				}
			} else if err := e.writeRune(r); err != nil {
				return err
			}
			spaces = true
			breaks = false
		case isBreak(r):
			if !breaks && r == lf {
				if err := e.writeBreak(); err != nil {
					return err
				}
			}
			if err := e.writeBreak(); err != nil {
				return err
			}
			e.isIndentation = true
			spaces = false
			breaks = true
		default:
			if breaks {
				if err := e.writeIndent(); err != nil {
					return err
				}
			}
			if err := e.writeRune(r); err != nil {
				return err
			}
			spaces = false
			breaks = false
		}
	}

	e.isWhitespace = false
	e.isIndentation = false
	if e.rootContext {
		e.isOpenEnded = true
	}
	return nil
}

func (e *Emitter) writeSingleQuoted(value string) error {
	if err := e.writeIndicator("'", true, false, false); err != nil {
		return err
	}

	runes := []rune(value)
	var spaces, breaks bool

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case isSpace(r):
			if e.opts.BestWidth > 0 && e.column > e.opts.BestWidth &&
				!spaces && i+1 < len(runes) && !isSpace(runes[i+1]) && i != 0 && i != len(runes)-1 {
				if err := e.writeIndent(); err != nil {
					return err
				}
			} else if err := e.writeRune(r); err != nil {
				return err
			}
			spaces = true
			breaks = false
		case isBreak(r):
			if !breaks && r == lf {
				if err := e.writeBreak(); err != nil {
					return err
				}
			}
			if err := e.writeBreak(); err != nil {
				return err
			}
			e.isIndentation = true
			spaces = false
			breaks = true
		default:
			if breaks {
				if err := e.writeIndent(); err != nil {
					return err
				}
			}
			if r == '\'' {
				if err := e.writeStr("''"); err != nil {
					return err
				}
			} else if err := e.writeRune(r); err != nil {
				return err
			}
			spaces = false
			breaks = false
		}
	}

	return e.writeIndicator("'", false, false, false)
}

var doubleQuoteEscapes = map[rune]rune{
	0:      '0',
	7:      'a',
	8:      'b',
	tab:    't',
	lf:     'n',
	11:     'v',
	12:     'f',
	cr:     'r',
	27:     'e',
	'"':    '"',
	'\\':   '\\',
	nel:    'N',
	nbsp:   '_',
	ls:     'L',
	ps:     'P',
}

func (e *Emitter) writeDoubleQuoted(value string) error {
	if err := e.writeIndicator("\"", true, false, false); err != nil {
		return err
	}

	runes := []rune(value)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if !isPrintable(r) || isBreak(r) || (!e.sink.Encoding().Unicode() && !isASCII(r)) ||
			r == '"' || r == '\\' {
			esc, known := doubleQuoteEscapes[r]
			var tok string
			switch {
			case known:
				tok = fmt.Sprintf("\\%c", esc)
			case r <= 0xFF:
				tok = fmt.Sprintf("\\x%02X", r)
			case r <= 0xFFFF:
				tok = fmt.Sprintf("\\u%04X", r)
			default:
				tok = fmt.Sprintf("\\U%08X", r)
			}
			if err := e.writeStr(tok); err != nil {
				return err
			}
			continue
		}

		if isSpace(r) && e.opts.BestWidth > 0 && e.column > e.opts.BestWidth && i > 0 && i < len(runes)-1 {
			if err := e.writeIndent(); err != nil {
				return err
			}
			if i+1 < len(runes) && isSpace(runes[i+1]) {
				if err := e.writeStr("\\"); err != nil {
					return err
				}
			}
			continue
		}

		if err := e.writeRune(r); err != nil {
			return err
		}
	}

	return e.writeIndicator("\"", false, false, false)
}

// blockHints returns the indentation-indicator and chomping-indicator
// suffix appended right after the "|" or ">" indicator.
func blockHints(value string, bestIndent int) string {
	hints := ""
	if value == "" {
		return "-"
	}
	runes := []rune(value)
	if isSpace(runes[0]) || isBreak(runes[0]) {
		hints += fmt.Sprintf("%d", bestIndent)
	}
	last := runes[len(runes)-1]
	if !isBreak(last) {
		hints += "-"
	} else if len(runes) >= 2 && isBreak(runes[len(runes)-2]) {
		hints += "+"
	}
	return hints
}

func (e *Emitter) writeLiteral(value string) error {
	hints := blockHints(value, e.opts.BestIndent)
	if err := e.writeIndicator("|"+hints, true, false, false); err != nil {
		return err
	}
	if len(hints) > 0 && hints[len(hints)-1] == '+' {
		e.isOpenEnded = true
	}
	if err := e.writeBreak(); err != nil {
		return err
	}

	e.isIndentation = true
	e.isWhitespace = true
	breaks := true
	for _, r := range value {
		if isBreak(r) {
			if err := e.writeBreak(); err != nil {
				return err
			}
			e.isIndentation = true
			breaks = true
		} else {
			if breaks {
				if err := e.writeIndent(); err != nil {
					return err
				}
			}
			if err := e.writeRune(r); err != nil {
				return err
			}
			breaks = false
		}
	}
	return nil
}

func (e *Emitter) writeFolded(value string) error {
	hints := blockHints(value, e.opts.BestIndent)
	if err := e.writeIndicator(">"+hints, true, false, false); err != nil {
		return err
	}
	if len(hints) > 0 && hints[len(hints)-1] == '+' {
		e.isOpenEnded = true
	}
	if err := e.writeBreak(); err != nil {
		return err
	}

	e.isIndentation = true
	e.isWhitespace = true

	runes := []rune(value)
	breaks := true
	var leadingSpaces bool

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case isBreak(r):
			k := i
			for k < len(runes) && isBreak(runes[k]) {
				k++
			}
			if !breaks && !leadingSpaces && r == lf && k < len(runes) && !isBlank(runes[k]) {
				if err := e.writeBreak(); err != nil {
					return err
				}
			}
			if err := e.writeBreak(); err != nil {
				return err
			}
			e.isIndentation = true
			breaks = true
		case isSpace(r):
			if breaks {
				if err := e.writeIndent(); err != nil {
					return err
				}
				leadingSpaces = true
			}
			if !breaks && e.opts.BestWidth > 0 && e.column > e.opts.BestWidth &&
				i+1 < len(runes) && !isSpace(runes[i+1]) {
				if err := e.writeIndent(); err != nil {
					return err
				}
			} else if err := e.writeRune(r); err != nil {
				return err
			}
			breaks = false
		default:
			if breaks {
				if err := e.writeIndent(); err != nil {
					return err
				}
				leadingSpaces = isBlank(r)
			}
			if err := e.writeRune(r); err != nil {
				return err
			}
			breaks = false
		}
	}
	return nil
}
