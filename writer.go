// Copyright 2024 The yamlemit Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlemit

import (
	"bufio"
	"io"
)

// Encoding identifies how output runes are written to the underlying byte
// stream, and whether non-ASCII characters may be printed literally.
type Encoding int

const (
	UTF8 Encoding = iota
	ASCII
	UTF16LE
	UTF16BE
)

// Unicode reports whether the encoding can represent arbitrary Unicode
// characters literally. ASCII output must escape anything outside the
// 7-bit range; the UTF encodings do not.
func (e Encoding) Unicode() bool {
	return e != ASCII
}

// LineBreak selects the line terminator written by Sink.WriteBreak.
type LineBreak int

const (
	LF LineBreak = iota
	CRLF
	CR
)

func (b LineBreak) bytes() []byte {
	switch b {
	case CRLF:
		return []byte{'\r', '\n'}
	case CR:
		return []byte{'\r'}
	default:
		return []byte{'\n'}
	}
}

// Sink is the abstract output collaborator the Emitter writes to. It knows
// nothing about YAML; it only transports characters and line breaks and
// reports its own encoding so the Emitter can decide what must be escaped.
type Sink interface {
	WriteString(s string) error
	WriteRune(r rune) error
	WriteBreak() error
	Encoding() Encoding
}

// IOSink is a Sink backed by a bufio.Writer over any io.Writer. It always
// writes UTF-8 bytes and does not transcode to UTF-16; its encoding decides
// what Encoding reports to the Emitter and whether a byte-order mark (itself
// UTF-8 encoded) is written up front, which happens for every encoding other
// than UTF8.
type IOSink struct {
	w         *bufio.Writer
	encoding  Encoding
	lineBreak LineBreak
	wroteBOM  bool
}

// NewIOSink wraps w as a Sink using the given encoding and line break style.
func NewIOSink(w io.Writer, encoding Encoding, lineBreak LineBreak) *IOSink {
	return &IOSink{w: bufio.NewWriter(w), encoding: encoding, lineBreak: lineBreak}
}

func (s *IOSink) Encoding() Encoding { return s.encoding }

func (s *IOSink) writeBOMOnce() error {
	if s.wroteBOM || s.encoding == UTF8 {
		return nil
	}
	s.wroteBOM = true
	_, err := s.w.WriteRune(bom)
	return err
}

func (s *IOSink) WriteString(str string) error {
	if err := s.writeBOMOnce(); err != nil {
		return err
	}
	_, err := s.w.WriteString(str)
	return err
}

func (s *IOSink) WriteRune(r rune) error {
	if err := s.writeBOMOnce(); err != nil {
		return err
	}
	_, err := s.w.WriteRune(r)
	return err
}

func (s *IOSink) WriteBreak() error {
	if err := s.writeBOMOnce(); err != nil {
		return err
	}
	_, err := s.w.Write(s.lineBreak.bytes())
	return err
}

// Flush flushes any buffered output to the underlying io.Writer.
func (s *IOSink) Flush() error {
	return s.w.Flush()
}

// --- Writer primitives owned by the Emitter (spec 2, "Writer primitives") ---

// writeIndicator writes s, optionally preceded by a space if the cursor is
// not already at whitespace, and updates the whitespace/indentation flags
// and open-ended marker the same way every indicator-writing call site in
// the state machine needs.
func (e *Emitter) writeIndicator(s string, needWhitespace, whitespace, indentation bool) error {
	if needWhitespace && !e.isWhitespace {
		if err := e.writeStr(" "); err != nil {
			return err
		}
	}
	if err := e.writeStr(s); err != nil {
		return err
	}
	e.isWhitespace = whitespace
	e.isIndentation = e.isIndentation && indentation
	e.isOpenEnded = false
	return nil
}

func (e *Emitter) writeStr(s string) error {
	if err := e.sink.WriteString(s); err != nil {
		return newWriterError(e.state, err)
	}
	for _, r := range s {
		if isBreak(r) {
			e.column = 0
			e.line++
		} else {
			e.column++
		}
	}
	return nil
}

func (e *Emitter) writeRune(r rune) error {
	if err := e.sink.WriteRune(r); err != nil {
		return newWriterError(e.state, err)
	}
	if isBreak(r) {
		e.column = 0
		e.line++
	} else {
		e.column++
	}
	return nil
}

func (e *Emitter) writeBreak() error {
	if err := e.sink.WriteBreak(); err != nil {
		return newWriterError(e.state, err)
	}
	e.column = 0
	e.line++
	e.isWhitespace = true
	e.isIndentation = true
	return nil
}

// writeIndent pads the current line to e.indent, emitting a line break
// first if the cursor has moved past the target column or sits on content.
func (e *Emitter) writeIndent() error {
	indent := e.indent
	if indent < 0 {
		indent = 0
	}
	if !e.isIndentation || e.column > indent || (e.column == indent && !e.isWhitespace) {
		if err := e.writeBreak(); err != nil {
			return err
		}
	}
	for e.column < indent {
		if err := e.writeStr(" "); err != nil {
			return err
		}
	}
	e.isIndentation = true
	e.isWhitespace = true
	return nil
}
