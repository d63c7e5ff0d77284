// Copyright 2024 The yamlemit Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlemit

// State identifies where the Emitter's dispatch loop is in the overall
// stream/document/collection grammar.
type State int

const (
	invalidState State = iota
	stateStreamStart
	stateFirstDocumentStart
	stateDocumentStart
	stateDocumentContent
	stateDocumentEnd
	stateFlowSequenceFirstItem
	stateFlowSequenceItem
	stateFlowMappingFirstKey
	stateFlowMappingKey
	stateFlowMappingSimpleValue
	stateFlowMappingValue
	stateBlockSequenceFirstItem
	stateBlockSequenceItem
	stateBlockMappingFirstKey
	stateBlockMappingKey
	stateBlockMappingSimpleValue
	stateBlockMappingValue
	stateStreamEnd
)

func (s State) String() string {
	switch s {
	case stateStreamStart:
		return "stream-start"
	case stateFirstDocumentStart:
		return "first-document-start"
	case stateDocumentStart:
		return "document-start"
	case stateDocumentContent:
		return "document-content"
	case stateDocumentEnd:
		return "document-end"
	case stateFlowSequenceFirstItem:
		return "flow-sequence-first-item"
	case stateFlowSequenceItem:
		return "flow-sequence-item"
	case stateFlowMappingFirstKey:
		return "flow-mapping-first-key"
	case stateFlowMappingKey:
		return "flow-mapping-key"
	case stateFlowMappingSimpleValue:
		return "flow-mapping-simple-value"
	case stateFlowMappingValue:
		return "flow-mapping-value"
	case stateBlockSequenceFirstItem:
		return "block-sequence-first-item"
	case stateBlockSequenceItem:
		return "block-sequence-item"
	case stateBlockMappingFirstKey:
		return "block-mapping-first-key"
	case stateBlockMappingKey:
		return "block-mapping-key"
	case stateBlockMappingSimpleValue:
		return "block-mapping-simple-value"
	case stateBlockMappingValue:
		return "block-mapping-value"
	case stateStreamEnd:
		return "stream-end"
	default:
		return "invalid"
	}
}

const maxSimpleKeyLength = 128

// EmitterOptions configures a new Emitter. Zero value is invalid; use
// DefaultEmitterOptions as a base.
type EmitterOptions struct {
	BestIndent int
	BestWidth  int
	Canonical  bool
}

// DefaultEmitterOptions returns the options the teacher codebase's emitter
// defaults to: two-space indent, an 80-column soft wrap, non-canonical.
func DefaultEmitterOptions() EmitterOptions {
	return EmitterOptions{BestIndent: 2, BestWidth: 80}
}

func (o EmitterOptions) validate() error {
	if o.BestIndent < 2 || o.BestIndent > 9 {
		return newError(InvalidArgument, invalidState, "BestIndent must be between 2 and 9")
	}
	if o.BestWidth <= 2*o.BestIndent {
		return newError(InvalidArgument, invalidState, "BestWidth must be greater than 2*BestIndent")
	}
	return nil
}

// Emitter renders a sequence of Events as YAML text to a Sink. It is
// single-use: once Emit returns an error, or after the StreamEnd event has
// been processed, the Emitter must be discarded.
type Emitter struct {
	sink Sink
	opts EmitterOptions

	state      State
	stateStack []State

	queue eventQueue

	indent      int
	indentStack []int

	flowLevel int
	column    int
	line      int

	isWhitespace  bool
	isIndentation bool
	isOpenEnded   bool

	mappingContext   bool
	simpleKeyContext bool
	rootContext      bool

	tagDirectives *tagDirectiveTable

	anchorData struct {
		name    string
		isAlias bool
	}
	tagData struct {
		handle string
		suffix string
	}
	scalarData scalarAnalysis
	scalarStyle ScalarStyle
}

// NewEmitter creates an Emitter that writes to sink using opts.
func NewEmitter(sink Sink, opts EmitterOptions) (*Emitter, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Emitter{
		sink:          sink,
		opts:          opts,
		state:         stateStreamStart,
		indent:        -1,
		isWhitespace:  true,
		isIndentation: true,
		tagDirectives: newTagDirectiveTable(),
	}, nil
}

// Emit feeds one Event into the emitter. Callers must feed a well-formed
// stream (as described by the package-level state machine); a misplaced
// event returns an *Error of Kind UnexpectedEvent. A DocumentStart whose
// %YAML directive is not the supported version is rejected by the Emit call
// that carries it, before it is buffered for look-ahead.
func (e *Emitter) Emit(ev Event) error {
	if ev.Kind == DocumentStartEvent {
		if err := checkVersion(ev.Version); err != nil {
			return err
		}
	}
	e.queue.push(ev)
	for !e.queue.needMoreEvents() {
		head := e.queue.head()
		if err := e.analyzeEvent(head); err != nil {
			return err
		}
		if err := e.stateMachine(head); err != nil {
			return err
		}
		e.queue.pop()
	}
	return nil
}

// analyzeEvent precomputes anchor/tag/scalar analysis for the event about to
// be dispatched, mirroring the scratch fields the state machine's write
// routines read from.
func (e *Emitter) analyzeEvent(ev Event) error {
	e.anchorData.name = ""
	e.anchorData.isAlias = false
	e.tagData.handle = ""
	e.tagData.suffix = ""
	e.scalarData = scalarAnalysis{}

	switch ev.Kind {
	case AliasEvent:
		e.anchorData.name = ev.AliasName
		e.anchorData.isAlias = true
	case ScalarEvent:
		e.anchorData.name = ev.Anchor
		if ev.Tag != "" && (e.opts.Canonical || (!ev.PlainImplicit && !ev.QuotedImplicit)) {
			e.resolveTagData(ev.Tag)
		}
		e.scalarData = analyzeScalar(ev.Value, e.sink.Encoding().Unicode())
	case SequenceStartEvent, MappingStartEvent:
		e.anchorData.name = ev.Anchor
		if ev.Tag != "" && (e.opts.Canonical || !ev.Implicit) {
			e.resolveTagData(ev.Tag)
		}
	}
	return nil
}

// resolveTagData splits tag against the in-scope %TAG directives into a
// known handle+suffix pair, or leaves handle empty (suffix holding the full
// tag) when nothing covers it.
func (e *Emitter) resolveTagData(tag string) {
	if handle, suffix, ok := e.tagDirectives.resolve(tag); ok {
		e.tagData.handle = handle
		e.tagData.suffix = suffix
		return
	}
	e.tagData.handle = ""
	e.tagData.suffix = tag
}

func (e *Emitter) pushState(s State) {
	e.stateStack = append(e.stateStack, s)
}

func (e *Emitter) popState() State {
	n := len(e.stateStack)
	s := e.stateStack[n-1]
	e.stateStack = e.stateStack[:n-1]
	return s
}

// increaseIndent pushes the current indent and computes the next one.
func (e *Emitter) increaseIndent(flow, indentless bool) {
	e.indentStack = append(e.indentStack, e.indent)
	switch {
	case e.indent < 0:
		if flow {
			e.indent = e.opts.BestIndent
		} else {
			e.indent = 0
		}
	case !indentless:
		e.indent += e.opts.BestIndent
	}
}

func (e *Emitter) decreaseIndent() {
	n := len(e.indentStack)
	e.indent = e.indentStack[n-1]
	e.indentStack = e.indentStack[:n-1]
}

// checkEmptySequence reports whether the queue's head (a SequenceStart) is
// immediately followed by its matching SequenceEnd.
func (e *Emitter) checkEmptySequence() bool {
	return e.queue.len() >= 2 &&
		e.queue.peek(0).Kind == SequenceStartEvent &&
		e.queue.peek(1).Kind == SequenceEndEvent
}

// checkEmptyMapping reports whether the queue's head (a MappingStart) is
// immediately followed by its matching MappingEnd.
func (e *Emitter) checkEmptyMapping() bool {
	return e.queue.len() >= 2 &&
		e.queue.peek(0).Kind == MappingStartEvent &&
		e.queue.peek(1).Kind == MappingEndEvent
}

// checkSimpleKey decides whether the node at the queue head is short and
// single-line enough to be written as a simple "key:" without "? "/": "
// markers.
func (e *Emitter) checkSimpleKey() bool {
	length := len(e.anchorData.name) + len(e.tagData.handle) + len(e.tagData.suffix)

	head := e.queue.head()
	switch head.Kind {
	case ScalarEvent:
		if e.scalarData.isMultiline {
			return false
		}
		length += len(e.scalarData.value)
	case SequenceStartEvent:
		if !e.checkEmptySequence() {
			return false
		}
	case MappingStartEvent:
		if !e.checkEmptyMapping() {
			return false
		}
	case AliasEvent:
		length += len(e.anchorData.name)
	default:
		return false
	}

	return length <= maxSimpleKeyLength
}
