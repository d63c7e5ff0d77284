// Copyright 2024 The yamlemit Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlemit

import "fmt"

// stateMachine dispatches ev according to e.state, mirroring the teacher
// emitter's yaml_emitter_state_machine switch.
func (e *Emitter) stateMachine(ev Event) error {
	switch e.state {
	case stateStreamStart:
		return e.emitStreamStart(ev)
	case stateFirstDocumentStart:
		return e.emitDocumentStart(ev, true)
	case stateDocumentStart:
		return e.emitDocumentStart(ev, false)
	case stateDocumentContent:
		return e.emitDocumentContent(ev)
	case stateDocumentEnd:
		return e.emitDocumentEnd(ev)
	case stateFlowSequenceFirstItem:
		return e.emitFlowSequenceItem(ev, true)
	case stateFlowSequenceItem:
		return e.emitFlowSequenceItem(ev, false)
	case stateFlowMappingFirstKey:
		return e.emitFlowMappingKey(ev, true)
	case stateFlowMappingKey:
		return e.emitFlowMappingKey(ev, false)
	case stateFlowMappingSimpleValue:
		return e.emitFlowMappingValue(ev, true)
	case stateFlowMappingValue:
		return e.emitFlowMappingValue(ev, false)
	case stateBlockSequenceFirstItem:
		return e.emitBlockSequenceItem(ev, true)
	case stateBlockSequenceItem:
		return e.emitBlockSequenceItem(ev, false)
	case stateBlockMappingFirstKey:
		return e.emitBlockMappingKey(ev, true)
	case stateBlockMappingKey:
		return e.emitBlockMappingKey(ev, false)
	case stateBlockMappingSimpleValue:
		return e.emitBlockMappingValue(ev, true)
	case stateBlockMappingValue:
		return e.emitBlockMappingValue(ev, false)
	default:
		return newError(InvalidState, e.state, "emitter reached an unreachable state")
	}
}

func (e *Emitter) unexpected(ev Event, want string) error {
	return newError(UnexpectedEvent, e.state, fmt.Sprintf("expected %s, got %s", want, ev.Kind))
}

func (e *Emitter) emitStreamStart(ev Event) error {
	if ev.Kind != StreamStartEvent {
		return e.unexpected(ev, "STREAM-START")
	}
	e.column = 0
	e.line = 0
	e.isWhitespace = true
	e.isIndentation = true
	e.state = stateFirstDocumentStart
	return nil
}

func (e *Emitter) emitDocumentStart(ev Event, first bool) error {
	if ev.Kind == StreamEndEvent {
		if e.isOpenEnded {
			if err := e.writeIndicator("...", true, false, false); err != nil {
				return err
			}
			if err := e.writeIndent(); err != nil {
				return err
			}
		}
		e.state = stateStreamEnd
		return nil
	}
	if ev.Kind != DocumentStartEvent {
		return e.unexpected(ev, "DOCUMENT-START or STREAM-END")
	}

	if err := checkVersion(ev.Version); err != nil {
		return err
	}

	if (ev.Version != nil || len(ev.Tags) > 0) && e.isOpenEnded {
		if err := e.writeIndicator("...", true, false, false); err != nil {
			return err
		}
		if err := e.writeIndent(); err != nil {
			return err
		}
	}

	if ev.Version != nil {
		if err := e.writeIndicator(fmt.Sprintf("%%YAML %d.%d", ev.Version.Major, ev.Version.Minor), true, false, false); err != nil {
			return err
		}
		if err := e.writeIndent(); err != nil {
			return err
		}
	}

	for _, d := range ev.Tags {
		if err := e.tagDirectives.add(d, false); err != nil {
			return err
		}
	}
	for _, d := range defaultTagDirectives {
		_ = e.tagDirectives.add(d, true)
	}

	for _, d := range ev.Tags {
		if err := e.writeIndicator(fmt.Sprintf("%%TAG %s %s", d.Handle, uriEncode(d.Prefix)), true, false, false); err != nil {
			return err
		}
		if err := e.writeIndent(); err != nil {
			return err
		}
	}

	implicit := ev.Implicit && first && !e.opts.Canonical &&
		ev.Version == nil && len(ev.Tags) == 0 && !e.checkEmptyDocument()
	if !implicit {
		if err := e.writeIndicator("---", true, false, false); err != nil {
			return err
		}
		if e.opts.Canonical {
			if err := e.writeIndent(); err != nil {
				return err
			}
		}
	}

	e.state = stateDocumentContent
	return nil
}

// checkEmptyDocument reports whether the document about to start is
// immediately closed (used only to help decide whether the leading "---"
// may be omitted for a genuinely empty document).
func (e *Emitter) checkEmptyDocument() bool {
	return e.queue.len() >= 2 &&
		e.queue.peek(0).Kind == DocumentStartEvent &&
		e.queue.peek(1).Kind == DocumentEndEvent
}

func (e *Emitter) emitDocumentContent(ev Event) error {
	e.pushState(stateDocumentEnd)
	return e.emitNode(ev, true, false, false)
}

func (e *Emitter) emitDocumentEnd(ev Event) error {
	if ev.Kind != DocumentEndEvent {
		return e.unexpected(ev, "DOCUMENT-END")
	}
	if err := e.writeIndent(); err != nil {
		return err
	}
	if !ev.Implicit {
		if err := e.writeIndicator("...", true, false, false); err != nil {
			return err
		}
		if err := e.writeIndent(); err != nil {
			return err
		}
	}
	e.tagDirectives.reset()
	e.state = stateDocumentStart
	return nil
}

// emitNode dispatches a value-position event (anything that can occupy a
// key, a value, a sequence item, or the document's root) to the right
// writer, after tracking the simple-key/mapping/root context flags the
// state machine's deeper routines rely on.
func (e *Emitter) emitNode(ev Event, root, mapping, simpleKey bool) error {
	e.rootContext = root
	e.mappingContext = mapping
	e.simpleKeyContext = simpleKey

	switch ev.Kind {
	case AliasEvent:
		return e.emitAlias()
	case ScalarEvent:
		return e.emitScalar(ev)
	case SequenceStartEvent:
		return e.emitSequenceStart(ev)
	case MappingStartEvent:
		return e.emitMappingStart(ev)
	default:
		return e.unexpected(ev, "SCALAR, ALIAS, SEQUENCE-START, or MAPPING-START")
	}
}

func (e *Emitter) emitAlias() error {
	if err := e.processAnchor(); err != nil {
		return err
	}
	e.state = e.popState()
	return nil
}

func (e *Emitter) emitScalar(ev Event) error {
	if err := e.processAnchor(); err != nil {
		return err
	}
	if err := e.processTag(); err != nil {
		return err
	}
	e.increaseIndent(true, false)
	noTag := e.tagData.handle == "" && e.tagData.suffix == ""
	style := e.selectScalarStyle(ev.ScalarStyleHint, noTag)
	if err := e.writeScalar(style); err != nil {
		return err
	}
	e.decreaseIndent()
	e.state = e.popState()
	return nil
}

func (e *Emitter) emitSequenceStart(ev Event) error {
	if err := e.processAnchor(); err != nil {
		return err
	}
	if err := e.processTag(); err != nil {
		return err
	}
	flow := e.flowLevel > 0 || e.opts.Canonical || ev.CollStyle == FlowStyle || e.checkEmptySequence()
	if flow {
		e.state = stateFlowSequenceFirstItem
	} else {
		e.state = stateBlockSequenceFirstItem
	}
	return nil
}

func (e *Emitter) emitMappingStart(ev Event) error {
	if err := e.processAnchor(); err != nil {
		return err
	}
	if err := e.processTag(); err != nil {
		return err
	}
	flow := e.flowLevel > 0 || e.opts.Canonical || ev.CollStyle == FlowStyle || e.checkEmptyMapping()
	if flow {
		e.state = stateFlowMappingFirstKey
	} else {
		e.state = stateBlockMappingFirstKey
	}
	return nil
}

// --- flow sequence ---

func (e *Emitter) emitFlowSequenceItem(ev Event, first bool) error {
	if first {
		if err := e.writeIndicator("[", true, true, false); err != nil {
			return err
		}
		e.increaseIndent(true, false)
		e.flowLevel++
	}
	if ev.Kind == SequenceEndEvent {
		e.flowLevel--
		e.decreaseIndent()
		if e.opts.Canonical && !first {
			if err := e.writeIndicator(",", false, false, false); err != nil {
				return err
			}
			if err := e.writeIndent(); err != nil {
				return err
			}
		}
		if err := e.writeIndicator("]", false, false, false); err != nil {
			return err
		}
		e.state = e.popState()
		return nil
	}
	if !first {
		if err := e.writeIndicator(",", false, false, false); err != nil {
			return err
		}
	}
	if e.opts.Canonical || e.column > e.opts.BestWidth {
		if err := e.writeIndent(); err != nil {
			return err
		}
	}
	e.pushState(stateFlowSequenceItem)
	return e.emitNode(ev, false, false, false)
}

// --- flow mapping ---

func (e *Emitter) emitFlowMappingKey(ev Event, first bool) error {
	if first {
		if err := e.writeIndicator("{", true, true, false); err != nil {
			return err
		}
		e.increaseIndent(true, false)
		e.flowLevel++
	}
	if ev.Kind == MappingEndEvent {
		e.flowLevel--
		e.decreaseIndent()
		if e.opts.Canonical && !first {
			if err := e.writeIndicator(",", false, false, false); err != nil {
				return err
			}
			if err := e.writeIndent(); err != nil {
				return err
			}
		}
		if err := e.writeIndicator("}", false, false, false); err != nil {
			return err
		}
		e.state = e.popState()
		return nil
	}
	if !first {
		if err := e.writeIndicator(",", false, false, false); err != nil {
			return err
		}
	}
	if e.opts.Canonical || e.column > e.opts.BestWidth {
		if err := e.writeIndent(); err != nil {
			return err
		}
	}
	if !e.opts.Canonical && e.checkSimpleKey() {
		e.pushState(stateFlowMappingSimpleValue)
		return e.emitNode(ev, false, true, true)
	}
	if err := e.writeIndicator("?", true, false, false); err != nil {
		return err
	}
	e.pushState(stateFlowMappingValue)
	return e.emitNode(ev, false, true, false)
}

func (e *Emitter) emitFlowMappingValue(ev Event, simple bool) error {
	if simple {
		if err := e.writeIndicator(":", false, false, false); err != nil {
			return err
		}
	} else {
		if e.opts.Canonical || e.column > e.opts.BestWidth {
			if err := e.writeIndent(); err != nil {
				return err
			}
		}
		if err := e.writeIndicator(":", true, false, false); err != nil {
			return err
		}
	}
	e.pushState(stateFlowMappingKey)
	return e.emitNode(ev, false, true, false)
}

// --- block sequence ---

func (e *Emitter) emitBlockSequenceItem(ev Event, first bool) error {
	if first {
		e.increaseIndent(false, e.mappingContext && !e.isIndentation)
	}
	if ev.Kind == SequenceEndEvent {
		e.decreaseIndent()
		e.state = e.popState()
		return nil
	}
	if err := e.writeIndent(); err != nil {
		return err
	}
	if err := e.writeIndicator("-", true, false, true); err != nil {
		return err
	}
	e.pushState(stateBlockSequenceItem)
	return e.emitNode(ev, false, false, false)
}

// --- block mapping ---

func (e *Emitter) emitBlockMappingKey(ev Event, first bool) error {
	if first {
		e.increaseIndent(false, false)
	}
	if ev.Kind == MappingEndEvent {
		e.decreaseIndent()
		e.state = e.popState()
		return nil
	}
	if err := e.writeIndent(); err != nil {
		return err
	}
	if e.checkSimpleKey() {
		e.pushState(stateBlockMappingSimpleValue)
		return e.emitNode(ev, false, true, true)
	}
	if err := e.writeIndicator("?", true, false, true); err != nil {
		return err
	}
	e.pushState(stateBlockMappingValue)
	return e.emitNode(ev, false, true, false)
}

func (e *Emitter) emitBlockMappingValue(ev Event, simple bool) error {
	if simple {
		if err := e.writeIndicator(":", false, false, false); err != nil {
			return err
		}
	} else {
		if err := e.writeIndent(); err != nil {
			return err
		}
		if err := e.writeIndicator(":", true, false, true); err != nil {
			return err
		}
	}
	e.pushState(stateBlockMappingKey)
	return e.emitNode(ev, false, true, false)
}
