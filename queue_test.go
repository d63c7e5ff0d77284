// Copyright 2024 The yamlemit Authors.
// SPDX-License-Identifier: Apache-2.0

package yamlemit

import "testing"

func TestEventQueueNeedMoreEventsEmpty(t *testing.T) {
	var q eventQueue
	if !q.needMoreEvents() {
		t.Fatal("an empty queue must always ask for more events")
	}
}

func TestEventQueueNeedMoreEventsScalarNeverWaits(t *testing.T) {
	var q eventQueue
	q.push(Event{Kind: ScalarEvent, Value: "x"})
	if q.needMoreEvents() {
		t.Fatal("a scalar head should never require look-ahead")
	}
}

func TestEventQueueNeedMoreEventsSequenceStart(t *testing.T) {
	var q eventQueue
	q.push(Event{Kind: SequenceStartEvent})
	if !q.needMoreEvents() {
		t.Fatal("sequence-start alone in the queue must wait for more events")
	}
	q.push(Event{Kind: ScalarEvent, Value: "a"})
	if !q.needMoreEvents() {
		t.Fatal("sequence-start plus one scalar must still wait")
	}
	q.push(Event{Kind: SequenceEndEvent})
	if q.needMoreEvents() {
		t.Fatal("a balanced sequence-start..sequence-end should be ready to dispatch")
	}
}

func TestEventQueueNeedMoreEventsEmptySequence(t *testing.T) {
	var q eventQueue
	q.push(Event{Kind: SequenceStartEvent})
	q.push(Event{Kind: SequenceEndEvent})
	if q.needMoreEvents() {
		t.Fatal("an immediately-closed sequence should not require more look-ahead")
	}
}

func TestEventQueueNeedMoreEventsMappingRequiresThree(t *testing.T) {
	var q eventQueue
	q.push(Event{Kind: MappingStartEvent})
	q.push(Event{Kind: ScalarEvent, Value: "key"})
	if !q.needMoreEvents() {
		t.Fatal("mapping-start plus key alone must still wait for the value")
	}
	q.push(Event{Kind: ScalarEvent, Value: "value"})
	if !q.needMoreEvents() {
		t.Fatal("mapping-start, key, value must still wait for mapping-end")
	}
	q.push(Event{Kind: MappingEndEvent})
	if q.needMoreEvents() {
		t.Fatal("a fully balanced mapping should be ready to dispatch")
	}
}

func TestEventQueuePeekDoesNotDequeue(t *testing.T) {
	var q eventQueue
	q.push(Event{Kind: ScalarEvent, Value: "a"})
	q.push(Event{Kind: ScalarEvent, Value: "b"})
	if q.peek(1).Value != "b" {
		t.Fatalf("peek(1) = %q, want %q", q.peek(1).Value, "b")
	}
	if q.len() != 2 {
		t.Fatalf("peek must not remove events, len = %d", q.len())
	}
	first := q.pop()
	if first.Value != "a" {
		t.Fatalf("pop() = %q, want %q", first.Value, "a")
	}
	if q.len() != 1 {
		t.Fatalf("len after pop = %d, want 1", q.len())
	}
}

func TestEventQueueGivesUpLookAheadPastAccumulateLimit(t *testing.T) {
	var q eventQueue
	// A sequence containing a nested, still-open mapping: the look-ahead
	// budget for a sequence-start head is only 2 trailing events. Once a
	// second trailing event arrives the emitter dispatches the head even
	// though the nested mapping has not balanced back to level 0 -- the
	// queue isn't meant to buffer an entire unbounded subtree, only enough
	// to answer the emptiness/simple-key questions at the head.
	q.push(Event{Kind: SequenceStartEvent})
	q.push(Event{Kind: MappingStartEvent})
	if !q.needMoreEvents() {
		t.Fatal("sequence-start plus one trailing event must still wait")
	}
	q.push(Event{Kind: ScalarEvent, Value: "key"})
	if q.needMoreEvents() {
		t.Fatal("a second trailing event should fill the sequence-start look-ahead budget")
	}
}
