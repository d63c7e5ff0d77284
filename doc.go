// Copyright 2024 The yamlemit Authors.
// SPDX-License-Identifier: Apache-2.0

// Package yamlemit implements a streaming YAML 1.1 emitter: it consumes an
// ordered sequence of Events describing a document (stream/document
// boundaries, sequences, mappings, scalars, aliases) and renders them as
// valid YAML text to a Sink.
//
// The package does not parse YAML, does not resolve tags against a type
// schema, and does not round-trip comments or original formatting. Those
// concerns belong to a producer of Events and to a separate parser; this
// package only guarantees that, given a well-formed Event stream, its output
// is syntactically valid YAML.
package yamlemit
