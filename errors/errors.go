// Copyright 2024 The LSTF Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package errors defines the diagnostics sink (C8) shared by the resolver
// and the semantic analyzer: a channel accepting
// (severity, source_ref, formatted_message) plus note chains, which
// keeps the reported diagnostics and their counts.
package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/Prince781/lstf-sub001/token"
)

// Severity distinguishes the three kinds of diagnostic the core emits.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "diagnostic"
	}
}

// Message is a deferred-format error message, so callers can inspect the
// format and arguments without paying for formatting up front.
type Message struct {
	format string
	args   []interface{}
}

// Newf creates a Message from a printf-style format and arguments.
func Newf(format string, args ...interface{}) Message {
	return Message{format: format, args: args}
}

// String formats the message.
func (m Message) String() string {
	return fmt.Sprintf(m.format, m.args...)
}

// Diagnostic is a single reported item: a severity, the source span it
// refers to, and a formatted message. Diagnostics reported via Notef are
// always appended immediately after the error or warning they annotate.
type Diagnostic struct {
	Severity Severity
	Ref      token.SourceRef
	Message  Message
}

// String renders a diagnostic as "path:line:col: severity: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Ref.String(), d.Severity, d.Message)
}

// Sink accumulates diagnostics for a single compiler pass. It counts errors
// on behalf of its caller (the resolver or the analyzer), since a pass with
// any errors must prevent the next pass from running.
type Sink struct {
	diagnostics []Diagnostic
	numErrors   int
	numWarnings int
}

// NewSink returns an empty diagnostics sink.
func NewSink() *Sink {
	return &Sink{}
}

// Errorf reports an error at ref and increments the error counter.
func (s *Sink) Errorf(ref token.SourceRef, format string, args ...interface{}) {
	s.diagnostics = append(s.diagnostics, Diagnostic{Error, ref, Newf(format, args...)})
	s.numErrors++
}

// Warningf reports a warning at ref. Warnings do not stop compilation.
func (s *Sink) Warningf(ref token.SourceRef, format string, args ...interface{}) {
	s.diagnostics = append(s.diagnostics, Diagnostic{Warning, ref, Newf(format, args...)})
	s.numWarnings++
}

// Notef reports a note. Notes are always emitted immediately after the
// error or warning they annotate; callers must call Notef right after the
// Errorf/Warningf it explains.
func (s *Sink) Notef(ref token.SourceRef, format string, args ...interface{}) {
	s.diagnostics = append(s.diagnostics, Diagnostic{Note, ref, Newf(format, args...)})
}

// NumErrors returns the number of errors reported so far.
func (s *Sink) NumErrors() int { return s.numErrors }

// NumWarnings returns the number of warnings reported so far.
func (s *Sink) NumWarnings() int { return s.numWarnings }

// Diagnostics returns all diagnostics reported so far, in report order.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diagnostics
}

// Reset clears the sink so it can be reused for another pass.
func (s *Sink) Reset() {
	s.diagnostics = nil
	s.numErrors = 0
	s.numWarnings = 0
}

// Print writes one line per diagnostic to w, in report order.
func (s *Sink) Print(w io.Writer) error {
	var b strings.Builder
	for _, d := range s.diagnostics {
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
