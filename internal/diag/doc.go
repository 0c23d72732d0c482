// Package diag defines the diagnostic model shared by all compiler phases.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer, the parser and the layout resolver.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform any formatting, IO or CLI integration.
// Rendering lives in internal/diagfmt; turning a failing bag into a compile
// error lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error).
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     (LEX1001, SYN2001, SEM3002, IO4003).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages, e.g. "first declared here".
//   - Fixes – optional textual suggestions; nothing applies them automatically.
//
// Every code maps to an ErrorKind (SyntaxError, UnknownTypeError,
// DuplicateNameError, IOError) via Code.Kind.
//
// # Emitting diagnostics
//
// Phases should use a diag.Reporter. The parser constructs a ReportBuilder via
// ReportError and chains WithNote before calling Emit. When no additional
// metadata is needed, phases call Reporter.Report(...) directly.
// diag.BagReporter aggregates diagnostics into a Bag, which supports sorting
// and a size limit (--max-diagnostics); the driver puts a DedupReporter in
// front of it.
package diag
