package command

// ParseResult is one candidate reading of an utterance, as delivered by the
// external parser. A single utterance may yield more than one ParseResult
// when it is lexically or grammatically ambiguous; the interpreter treats
// each independently and reports the first error only if every one fails
// (see internal/ierr).
type ParseResult struct {
	Cmd Command
}

// Parser is the external interface the interpreter depends on. Its
// implementation — a full natural-language tokenizer/grammar — is out of
// scope for this repository; internal/reftoken provides a minimal,
// closed-vocabulary stand-in used by the CLI, the service, and the test
// suite to exercise the pipeline end to end.
type Parser interface {
	// Parse returns every grammatically valid reading of utterance. A nil
	// slice with a nil error means the utterance parsed to nothing
	// actionable; callers should treat that the same as the parse-empty
	// error in internal/ierr.
	Parse(utterance string) ([]ParseResult, error)
}
