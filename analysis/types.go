package analysis

import (
	"errors"
	"fmt"
)

type Stream string

const (
	StreamVoice  Stream = "voice"
	StreamFacial Stream = "facial"
)

type FailureKind int

const (
	NoFailure FailureKind = iota
	ExtractionFailure
	FeatureFailure
	InferenceFailure
)

func (k FailureKind) String() string {
	switch k {
	case NoFailure:
		return "none"
	case ExtractionFailure:
		return "extraction"
	case FeatureFailure:
		return "feature"
	case InferenceFailure:
		return "inference"
	}
	return fmt.Sprintf("FailureKind(%d)", int(k))
}

// BranchError records why a stream produced no usable score.
type BranchError struct {
	Stream Stream
	Kind   FailureKind
	Err    error
}

func (e *BranchError) Error() string {
	return fmt.Sprintf("%s %s failure: %v", e.Stream, e.Kind, e.Err)
}

func (e *BranchError) Unwrap() error { return e.Err }

// Is matches another *BranchError with the same stream and kind, so callers
// can test errors.Is(err, &BranchError{Stream: StreamVoice, Kind: InferenceFailure}).
func (e *BranchError) Is(target error) bool {
	t, ok := target.(*BranchError)
	if !ok {
		return false
	}
	return t.Stream == e.Stream && t.Kind == e.Kind
}

func fail(stream Stream, kind FailureKind, err error) BranchResult {
	return BranchResult{Stream: stream, Err: &BranchError{Stream: stream, Kind: kind, Err: err}}
}

// BranchResult is the outcome of one stream: a score, or a failure.
// Frames is only set by the facial branch.
type BranchResult struct {
	Stream Stream
	Score  float64
	Frames int
	Err    error
}

func (r BranchResult) Failed() bool { return r.Err != nil }

func (r BranchResult) Kind() FailureKind {
	var be *BranchError
	if errors.As(r.Err, &be) {
		return be.Kind
	}
	if r.Err != nil {
		return InferenceFailure
	}
	return NoFailure
}

// Value collapses the result to a score: failures count as 0.
func (r BranchResult) Value() float64 {
	if r.Err != nil {
		return 0
	}
	return r.Score
}
