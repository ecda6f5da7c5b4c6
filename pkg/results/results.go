// Package results defines the per-file statuses and run-level summaries
// produced by scanning and fixing license headers.
package results

import (
	"fmt"
	"time"
)

// SkipReason enumerates why a file was excluded from header checking.
type SkipReason int

const (
	SkipNone SkipReason = iota
	// SkipBinary marks files containing NUL bytes.
	SkipBinary
	// SkipEmpty marks zero-byte files (when configured to skip them).
	SkipEmpty
	// SkipTooLarge marks files above the configured size cap.
	SkipTooLarge
	// SkipEncoding marks files whose sample is not valid UTF-8 text.
	SkipEncoding
	// SkipNoCommentStyle marks extensions without a configured comment style.
	SkipNoCommentStyle
	// SkipUnreadable marks files the scanner could not open or read.
	SkipUnreadable
)

// String returns a human-readable description of the skip reason
func (r SkipReason) String() string {
	switch r {
	case SkipBinary:
		return "binary file"
	case SkipEmpty:
		return "empty file"
	case SkipTooLarge:
		return "too large"
	case SkipEncoding:
		return "unsupported encoding"
	case SkipNoCommentStyle:
		return "no comment style"
	case SkipUnreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// StatusKind discriminates the FileStatus variants.
type StatusKind int

const (
	StatusHasHeader StatusKind = iota
	StatusMissingHeader
	StatusMalformedHeader
	StatusSkipped
)

// FileStatus is the outcome of checking a single file. Exactly one variant
// applies; Similarity is meaningful only for StatusMalformedHeader and
// Reason only for StatusSkipped. Instances are never mutated after creation.
type FileStatus struct {
	Kind       StatusKind `json:"kind"`
	Similarity int        `json:"similarity,omitempty"`
	Reason     SkipReason `json:"reason,omitempty"`
}

// HasHeader reports a file carrying the expected header.
func HasHeader() FileStatus {
	return FileStatus{Kind: StatusHasHeader}
}

// MissingHeader reports a file with no recognizable header.
func MissingHeader() FileStatus {
	return FileStatus{Kind: StatusMissingHeader}
}

// MalformedHeader reports a header that resembles but does not match the
// expected one. similarity is clamped to [0,100].
func MalformedHeader(similarity int) FileStatus {
	if similarity < 0 {
		similarity = 0
	}
	if similarity > 100 {
		similarity = 100
	}
	return FileStatus{Kind: StatusMalformedHeader, Similarity: similarity}
}

// Skipped reports a file excluded from checking.
func Skipped(reason SkipReason) FileStatus {
	return FileStatus{Kind: StatusSkipped, Reason: reason}
}

// Passed reports whether the file has a valid header.
func (s FileStatus) Passed() bool { return s.Kind == StatusHasHeader }

// NeedsAttention reports whether the file is missing or has a malformed header.
func (s FileStatus) NeedsAttention() bool {
	return s.Kind == StatusMissingHeader || s.Kind == StatusMalformedHeader
}

// IsSkipped reports whether the file was skipped.
func (s FileStatus) IsSkipped() bool { return s.Kind == StatusSkipped }

func (s FileStatus) String() string {
	switch s.Kind {
	case StatusHasHeader:
		return "has header"
	case StatusMissingHeader:
		return "missing header"
	case StatusMalformedHeader:
		return fmt.Sprintf("malformed header (%d%% similar)", s.Similarity)
	case StatusSkipped:
		return fmt.Sprintf("skipped (%s)", s.Reason)
	default:
		return "unknown"
	}
}

// ScanResult pairs a file path with its header status.
type ScanResult struct {
	Path   string     `json:"path"`
	Status FileStatus `json:"status"`
}

// ActionKind discriminates the FixAction variants.
type ActionKind int

const (
	ActionFixed ActionKind = iota
	ActionAlreadyHasHeader
	ActionWouldFix
	ActionSkipped
	ActionFailed
)

// FixAction is the outcome of a fix attempt on a single file.
type FixAction struct {
	Kind   ActionKind `json:"kind"`
	Reason SkipReason `json:"reason,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// Fixed reports a header successfully inserted.
func Fixed() FixAction { return FixAction{Kind: ActionFixed} }

// AlreadyHasHeader reports a file that needed no change.
func AlreadyHasHeader() FixAction { return FixAction{Kind: ActionAlreadyHasHeader} }

// WouldFix reports a file that would be modified in a non-preview run.
func WouldFix() FixAction { return FixAction{Kind: ActionWouldFix} }

// FixSkipped reports a file excluded from fixing.
func FixSkipped(reason SkipReason) FixAction {
	return FixAction{Kind: ActionSkipped, Reason: reason}
}

// FixFailed reports a fix attempt that errored; the original file is intact.
func FixFailed(msg string) FixAction { return FixAction{Kind: ActionFailed, Error: msg} }

// Succeeded reports whether the file ended up with a valid header.
func (a FixAction) Succeeded() bool {
	return a.Kind == ActionFixed || a.Kind == ActionAlreadyHasHeader
}

func (a FixAction) String() string {
	switch a.Kind {
	case ActionFixed:
		return "fixed"
	case ActionAlreadyHasHeader:
		return "already has header"
	case ActionWouldFix:
		return "would fix"
	case ActionSkipped:
		return fmt.Sprintf("skipped (%s)", a.Reason)
	case ActionFailed:
		return fmt.Sprintf("failed: %s", a.Error)
	default:
		return "unknown"
	}
}

// FixResult pairs a file path with the action taken on it.
type FixResult struct {
	Path   string    `json:"path"`
	Action FixAction `json:"action"`
}

// ScanSummary aggregates per-file statuses for a whole run. Counters are
// combined commutatively, so partial summaries from parallel workers can be
// merged in any order.
type ScanSummary struct {
	Total    int           `json:"total"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

// Add folds one file status into the summary.
func (s *ScanSummary) Add(status FileStatus) {
	s.Total++
	switch {
	case status.Passed():
		s.Passed++
	case status.IsSkipped():
		s.Skipped++
	default:
		s.Failed++
	}
}

// Merge combines another summary into this one. Durations are not summed;
// the caller owns the wall-clock measurement.
func (s *ScanSummary) Merge(other ScanSummary) {
	s.Total += other.Total
	s.Passed += other.Passed
	s.Failed += other.Failed
	s.Skipped += other.Skipped
}

// IsClean reports whether no file failed the check.
func (s ScanSummary) IsClean() bool { return s.Failed == 0 }

func (s ScanSummary) String() string {
	return fmt.Sprintf("Scanned %d files in %.2fs: %d passed, %d failed, %d skipped",
		s.Total, s.Duration.Seconds(), s.Passed, s.Failed, s.Skipped)
}

// FixSummary aggregates per-file fix actions for a whole run.
type FixSummary struct {
	Total    int           `json:"total"`
	Fixed    int           `json:"fixed"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration"`
}

// Add folds one fix action into the summary. WouldFix counts as Fixed so
// preview runs report what a real run would do.
func (s *FixSummary) Add(action FixAction) {
	s.Total++
	switch action.Kind {
	case ActionFixed, ActionWouldFix:
		s.Fixed++
	case ActionAlreadyHasHeader:
		s.Passed++
	case ActionSkipped:
		s.Skipped++
	case ActionFailed:
		s.Failed++
	}
}

// Merge combines another summary into this one. Durations are not summed;
// the caller owns the wall-clock measurement.
func (s *FixSummary) Merge(other FixSummary) {
	s.Total += other.Total
	s.Fixed += other.Fixed
	s.Passed += other.Passed
	s.Failed += other.Failed
	s.Skipped += other.Skipped
}

// IsClean reports whether no fix attempt failed.
func (s FixSummary) IsClean() bool { return s.Failed == 0 }

func (s FixSummary) String() string {
	return fmt.Sprintf("Processed %d files in %.2fs: %d fixed, %d already ok, %d failed, %d skipped",
		s.Total, s.Duration.Seconds(), s.Fixed, s.Passed, s.Failed, s.Skipped)
}
