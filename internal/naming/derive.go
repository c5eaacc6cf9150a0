// Package naming provides the pure old-name → new-name derivation used by
// the pipeline: the new name is the second hyphen-delimited segment of the
// old entry name.
package naming

import (
	"errors"
	"fmt"
	"strings"
)

// Delimiter splits the old entry name; SegmentIndex selects the kept segment.
const (
	Delimiter    = "-"
	SegmentIndex = 1
)

// Sentinel errors returned by Derive for names outside the documented
// <anything>-<token>[-<rest>] shape.
var (
	ErrNoDelimiter  = errors.New("name contains no '-' delimiter")
	ErrEmptySegment = errors.New("delimited segment is empty")
)

// Derive computes the new entry name from oldName by splitting on
// [Delimiter] and keeping the segment at [SegmentIndex]. Trailing segments
// are discarded: "A-B-C" derives "B". Extensions get no special treatment;
// one survives only as part of the kept segment ("01-C4.wav" derives
// "C4.wav", "01-C4-take2.wav" derives "C4").
func Derive(oldName string) (string, error) {
	parts := strings.Split(oldName, Delimiter)
	if len(parts) <= SegmentIndex {
		return "", fmt.Errorf("derive %q: %w", oldName, ErrNoDelimiter)
	}
	token := parts[SegmentIndex]
	if token == "" {
		return "", fmt.Errorf("derive %q: %w", oldName, ErrEmptySegment)
	}
	return token, nil
}
