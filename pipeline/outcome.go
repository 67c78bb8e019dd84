// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package pipeline

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// Status is the result category of processing a single file.
//
// Statuses are ordered from the best to the worst.
type Status int

// Statuses.
const (
	StatusSuccess Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ExitCode returns the process exit code for the status.
func (s Status) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusSkipped:
		return 2
	default:
		return 1
	}
}

// Outcome of processing a single file.
type Outcome struct {
	// Reason is set for skipped and failed files.
	Reason error

	Path   string
	Status Status
}

// ErrSkipped marks reasons for not processing a file because of a policy.
var ErrSkipped = errors.New("skipped")

func skipf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrSkipped)
}

func outcomeOf(path string, err error) Outcome {
	switch {
	case err == nil:
		return Outcome{Path: path, Status: StatusSuccess}
	case errors.Is(err, ErrSkipped):
		return Outcome{Path: path, Status: StatusSkipped, Reason: err}
	default:
		return Outcome{Path: path, Status: StatusFailed, Reason: err}
	}
}

// Worst returns the worst status among outcomes, StatusSuccess for no outcomes.
func Worst(outcomes []Outcome) Status {
	return lo.Reduce(outcomes, func(worst Status, o Outcome, _ int) Status {
		return max(worst, o.Status)
	}, StatusSuccess)
}
