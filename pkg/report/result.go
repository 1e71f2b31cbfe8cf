// Copyright 2025 everfront LLC
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

// Package report aggregates per-file outcomes and renders them for humans.
// Reporting never influences processing: it is a pure sink.
package report

// 📊 Status represents the final state of a processed file
type Status int

const (
	StatusUnknown Status = iota
	StatusPatched        // Fragment was injected and written back
	StatusPlanned        // Dry run: file qualifies and would be patched
	StatusSkipped        // No write needed (no marker, or already patched)
	StatusFailed         // Read, anchor, or write failure
)

// String returns a string representation of Status
func (s Status) String() string {
	switch s {
	case StatusPatched:
		return "patched"
	case StatusPlanned:
		return "planned"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 Result is the per-file outcome record.
type Result struct {
	Path   string // File path as discovered
	Status Status // Final state
	Reason string // Human-readable explanation
	Err    error  // Underlying error on the failure path
}

// 📈 Summary holds the aggregate counters for a run.
type Summary struct {
	Patched        int // Files written (or planned, in a dry run)
	Skipped        int // Files left untouched on purpose
	Failed         int // Files that could not be patched
	NoMarker       int // Skips caused by a missing marker token
	AlreadyPatched int // Skips caused by the fragment guard being present
}

// Total returns the number of files processed.
func (s Summary) Total() int {
	return s.Patched + s.Skipped + s.Failed
}
