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

// Package patch holds the pure text predicates and the splice that make up
// the injection. Markup is treated as flat text throughout: the anchor
// search is a single case-insensitive literal match, blind to comments and
// attribute values. That is a deliberate simplification for a fixed,
// controlled corpus, not a general HTML transform.
package patch

import (
	"regexp"
	"strings"
	"sync"
)

// 📊 Eligibility is the outcome of classifying a file's content.
type Eligibility int

const (
	// Eligible means the marker is present and the fragment is not.
	Eligible Eligibility = iota
	// SkipNoMarker means the marker token does not appear anywhere.
	SkipNoMarker
	// SkipAlreadyPatched means the fragment guard is already present.
	SkipAlreadyPatched
)

// String returns a string representation of Eligibility
func (e Eligibility) String() string {
	switch e {
	case Eligible:
		return "eligible"
	case SkipNoMarker:
		return "no-marker"
	case SkipAlreadyPatched:
		return "already-patched"
	default:
		return "unknown"
	}
}

// 🔍 Classify decides whether content qualifies for injection. The marker
// check runs first: a file that is already patched but happens to lack the
// marker classifies as SkipNoMarker, matching the tool's historical
// reporting.
func Classify(content, marker, guard string) Eligibility {
	if !strings.Contains(content, marker) {
		return SkipNoMarker
	}
	if strings.Contains(content, guard) {
		return SkipAlreadyPatched
	}
	return Eligible
}

var (
	anchorMu sync.Mutex
	anchorRe = map[string]*regexp.Regexp{}
)

// anchorPattern returns a cached case-insensitive literal matcher.
func anchorPattern(anchor string) *regexp.Regexp {
	anchorMu.Lock()
	defer anchorMu.Unlock()

	re, ok := anchorRe[anchor]
	if !ok {
		re = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(anchor))
		anchorRe[anchor] = re
	}
	return re
}

// 🎯 LocateAnchor finds the first case-insensitive occurrence of the anchor
// literal and returns the byte offset immediately after it. The second
// return is false when the anchor does not occur anywhere.
func LocateAnchor(content, anchor string) (int, bool) {
	loc := anchorPattern(anchor).FindStringIndex(content)
	if loc == nil {
		return 0, false
	}
	return loc[1], true
}

// ✂️ Apply splices the fragment into content immediately after offset,
// separated from the anchor by a newline. Pure: the input is never mutated.
func Apply(content string, offset int, fragment string) string {
	var b strings.Builder
	b.Grow(len(content) + len(fragment) + 1)
	b.WriteString(content[:offset])
	b.WriteByte('\n')
	b.WriteString(fragment)
	b.WriteString(content[offset:])
	return b.String()
}
