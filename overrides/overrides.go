/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package overrides parses operator override flags embedded in a pull request
// description. Each flag sits on its own line:
//
//	KEY=value    # optional comment
//
// KEY is one or more of 'A'..'Z' and '_' starting at the first column. The
// value runs up to the first '#' and loses its trailing whitespace; lines with
// an empty value are ignored. Every line of the description is considered and
// a repeated KEY keeps its last value.
package overrides

import (
	"sort"
	"strings"
)

// Well-known override keys.
const (
	// DisableJiraIssueMatch lets commits reference a different ticket than
	// the pull request title.
	DisableJiraIssueMatch = "DISABLE_JIRA_ISSUE_MATCH"

	// AllowManyCommits lets the single-commit status pass with more than one
	// commit.
	AllowManyCommits = "ALLOW_MANY_COMMITS"
)

// Flags maps override keys to their coerced values. A missing key is unset.
type Flags map[string]Value

// Parse extracts every override flag from body. It never fails; a body
// without flags yields an empty map.
func Parse(body string) Flags {
	flags := Flags{}
	for _, line := range strings.Split(body, "\n") {
		key, value, ok := parseLine(strings.TrimSuffix(line, "\r"))
		if !ok {
			continue
		}
		flags[key] = Coerce(value)
	}
	return flags
}

func parseLine(line string) (string, string, bool) {
	i := 0
	for i < len(line) && isKeyByte(line[i]) {
		i++
	}
	if i == 0 || i >= len(line) || line[i] != '=' {
		return "", "", false
	}
	key, rest := line[:i], line[i+1:]

	if hash := strings.IndexByte(rest, '#'); hash >= 0 {
		rest = rest[:hash]
	}
	value := strings.TrimRight(rest, " \t")
	if value == "" {
		return "", "", false
	}
	return key, value, true
}

func isKeyByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || b == '_'
}

// Enabled reports whether key is present with a truthy value.
func (f Flags) Enabled(key string) bool {
	v, ok := f[key]
	return ok && v.Truthy()
}

// Keys returns the keys of f in sorted order.
func (f Flags) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
