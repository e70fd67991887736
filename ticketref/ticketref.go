/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package ticketref extracts issue-tracker ticket identifiers (e.g. "ABC-123")
// from the start of commit messages and pull request titles.
//
// The accepted grammar, anchored at the first byte of the input, is:
//
//	ref   := upper+ "-" digit+ sep next
//	upper := 'A'..'Z'
//	digit := '0'..'9'
//	sep   := ' '
//	next  := any non-whitespace rune
//
// Only upper+ "-" digit+ is returned. The separator and the rune after it are
// required but not part of the identifier, so "ABC-123fix", "ABC-123" and
// "fix ABC-123 bug" carry no reference.
package ticketref

import (
	"unicode"
	"unicode/utf8"
)

// Parse returns the ticket identifier at the start of s and true, or "" and
// false when s does not start with one.
func Parse(s string) (string, bool) {
	i := 0
	for i < len(s) && isUpper(s[i]) {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != '-' {
		return "", false
	}
	i++

	digits := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == digits {
		return "", false
	}
	end := i

	if i >= len(s) || s[i] != ' ' {
		return "", false
	}
	next, size := utf8.DecodeRuneInString(s[i+1:])
	if size == 0 || unicode.IsSpace(next) {
		return "", false
	}
	return s[:end], true
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
