// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import (
	"strconv"
	"strings"
)

var (
	escaper   = strings.NewReplacer("~", "~0", "/", "~1")
	unescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// Normalize trims surrounding slashes and re-adds a single leading slash.
// An empty or all-slash pointer normalizes to "".
func Normalize(pointer string) string {
	trimmed := strings.Trim(pointer, "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}

// Escape encodes a single reference token ("~" → "~0", "/" → "~1").
func Escape(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	return escaper.Replace(token)
}

// Unescape decodes a single reference token.
func Unescape(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	return unescaper.Replace(token)
}

// Join appends escaped tokens to a pointer and normalizes the result.
func Join(pointer string, tokens ...string) string {
	var b strings.Builder
	b.Grow(len(pointer) + 8*len(tokens))
	b.WriteString(strings.Trim(pointer, "/"))
	for _, tok := range tokens {
		if b.Len() > 0 {
			b.WriteByte('/')
		}
		b.WriteString(Escape(tok))
	}
	return Normalize(b.String())
}

// JoinIndex appends an array index token.
func JoinIndex(pointer string, i int) string {
	return Join(pointer, strconv.Itoa(i))
}

// Prefix re-roots pointer under prefix, e.g. Prefix("/query", "/limit") → "/query/limit".
func Prefix(prefix, pointer string) string {
	p := strings.Trim(prefix, "/")
	rest := strings.Trim(pointer, "/")
	switch {
	case p == "":
		return Normalize(rest)
	case rest == "":
		return "/" + p
	}
	return "/" + p + "/" + rest
}

// Tokens splits a pointer into its unescaped reference tokens.
func Tokens(pointer string) []string {
	trimmed := strings.Trim(pointer, "/")
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, "/")
	for i, p := range parts {
		parts[i] = Unescape(p)
	}
	return parts
}
