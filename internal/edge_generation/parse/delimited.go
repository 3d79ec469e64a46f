// Package parse turns the corpus's heterogeneous delimited-set encodings
// into proper sets. The metadata store exports contributor and stargazer
// lists in several historical formats (bracketed lists, pipe-joined,
// comma-joined, bare single values); parsing is total and never fails —
// anything unrecognizable degrades to an empty set.
package parse

import (
	"sort"
	"strings"
)

type Set map[string]struct{}

func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

func (s Set) Add(v string) { s[v] = struct{}{} }

// Sorted returns the members in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Intersect returns a ∩ b.
func Intersect(a, b Set) Set {
	if len(b) < len(a) {
		a, b = b, a
	}
	out := Set{}
	for v := range a {
		if b.Has(v) {
			out.Add(v)
		}
	}
	return out
}

// DelimitedSet parses a delimited-set encoding with this priority order:
// bracketed list → pipe-separated → comma-separated → single value → empty.
// Tokens are trimmed, surrounding quotes stripped, empty tokens discarded.
func DelimitedSet(raw string) Set {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Set{}
	}

	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		inner := strings.TrimSpace(raw[1 : len(raw)-1])
		if inner == "" {
			return Set{}
		}
		return tokenize(inner, ",")
	}

	if strings.Contains(raw, "|") {
		return tokenize(raw, "|")
	}
	if strings.Contains(raw, ",") {
		return tokenize(raw, ",")
	}

	return NewSet(raw)
}

// Topics parses a pipe-delimited topic string. Topics use a fixed delimiter
// (the GEXF convention), so the general fallback chain does not apply.
func Topics(raw string) Set {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Set{}
	}
	return tokenize(raw, "|")
}

func tokenize(raw, sep string) Set {
	out := Set{}
	for _, tok := range strings.Split(raw, sep) {
		tok = strings.TrimSpace(tok)
		tok = strings.Trim(tok, `"'`)
		if tok != "" {
			out.Add(tok)
		}
	}
	return out
}
