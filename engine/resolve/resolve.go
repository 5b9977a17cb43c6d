// Package resolve maps names typed at the console to content IDs.
package resolve

import (
	"fmt"
	"slices"
	"strings"
)

// Candidate is one thing a name can refer to.
type Candidate struct {
	ID   string
	Name string
}

// AmbiguityError indicates multiple candidates matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no candidate matched a name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("nothing called %q", e.Name)
}

// Resolve maps a typed name to the ID of exactly one candidate. An exact ID
// or full-name match wins outright; otherwise every candidate matching by
// word or by underscore-normalized ID is collected.
func Resolve(name string, candidates []Candidate) (string, error) {
	nameLower := strings.ToLower(strings.TrimSpace(name))
	if nameLower == "" {
		return "", &NotFoundError{Name: name}
	}

	// 1. Exact ID or full name.
	for _, c := range candidates {
		if strings.ToLower(c.ID) == nameLower || strings.ToLower(c.Name) == nameLower {
			return c.ID, nil
		}
	}

	// 2. Partial matches.
	var matches []string
	var names []string
	for _, c := range candidates {
		if slices.Contains(matches, c.ID) {
			continue
		}
		if matchesName(c, nameLower) {
			matches = append(matches, c.ID)
			names = append(names, c.Name)
		}
	}

	switch len(matches) {
	case 0:
		return "", &NotFoundError{Name: name}
	case 1:
		return matches[0], nil
	default:
		return "", &AmbiguityError{Name: name, Candidates: names}
	}
}

// matchesName checks a candidate against a lower-cased query.
// Supports word-based partial match and ID match.
func matchesName(c Candidate, nameLower string) bool {
	// Word-based partial match: the query matches a run of whole words in
	// the name. "tincture" matches "Cloudleaf Tincture", "iron ore" matches
	// "Quarry Iron Ore".
	if containsWords(strings.Fields(strings.ToLower(c.Name)), strings.Fields(nameLower)) {
		return true
	}
	// Underscore normalization: "anchor dust" matches ID "key_anchor_dust".
	idWords := strings.Split(strings.ToLower(c.ID), "_")
	return containsWords(idWords, strings.Fields(nameLower))
}

func containsWords(haystack, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if slices.Equal(haystack[i:i+len(needle)], needle) {
			return true
		}
	}
	return false
}
