// Package lexicon holds the case-insensitive substring matcher shared by the
// emotion detector, the priority recommender, the challenge questions and the
// report synthesizer. Matching is plain containment on the lower-cased text:
// "fear" matches inside "fearless".
package lexicon

import "strings"

// List is a named set of lower-case phrases.
type List struct {
	Name    string
	Phrases []string
}

// New builds a list, lower-casing every phrase.
func New(name string, phrases ...string) List {
	lowered := make([]string, len(phrases))
	for i, p := range phrases {
		lowered[i] = strings.ToLower(p)
	}
	return List{Name: name, Phrases: lowered}
}

// Count returns how many phrases occur in text. Each phrase counts once.
func (l List) Count(text string) int {
	return countLower(strings.ToLower(text), l.Phrases)
}

// Any reports whether at least one phrase occurs in text.
func (l List) Any(text string) bool {
	return anyLower(strings.ToLower(text), l.Phrases)
}

// Matches returns the phrases found in text, in list order.
func (l List) Matches(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, p := range l.Phrases {
		if strings.Contains(lower, p) {
			out = append(out, p)
		}
	}
	return out
}

// ContainsAny is the one-off form of List.Any.
func ContainsAny(text string, phrases ...string) bool {
	return New("", phrases...).Any(text)
}

func countLower(lower string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			n++
		}
	}
	return n
}

func anyLower(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Table is an ordered set of lists. Order matters for FirstMatch.
type Table []List

// FirstMatch returns the first list with any phrase in text.
func (t Table) FirstMatch(text string) (List, bool) {
	lower := strings.ToLower(text)
	for _, l := range t {
		if anyLower(lower, l.Phrases) {
			return l, true
		}
	}
	return List{}, false
}

// Counts returns the per-list match count in table order.
func (t Table) Counts(text string) []int {
	lower := strings.ToLower(text)
	out := make([]int, len(t))
	for i, l := range t {
		out[i] = countLower(lower, l.Phrases)
	}
	return out
}
