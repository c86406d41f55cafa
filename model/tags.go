package model

import (
	"sort"
	"strings"
)

// Tags is a normalized set of test or keyword tags. Tags keep the spelling
// they were given with, but duplicates are collapsed case-insensitively,
// empty tags are dropped and the stored order is case-insensitive
// alphabetical. Removal accepts simple glob patterns with '*' and '?'.
type Tags struct {
	tags []string
}

// NewTags creates a normalized tag set from the given tags.
func NewTags(tags ...string) *Tags {
	t := &Tags{}
	t.Add(tags...)
	return t
}

// Add adds the given tags to the set, normalizing as described on Tags.
func (t *Tags) Add(tags ...string) {
	merged := append(append([]string(nil), t.tags...), tags...)
	t.tags = normalizeTags(merged)
}

// Remove removes tags matching any of the given patterns. Matching is
// case-insensitive and supports '*' and '?' glob wildcards.
func (t *Tags) Remove(patterns ...string) {
	kept := t.tags[:0:0]
	for _, tag := range t.tags {
		if !matchesAny(tag, patterns) {
			kept = append(kept, tag)
		}
	}
	t.tags = kept
}

// Match reports whether any tag in the set matches the given pattern.
func (t *Tags) Match(pattern string) bool {
	for _, tag := range t.tags {
		if matchTag(tag, pattern) {
			return true
		}
	}
	return false
}

// Contains reports whether the exact tag, compared case-insensitively,
// is in the set.
func (t *Tags) Contains(tag string) bool {
	key := strings.ToLower(tag)
	for _, existing := range t.tags {
		if strings.ToLower(existing) == key {
			return true
		}
	}
	return false
}

// Len returns the number of tags in the set.
func (t *Tags) Len() int {
	return len(t.tags)
}

// Empty reports whether the set has no tags.
func (t *Tags) Empty() bool {
	return len(t.tags) == 0
}

// List returns the tags in their normalized order. The returned slice is a
// copy and safe to modify.
func (t *Tags) List() []string {
	return append([]string(nil), t.tags...)
}

// Set replaces the whole tag set with the given tags.
func (t *Tags) Set(tags []string) {
	t.tags = normalizeTags(tags)
}

// DeepCopy returns an independent copy of the tag set.
func (t *Tags) DeepCopy() *Tags {
	return &Tags{tags: append([]string(nil), t.tags...)}
}

// String returns the tags joined in bracket notation, e.g. "[t1, t2]".
func (t *Tags) String() string {
	return "[" + strings.Join(t.tags, ", ") + "]"
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

func matchesAny(tag string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchTag(tag, pattern) {
			return true
		}
	}
	return false
}

// matchTag matches a tag against a pattern case-insensitively with '*'
// matching any run of characters and '?' matching a single character.
func matchTag(tag, pattern string) bool {
	return globMatch(strings.ToLower(pattern), strings.ToLower(tag))
}

func globMatch(pattern, s string) bool {
	px, sx := 0, 0
	starPx, starSx := -1, -1
	for sx < len(s) {
		if px < len(pattern) && (pattern[px] == '?' || pattern[px] == s[sx]) {
			px++
			sx++
		} else if px < len(pattern) && pattern[px] == '*' {
			starPx, starSx = px, sx
			px++
		} else if starPx >= 0 {
			px = starPx + 1
			starSx++
			sx = starSx
		} else {
			return false
		}
	}
	for px < len(pattern) && pattern[px] == '*' {
		px++
	}
	return px == len(pattern)
}
