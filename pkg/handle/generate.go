package handle

import (
	"strings"
	"unicode/utf8"
)

const (
	// TargetCount is the number of unique handles sought per platform.
	TargetCount = 3
	// MaxAttempts bounds the candidates composed per platform before the
	// fallback kicks in.
	MaxAttempts = 15
	// DisplayPrefix decorates handles for display only.
	DisplayPrefix = "@"

	seedModulus = 9973
)

// Suggestion is the set of handles proposed for one platform.
type Suggestion struct {
	Key      string   `json:"key" yaml:"key"`
	Platform string   `json:"platform" yaml:"platform"`
	Handles  []string `json:"handles" yaml:"handles"`
	Tip      string   `json:"tip" yaml:"tip"`
}

// Identifiers returns the handles without the display prefix.
func (s Suggestion) Identifiers() []string {
	ids := make([]string, len(s.Handles))
	for i, h := range s.Handles {
		ids[i] = strings.TrimPrefix(h, DisplayPrefix)
	}
	return ids
}

// Generate returns one Suggestion per catalog platform, in catalog order.
// A name that normalizes to an empty string yields nil.
func Generate(name string, salt int64) []Suggestion {
	return generate(name, salt, catalog[:])
}

// GenerateFor is Generate restricted to the given platform keys. Catalog order
// is kept and unknown keys are ignored; with no keys it behaves like
// Generate. Per-platform results are identical to the unrestricted call.
func GenerateFor(name string, salt int64, keys ...string) []Suggestion {
	if len(keys) == 0 {
		return Generate(name, salt)
	}

	wanted := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		wanted[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
	}

	platforms := make([]Platform, 0, len(keys))
	for _, p := range catalog {
		if _, ok := wanted[p.Key]; ok {
			platforms = append(platforms, p)
		}
	}

	return generate(name, salt, platforms)
}

func generate(name string, salt int64, platforms []Platform) []Suggestion {
	normalized := Normalize(name)
	tokens, ok := Tokenize(normalized)
	if !ok {
		return nil
	}

	out := make([]Suggestion, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, suggest(p, normalized, tokens, salt))
	}
	return out
}

func suggest(p Platform, normalized string, tokens Tokens, salt int64) Suggestion {
	seed := Hash(p.Name+":"+normalized, salt) % seedModulus
	found := newOrderedSet(TargetCount + 1)

	for attempt := int64(0); attempt < MaxAttempts && found.len() < TargetCount; attempt++ {
		style := styles[(seed+attempt)%int64(len(styles))]
		prefix := p.Prefixes[(seed+attempt*3)%int64(len(p.Prefixes))]
		suffix := p.Suffixes[(seed+attempt*5)%int64(len(p.Suffixes))]

		candidate := Compose(tokens, prefix, suffix, style, salt)
		if utf8.RuneCountInString(candidate) >= MinLength {
			found.add(candidate)
		}
	}

	if found.len() < TargetCount {
		found.add(Compose(tokens, "", "", Compact, salt+1))
	}

	handles := make([]string, 0, found.len())
	for _, h := range found.items {
		handles = append(handles, DisplayPrefix+h)
	}

	return Suggestion{
		Key:      p.Key,
		Platform: p.Name,
		Handles:  handles,
		Tip:      p.Tip,
	}
}

// orderedSet deduplicates while keeping first-seen order.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet(capacity int) *orderedSet {
	return &orderedSet{
		seen:  make(map[string]struct{}, capacity),
		items: make([]string, 0, capacity),
	}
}

func (s *orderedSet) add(v string) {
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func (s *orderedSet) len() int { return len(s.items) }
