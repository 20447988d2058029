// Package tier maps complexity-level labels onto the canonical tier set.
//
// Interview schemas and callers have used several names for the same
// complexity levels over time. Every lookup normalizes through the alias
// table first; labels the table does not know fall back to the most
// restrictive tier instead of failing.
package tier

import "strings"

// Tier is a canonical complexity level.
type Tier string

const (
	Base       Tier = "base"
	Minimal    Tier = "minimal"
	Enterprise Tier = "enterprise"
)

// Fallback is the tier used for any label missing from the alias table.
const Fallback = Base

// canonical is the declared order of the canonical tiers.
var canonical = []Tier{Base, Minimal, Enterprise}

// aliases maps accepted labels (legacy and canonical) to canonical tiers.
var aliases = map[string]Tier{
	"simple":       Base,
	"startup":      Minimal,
	"enterprise":   Enterprise,
	"mcp-specific": Enterprise,
	"mcp":          Enterprise,

	// Canonical names resolve to themselves.
	"base":    Base,
	"minimal": Minimal,
}

// Normalize maps any label to a canonical tier. Matching ignores case and
// surrounding whitespace. It never fails: unknown labels yield Fallback.
func Normalize(label string) Tier {
	if t, ok := aliases[key(label)]; ok {
		return t
	}
	return Fallback
}

// IsKnown reports whether label appears in the alias table.
func IsKnown(label string) bool {
	_, ok := aliases[key(label)]
	return ok
}

// IsCanonical reports whether t is one of the canonical tiers.
func IsCanonical(t Tier) bool {
	for _, c := range canonical {
		if c == t {
			return true
		}
	}
	return false
}

// Canonical returns the canonical tiers in declared order.
func Canonical() []Tier {
	result := make([]Tier, len(canonical))
	copy(result, canonical)
	return result
}

// Labels returns every accepted label, canonical names first, for use in
// tool definitions and help text.
func Labels() []string {
	return []string{"base", "minimal", "enterprise", "simple", "startup", "mcp", "mcp-specific"}
}

func key(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
