// Package normalize consolidates heterogeneous category labels into
// canonical groups and matches query-time filters against stored strings.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oneiro-labs/shelfmark/internal/model"
)

// Registry configuration errors. These are fatal at startup: an ambiguous
// alias would make normalization non-deterministic.
var (
	ErrDuplicateAlias = errors.New("alias belongs to more than one group")
	ErrEmptyCanonical = errors.New("group canonical name cannot be empty")
)

// Registry holds the canonical category groups and answers alias lookups.
type Registry struct {
	aliases  map[string]string // lowercased alias -> canonical name
	keywords map[string]bool   // lowercased keyword vocabulary
	groups   []model.CategoryGroup
}

// NewRegistry builds a registry, validating that alias sets across groups
// are disjoint. A group's canonical name counts as one of its aliases.
func NewRegistry(groups []model.CategoryGroup) (*Registry, error) {
	r := &Registry{
		aliases:  make(map[string]string),
		keywords: make(map[string]bool),
		groups:   groups,
	}

	owner := make(map[string]string) // alias -> canonical that claimed it

	for _, group := range groups {
		if strings.TrimSpace(group.Canonical) == "" {
			return nil, ErrEmptyCanonical
		}

		names := append([]string{group.Canonical}, group.Aliases...)
		for _, name := range names {
			key := normalizeKey(name)
			if key == "" {
				continue
			}
			if prev, taken := owner[key]; taken && prev != group.Canonical {
				return nil, fmt.Errorf("%w: %q claimed by both %q and %q",
					ErrDuplicateAlias, name, prev, group.Canonical)
			}
			owner[key] = group.Canonical
			r.aliases[key] = group.Canonical
		}

		for _, keyword := range group.Keywords {
			key := normalizeKey(keyword)
			if key != "" {
				r.keywords[singular(key)] = true
			}
		}
	}

	return r, nil
}

// Default returns a registry built from the built-in group table.
func Default() *Registry {
	r, err := NewRegistry(DefaultGroups())
	if err != nil {
		panic(fmt.Sprintf("built-in category groups invalid: %v", err))
	}
	return r
}

// Normalize maps a raw category label to its canonical name. Unknown labels
// pass through unchanged; absence of a mapping is not an error.
func (r *Registry) Normalize(raw string) string {
	if canonical, ok := r.aliases[normalizeKey(raw)]; ok {
		return canonical
	}
	return raw
}

// Matches reports whether a stored product category satisfies a query-time
// category filter. Three tiers, short-circuiting on first success: exact
// case-insensitive equality, same canonical group, then a keyword-guarded
// token subset for partial labels like "Processor Type" vs "Processors".
//
// Both arguments must be category-typed strings; the keyword guard keeps a
// bare brand name from matching on token overlap alone.
func (r *Registry) Matches(productCategory, filterCategory string) bool {
	product := normalizeKey(productCategory)
	filter := normalizeKey(filterCategory)
	if product == "" || filter == "" {
		return false
	}

	if product == filter {
		return true
	}

	productCanonical, productKnown := r.aliases[product]
	filterCanonical, filterKnown := r.aliases[filter]
	if productKnown && filterKnown && productCanonical == filterCanonical {
		return true
	}

	return r.tokenSubset(product, filter)
}

// tokenSubset checks that every filter token appears within some product
// token, tolerating plural forms. At least one filter token must belong to
// the category keyword vocabulary for the tier to apply.
func (r *Registry) tokenSubset(product, filter string) bool {
	filterTokens := strings.Fields(filter)
	if len(filterTokens) == 0 {
		return false
	}
	productTokens := strings.Fields(product)

	keyworded := false
	for _, token := range filterTokens {
		token = singular(token)

		found := false
		for _, candidate := range productTokens {
			if strings.Contains(candidate, token) {
				found = true
				break
			}
		}
		if !found {
			return false
		}

		if r.keywords[token] {
			keyworded = true
		}
	}

	return keyworded
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// singular strips a trailing plural suffix so "processors" lines up with
// "processor". Crude but sufficient for category vocabulary.
func singular(token string) string {
	if strings.HasSuffix(token, "es") && len(token) > 4 {
		return token[:len(token)-2]
	}
	if strings.HasSuffix(token, "s") && len(token) > 3 {
		return token[:len(token)-1]
	}
	return token
}
