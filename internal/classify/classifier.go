// Package classify assigns category and brand labels to raw product names
// using ordered keyword pattern tables.
package classify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oneiro-labs/shelfmark/internal/model"
)

// Table validation errors.
var (
	ErrEmptyLabel     = errors.New("rule label cannot be empty")
	ErrNoPatterns     = errors.New("rule must have at least one pattern")
	ErrEmptyPattern   = errors.New("rule pattern cannot be empty")
	ErrDuplicateLabel = errors.New("duplicate rule label")
)

// Rule pairs a label with the substring patterns that select it. Rules are
// evaluated in table order; the first rule with any matching pattern wins.
type Rule struct {
	Label    string
	Patterns []string
}

// Classifier maps free-text product names to category and brand labels.
// Classification is pure: fixed tables and identical input always produce
// identical output.
type Classifier struct {
	categories []Rule
	brands     []Rule
}

// New creates a classifier from the given rule tables. Malformed tables are
// a configuration error and refuse to construct.
func New(categories, brands []Rule) (*Classifier, error) {
	if err := validateRules("categories", categories); err != nil {
		return nil, err
	}
	if err := validateRules("brands", brands); err != nil {
		return nil, err
	}

	return &Classifier{
		categories: lowerRules(categories),
		brands:     lowerRules(brands),
	}, nil
}

// Default returns a classifier built from the built-in rule tables.
func Default() *Classifier {
	c, err := New(DefaultCategoryRules(), DefaultBrandRules())
	if err != nil {
		// The built-in tables are validated by tests; reaching this
		// means the binary shipped with broken data.
		panic(fmt.Sprintf("built-in classification tables invalid: %v", err))
	}
	return c
}

// Classify derives category and brand labels from a product name. Empty or
// unmatched input yields empty labels, never an error.
func (c *Classifier) Classify(name string) model.ClassificationResult {
	name = strings.ToLower(name)

	return model.ClassificationResult{
		Category: matchTable(c.categories, name),
		Brand:    matchTable(c.brands, name),
	}
}

// Labels returns the category label vocabulary in table order.
func (c *Classifier) Labels() []string {
	labels := make([]string, len(c.categories))
	for i, rule := range c.categories {
		labels[i] = rule.Label
	}
	return labels
}

// matchTable returns the label of the first rule with any pattern appearing
// in name. Table order is the tie-break when multiple rules would match, not
// pattern position within the input.
func matchTable(rules []Rule, name string) string {
	if name == "" {
		return ""
	}

	for _, rule := range rules {
		for _, pattern := range rule.Patterns {
			if strings.Contains(name, pattern) {
				return rule.Label
			}
		}
	}

	return ""
}

func validateRules(table string, rules []Rule) error {
	seen := make(map[string]bool, len(rules))

	for i, rule := range rules {
		if strings.TrimSpace(rule.Label) == "" {
			return fmt.Errorf("%s rule at index %d: %w", table, i, ErrEmptyLabel)
		}
		if len(rule.Patterns) == 0 {
			return fmt.Errorf("%s rule %q: %w", table, rule.Label, ErrNoPatterns)
		}
		for _, pattern := range rule.Patterns {
			if strings.TrimSpace(pattern) == "" {
				return fmt.Errorf("%s rule %q: %w", table, rule.Label, ErrEmptyPattern)
			}
		}

		key := strings.ToLower(rule.Label)
		if seen[key] {
			return fmt.Errorf("%s rule %q: %w", table, rule.Label, ErrDuplicateLabel)
		}
		seen[key] = true
	}

	return nil
}

func lowerRules(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	for i, rule := range rules {
		patterns := make([]string, len(rule.Patterns))
		for j, pattern := range rule.Patterns {
			patterns[j] = strings.ToLower(pattern)
		}
		out[i] = Rule{Label: rule.Label, Patterns: patterns}
	}
	return out
}
