package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oneiro-labs/shelfmark/internal/classify"
	"github.com/oneiro-labs/shelfmark/internal/common"
	"github.com/oneiro-labs/shelfmark/internal/model"
	"github.com/oneiro-labs/shelfmark/internal/normalize"
	"github.com/oneiro-labs/shelfmark/internal/pricing"
)

// Tables holds the externally editable classification and pricing data:
// pattern tables, canonical groups, price bands, multipliers and source
// definitions. A single YAML file replaces any subset of the built-in
// defaults without redeploying the pipeline.
type Tables struct {
	Categories  []RuleConfig           `yaml:"categories"`
	Brands      []RuleConfig           `yaml:"brands"`
	Groups      []GroupConfig          `yaml:"canonical_groups"`
	Bands       map[string]BandConfig  `yaml:"price_bands"`
	DefaultBand *BandConfig            `yaml:"default_band"`
	BrandTiers  map[string]float64     `yaml:"brand_tiers"`
	Features    []FeatureConfig        `yaml:"features"`
	Sources     []SourceDefinitionYAML `yaml:"sources"`
}

// RuleConfig is one ordered pattern rule.
type RuleConfig struct {
	Label    string   `yaml:"label"`
	Patterns []string `yaml:"patterns"`
}

// GroupConfig is one canonical category group.
type GroupConfig struct {
	Canonical string   `yaml:"canonical"`
	Aliases   []string `yaml:"aliases"`
	Keywords  []string `yaml:"keywords"`
}

// BandConfig is one category price band.
type BandConfig struct {
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Markup float64 `yaml:"markup"`
}

// FeatureConfig is one feature-keyword multiplier.
type FeatureConfig struct {
	Keyword string  `yaml:"keyword"`
	Factor  float64 `yaml:"factor"`
}

// SourceDefinitionYAML describes one scrapeable marketplace.
type SourceDefinitionYAML struct {
	Name              string  `yaml:"name"`
	SearchURL         string  `yaml:"search_url"`
	Selector          string  `yaml:"selector"`
	RequestsPerMinute float64 `yaml:"requests_per_minute"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
}

// LoadTables reads and validates the data-table file. A missing path yields
// empty tables, meaning the built-in defaults apply throughout. Structural
// problems are configuration errors and fatal to the caller.
func LoadTables(path string) (*Tables, error) {
	if path == "" {
		return &Tables{}, nil
	}

	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return &Tables{}, nil
		}
		return nil, fmt.Errorf("failed to read data tables: %w", err)
	}

	var tables Tables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse data tables: %w", err)
	}

	if err := tables.validate(); err != nil {
		return nil, fmt.Errorf("%w: data tables in %s: %v", common.ErrInvalidConfig, path, err)
	}

	return &tables, nil
}

func (t *Tables) validate() error {
	for category, band := range t.Bands {
		if err := validateBand(category, band); err != nil {
			return err
		}
	}
	if t.DefaultBand != nil {
		if err := validateBand("default", *t.DefaultBand); err != nil {
			return err
		}
	}

	for i, feature := range t.Features {
		if feature.Keyword == "" {
			return fmt.Errorf("feature at index %d: keyword is required", i)
		}
		if feature.Factor <= 0 {
			return fmt.Errorf("feature %q: factor must be positive", feature.Keyword)
		}
	}

	for tier, factor := range t.BrandTiers {
		if factor <= 0 {
			return fmt.Errorf("brand tier %q: multiplier must be positive", tier)
		}
	}

	for i, source := range t.Sources {
		if source.Name == "" {
			return fmt.Errorf("source at index %d: name is required", i)
		}
		if source.SearchURL == "" {
			return fmt.Errorf("source %q: search_url is required", source.Name)
		}
		if source.Selector == "" {
			return fmt.Errorf("source %q: selector is required", source.Name)
		}
	}

	return nil
}

func validateBand(category string, band BandConfig) error {
	if band.Min < 0 {
		return fmt.Errorf("price band %q: min cannot be negative", category)
	}
	if band.Max < band.Min {
		return fmt.Errorf("price band %q: max below min", category)
	}
	if band.Markup <= 0 {
		return fmt.Errorf("price band %q: markup must be positive", category)
	}
	return nil
}

// ClassifierRules returns the configured pattern tables, falling back to
// the built-in defaults when a table is absent.
func (t *Tables) ClassifierRules() (categories, brands []classify.Rule) {
	categories = classify.DefaultCategoryRules()
	if len(t.Categories) > 0 {
		categories = toRules(t.Categories)
	}
	brands = classify.DefaultBrandRules()
	if len(t.Brands) > 0 {
		brands = toRules(t.Brands)
	}
	return categories, brands
}

// CategoryGroups returns the configured canonical groups or the defaults.
func (t *Tables) CategoryGroups() []model.CategoryGroup {
	if len(t.Groups) == 0 {
		return normalize.DefaultGroups()
	}

	groups := make([]model.CategoryGroup, len(t.Groups))
	for i, group := range t.Groups {
		groups[i] = model.CategoryGroup{
			Canonical: group.Canonical,
			Aliases:   group.Aliases,
			Keywords:  group.Keywords,
		}
	}
	return groups
}

// Estimator builds the heuristic estimator from configured bands and
// multipliers, defaulting each table independently.
func (t *Tables) Estimator() *pricing.Estimator {
	bands := pricing.DefaultBands()
	if len(t.Bands) > 0 {
		bands = make(map[string]pricing.Band, len(t.Bands))
		for category, band := range t.Bands {
			bands[category] = pricing.Band(band)
		}
	}

	defaultBand := pricing.DefaultBand()
	if t.DefaultBand != nil {
		defaultBand = pricing.Band(*t.DefaultBand)
	}

	tiers := pricing.DefaultBrandTiers()
	if len(t.BrandTiers) > 0 {
		tiers = t.BrandTiers
	}

	features := pricing.DefaultFeatures()
	if len(t.Features) > 0 {
		features = make([]pricing.FeatureMultiplier, len(t.Features))
		for i, feature := range t.Features {
			features[i] = pricing.FeatureMultiplier(feature)
		}
	}

	return pricing.NewEstimator(bands, defaultBand, tiers, features)
}

// SourceConfigs returns the configured marketplace sources or the defaults,
// preserving priority order.
func (t *Tables) SourceConfigs() []pricing.SourceConfig {
	if len(t.Sources) == 0 {
		return pricing.DefaultSourceConfigs()
	}

	configs := make([]pricing.SourceConfig, len(t.Sources))
	for i, source := range t.Sources {
		configs[i] = pricing.SourceConfig{
			Name:              source.Name,
			SearchURL:         source.SearchURL,
			Selector:          source.Selector,
			RequestsPerMinute: source.RequestsPerMinute,
			Timeout:           time.Duration(source.TimeoutSeconds) * time.Second,
		}
	}
	return configs
}

func toRules(configs []RuleConfig) []classify.Rule {
	rules := make([]classify.Rule, len(configs))
	for i, cfg := range configs {
		rules[i] = classify.Rule{Label: cfg.Label, Patterns: cfg.Patterns}
	}
	return rules
}
