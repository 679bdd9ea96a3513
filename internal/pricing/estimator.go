package pricing

import (
	"math"
	"strings"
)

// Band bounds the expected price range for a category and carries its
// markup factor.
type Band struct {
	Min    float64
	Max    float64
	Markup float64
}

// FeatureMultiplier scales an estimate when a keyword appears in the
// product description. Multipliers compound in declaration order and apply
// once per matching keyword, not once per occurrence.
type FeatureMultiplier struct {
	Keyword string
	Factor  float64
}

// Estimator produces a deterministic heuristic price when neither the cache
// nor any live source yields one.
type Estimator struct {
	bands       map[string]Band
	brandTiers  map[string]float64
	features    []FeatureMultiplier
	defaultBand Band
}

// NewEstimator builds an estimator from configured tables. Categories
// missing from bands fall back to defaultBand; brands missing from tiers
// use a multiplier of 1.0.
func NewEstimator(bands map[string]Band, defaultBand Band, brandTiers map[string]float64, features []FeatureMultiplier) *Estimator {
	return &Estimator{
		bands:       bands,
		defaultBand: defaultBand,
		brandTiers:  brandTiers,
		features:    features,
	}
}

// DefaultEstimator returns an estimator built from the built-in tables.
func DefaultEstimator() *Estimator {
	return NewEstimator(DefaultBands(), DefaultBand(), DefaultBrandTiers(), DefaultFeatures())
}

// Estimate computes the heuristic amount: category band midpoint, scaled by
// brand tier and feature multipliers, then the category markup, rounded to
// the nearest 100 units.
func (e *Estimator) Estimate(category, brand, description string) float64 {
	band, ok := e.bands[category]
	if !ok {
		band = e.defaultBand
	}

	amount := (band.Min + band.Max) / 2

	if tier, ok := e.brandTiers[brand]; ok {
		amount *= tier
	}

	desc := strings.ToLower(description)
	for _, feature := range e.features {
		if strings.Contains(desc, feature.Keyword) {
			amount *= feature.Factor
		}
	}

	amount *= band.Markup

	return math.Round(amount/100) * 100
}

// DefaultBand is the band used for unrecognized categories.
func DefaultBand() Band {
	return Band{Min: 2000, Max: 50000, Markup: 1.2}
}

// DefaultBands returns the built-in per-category price bands.
func DefaultBands() map[string]Band {
	return map[string]Band{
		"GPU":          {Min: 15000, Max: 150000, Markup: 1.1},
		"CPU":          {Min: 8000, Max: 60000, Markup: 1.1},
		"Motherboard":  {Min: 5000, Max: 35000, Markup: 1.15},
		"RAM":          {Min: 2500, Max: 15000, Markup: 1.2},
		"Storage":      {Min: 3000, Max: 20000, Markup: 1.2},
		"PSU":          {Min: 3000, Max: 15000, Markup: 1.2},
		"Cooler":       {Min: 1500, Max: 12000, Markup: 1.25},
		"Cabinet":      {Min: 2500, Max: 12000, Markup: 1.25},
		"Monitor":      {Min: 8000, Max: 45000, Markup: 1.15},
		"Keyboard":     {Min: 1000, Max: 15000, Markup: 1.3},
		"Mouse":        {Min: 500, Max: 10000, Markup: 1.3},
		"Headset":      {Min: 1000, Max: 20000, Markup: 1.3},
		"Laptop":       {Min: 35000, Max: 180000, Markup: 1.1},
		"Prebuilt PCs": {Min: 30000, Max: 150000, Markup: 1.15},
		"Networking":   {Min: 1500, Max: 15000, Markup: 1.2},
		"Accessories":  {Min: 300, Max: 5000, Markup: 1.3},
	}
}

// DefaultBrandTiers returns the built-in brand-tier multipliers. Unknown
// brands implicitly get 1.0.
func DefaultBrandTiers() map[string]float64 {
	return map[string]float64{
		"ASUS":            1.2,
		"MSI":             1.15,
		"Gigabyte":        1.1,
		"ASRock":          1.0,
		"Zotac":           0.95,
		"Intel":           1.2,
		"AMD":             1.1,
		"NVIDIA":          1.25,
		"Corsair":         1.2,
		"G.Skill":         1.1,
		"Kingston":        1.0,
		"Crucial":         0.95,
		"Samsung":         1.2,
		"Western Digital": 1.05,
		"Seagate":         1.0,
		"Cooler Master":   1.05,
		"NZXT":            1.15,
		"Deepcool":        0.9,
		"Antec":           0.95,
		"Logitech":        1.15,
		"Razer":           1.3,
		"SteelSeries":     1.2,
		"HyperX":          1.1,
		"Dell":            1.1,
		"HP":              1.05,
		"Lenovo":          1.05,
		"Acer":            0.95,
		"LG":              1.1,
		"BenQ":            1.1,
		"TP-Link":         0.95,
	}
}

// DefaultFeatures returns the built-in feature multipliers in their fixed
// application order.
func DefaultFeatures() []FeatureMultiplier {
	return []FeatureMultiplier{
		{Keyword: "wireless", Factor: 1.15},
		{Keyword: "mechanical", Factor: 1.25},
		{Keyword: "rgb", Factor: 1.1},
		{Keyword: "gaming", Factor: 1.2},
		{Keyword: "4k", Factor: 1.3},
		{Keyword: "curved", Factor: 1.15},
		{Keyword: "ultrawide", Factor: 1.2},
	}
}
