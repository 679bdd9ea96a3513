package model

// ClassificationResult holds the labels derived from a product's raw name.
// An empty field means no pattern matched, which is an expected outcome
// rather than an error.
type ClassificationResult struct {
	Category string
	Brand    string
}

// IsEmpty reports whether classification produced no labels at all.
func (r ClassificationResult) IsEmpty() bool {
	return r.Category == "" && r.Brand == ""
}
