package model

// CategoryGroup maps a set of alias labels accumulated over time to a single
// canonical category name. Keywords carry the vocabulary used for query-time
// matching against free-text category strings.
//
// Groups are static configuration: alias sets across groups must be disjoint,
// which the normalizer validates at startup.
type CategoryGroup struct {
	Canonical string
	Aliases   []string
	Keywords  []string
}
