package plan

import (
	"strings"
)

// SectionGroup is all balanced operations sharing one garment section, in
// first-seen input order.
type SectionGroup struct {
	// Section is the display label of the section. Operations with an empty
	// section land in DefaultSection.
	Section string `json:"section" yaml:"section" bson:"section"`

	// Operations keeps the original input order within the section.
	Operations []BalancedOperation `json:"operations" yaml:"operations" bson:"operations"`
}

// GroupBySection buckets balanced operations by section label.
//
// Labels match case-insensitively ("Cuff" and "cuff" share a bucket); the
// first spelling seen becomes the bucket's display label. Group order is the
// order sections first appear in the input, so layout placement stays
// deterministic for a given operation list. Pure; no failure modes.
func GroupBySection(balanced []BalancedOperation) []SectionGroup {
	groups := make([]SectionGroup, 0)
	index := make(map[string]int)

	for _, b := range balanced {
		label := sectionLabel(b.Operation.Section)
		key := strings.ToLower(label)

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, SectionGroup{Section: label})
		}
		groups[i].Operations = append(groups[i].Operations, b)
	}
	return groups
}

// sectionLabel normalizes a raw section string to its display form.
func sectionLabel(raw string) string {
	label := strings.TrimSpace(raw)
	if label == "" {
		return DefaultSection
	}
	return label
}
