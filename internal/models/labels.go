package models

import "strings"

// labelSeparator splits labels typed into a single text field.
const labelSeparator = ";"

// ParseLabelTags splits s on ';', trims each piece and drops the empty ones.
// Order and duplicates are preserved. The result is never nil.
func ParseLabelTags(s string) []LabelTag {
	tags := []LabelTag{}
	for _, part := range strings.Split(s, labelSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tags = append(tags, LabelTag{Text: part})
	}
	return tags
}

// FormatLabelTags is the inverse of ParseLabelTags for display.
func FormatLabelTags(tags []LabelTag) string {
	texts := make([]string, 0, len(tags))
	for _, t := range tags {
		texts = append(texts, t.Text)
	}
	return strings.Join(texts, labelSeparator+" ")
}
