package services

import "strings"

// normalizeList accepts tag/keyword input that may arrive as an
// already-split sequence or as comma-joined strings: every element is
// split on commas, trimmed, and empty results are dropped.
func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// normalizeTags applies normalizeList and enforces the at-least-one-tag
// invariant.
func normalizeTags(values []string) ([]string, error) {
	tags := normalizeList(values)
	if len(tags) == 0 {
		return nil, validationErr("at least one tag is required")
	}
	return tags, nil
}
