package service

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Field limits shared by create and update paths.
const (
	maxNameLen        = 120
	maxDescriptionLen = 500
	maxNotesLen       = 1000
	maxTagLen         = 40
	maxLabelPrefixLen = 60
	minManualSecret   = 6
	maxManualSecret   = 200
)

func clock(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}
	return now().UTC()
}

func requireText(field, v string, maxLen int) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", validationErr("%s is required", field)
	}
	if utf8.RuneCountInString(v) > maxLen {
		return "", validationErr("%s must be at most %d characters", field, maxLen)
	}
	return v, nil
}

func optionalText(field, v string, maxLen int) (string, error) {
	v = strings.TrimSpace(v)
	if utf8.RuneCountInString(v) > maxLen {
		return "", validationErr("%s must be at most %d characters", field, maxLen)
	}
	return v, nil
}

// normalizeTags trims, drops empties and de-duplicates while keeping order.
func normalizeTags(tags []string) ([]string, error) {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if utf8.RuneCountInString(t) > maxTagLen {
			return nil, validationErr("tag %q must be at most %d characters", t, maxTagLen)
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}
