package importing

import (
	"fmt"
	"sort"
	"strings"
)

// FieldMapping maps source column names to target field keys. A column
// mapped to the empty string is explicitly skipped; a column absent
// from the mapping is unmapped.
type FieldMapping map[string]string

// AutoMap suggests a mapping from source headers to target fields.
// Per header, in priority order: exact normalized label match, then
// case-insensitive substring containment in either direction (first
// target field in declaration order wins), else the header stays
// unmapped. Each target field is claimed at most once, by the earliest
// header that matches it; later headers matching a claimed field stay
// unmapped, so the suggestion always passes Validate. Pure function of
// its inputs.
func AutoMap(headers []string, targetFields []TargetField) FieldMapping {
	mapping := make(FieldMapping, len(headers))
	claimed := make(map[string]bool, len(targetFields))

	for _, header := range headers {
		normalized := normalizeHeader(header)
		if normalized == "" {
			continue
		}

		matched := false
		for _, field := range targetFields {
			if claimed[field.Key] {
				continue
			}
			if normalizeHeader(field.Label) == normalized {
				mapping[header] = field.Key
				claimed[field.Key] = true
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		for _, field := range targetFields {
			if claimed[field.Key] {
				continue
			}
			label := normalizeHeader(field.Label)
			if strings.Contains(normalized, label) || strings.Contains(label, normalized) {
				mapping[header] = field.Key
				claimed[field.Key] = true
				break
			}
		}
	}

	return mapping
}

func normalizeHeader(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Validate checks a caller-supplied mapping against the entity type's
// vocabulary: every target must be a known field key (or empty for an
// explicit skip) and no two columns may map to the same field.
func (m FieldMapping) Validate(t EntityType) error {
	known := fieldKeySet(t)
	used := make(map[string]string, len(m))

	columns := make([]string, 0, len(m))
	for column := range m {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	for _, column := range columns {
		target := m[column]
		if target == "" {
			continue
		}
		if !known[target] {
			return fmt.Errorf("unknown target field %q for column %q", target, column)
		}
		if prev, ok := used[target]; ok {
			return fmt.Errorf("columns %q and %q both map to field %q", prev, column, target)
		}
		used[target] = column
	}

	return nil
}

// columnFor returns the source column mapped to the given field key,
// or "" when the field is unmapped.
func (m FieldMapping) columnFor(fieldKey string) string {
	for column, target := range m {
		if target == fieldKey {
			return column
		}
	}
	return ""
}
