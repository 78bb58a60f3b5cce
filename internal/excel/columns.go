package excel

import (
	"strings"

	"school-admin-db/pkg/errors"
)

type Field int

const (
	FieldName Field = iota
	FieldNationalID
	FieldGrade
	FieldClass
	FieldMobile
	FieldDate
	FieldTime
	FieldSubject
	fieldCount
)

// Imported sheets come from two school systems, one with Arabic headers
// and one with English ones, so every field carries both keyword sets.
// Matching is substring-based: "اسم الطالب" and "Student Name" both
// resolve the name column.
var fieldKeywords = [fieldCount][]string{
	FieldName:       {"اسم", "name"},
	FieldNationalID: {"هوية", "الهوية", "id"},
	FieldGrade:      {"صف", "الصف", "grade"},
	FieldClass:      {"فصل", "الفصل", "class"},
	FieldMobile:     {"جوال", "الجوال", "mobile"},
	FieldDate:       {"التاريخ", "date"},
	FieldTime:       {"وقت", "time"},
	FieldSubject:    {"مادة", "المادة", "subject"},
}

// ColumnMap maps logical fields to physical column indices, -1 when the
// header has no matching cell. Resolved once per sheet and passed down,
// never re-derived per row.
type ColumnMap [fieldCount]int

func ResolveColumns(header []string) ColumnMap {
	var m ColumnMap
	for f := range m {
		m[f] = -1
	}

	normalized := make([]string, len(header))
	for i, cell := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(cell))
	}

	for f := Field(0); f < fieldCount; f++ {
		for i, cell := range normalized {
			if containsAny(cell, fieldKeywords[f]) {
				m[f] = i
				break
			}
		}
	}
	return m
}

func containsAny(cell string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(cell, kw) {
			return true
		}
	}
	return false
}

func (m ColumnMap) Index(f Field) int {
	return m[f]
}

// IndexOr returns the positional fallback when the header matched nothing.
func (m ColumnMap) IndexOr(f Field, fallback int) int {
	if m[f] < 0 {
		return fallback
	}
	return m[f]
}

// Require fails when any of the given fields is unresolved. Import paths
// that cannot proceed without a column call this before reading any row.
func (m ColumnMap) Require(fields ...Field) error {
	for _, f := range fields {
		if m[f] < 0 {
			return errors.ErrMissingRequiredColumns
		}
	}
	return nil
}

// Value extracts the trimmed cell for a field, "" when the field is
// unresolved or the row is short.
func (m ColumnMap) Value(row []string, f Field) string {
	idx := m[f]
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
