package excel

import (
	"testing"

	"school-admin-db/pkg/errors"
)

func TestResolveColumnsArabicHeader(t *testing.T) {
	header := []string{"اسم الطالب", "رقم الهوية", "الصف", "الفصل"}
	cols := ResolveColumns(header)

	expected := map[Field]int{
		FieldName:       0,
		FieldNationalID: 1,
		FieldGrade:      2,
		FieldClass:      3,
		FieldMobile:     -1,
		FieldDate:       -1,
		FieldTime:       -1,
	}
	for field, want := range expected {
		if got := cols.Index(field); got != want {
			t.Errorf("field %d: got index %d, want %d", field, got, want)
		}
	}
}

func TestResolveColumnsEnglishCaseInsensitive(t *testing.T) {
	header := []string{"Student Name", "Civil ID", "Grade", "Class", "Mobile", "Date", "Time"}
	cols := ResolveColumns(header)

	if cols.Index(FieldName) != 0 {
		t.Errorf("name: got %d, want 0", cols.Index(FieldName))
	}
	if cols.Index(FieldNationalID) != 1 {
		t.Errorf("id: got %d, want 1", cols.Index(FieldNationalID))
	}
	if cols.Index(FieldDate) != 5 {
		t.Errorf("date: got %d, want 5", cols.Index(FieldDate))
	}
	if cols.Index(FieldTime) != 6 {
		t.Errorf("time: got %d, want 6", cols.Index(FieldTime))
	}
}

func TestResolveColumnsFirstMatchWins(t *testing.T) {
	header := []string{"name", "full name"}
	cols := ResolveColumns(header)
	if cols.Index(FieldName) != 0 {
		t.Errorf("got %d, want first matching cell 0", cols.Index(FieldName))
	}
}

func TestRequireMissingMandatoryColumn(t *testing.T) {
	cols := ResolveColumns([]string{"الصف", "الفصل"})
	err := cols.Require(FieldName, FieldNationalID)
	if err != errors.ErrMissingRequiredColumns {
		t.Fatalf("got %v, want ErrMissingRequiredColumns", err)
	}
}

func TestRequireSatisfied(t *testing.T) {
	cols := ResolveColumns([]string{"اسم", "هوية"})
	if err := cols.Require(FieldName, FieldNationalID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIndexOrFallback(t *testing.T) {
	cols := ResolveColumns([]string{"عمود غريب", "آخر"})
	if got := cols.IndexOr(FieldDate, 4); got != 4 {
		t.Errorf("got %d, want positional fallback 4", got)
	}

	cols = ResolveColumns([]string{"التاريخ"})
	if got := cols.IndexOr(FieldDate, 4); got != 0 {
		t.Errorf("got %d, want resolved index 0", got)
	}
}

func TestValueShortRow(t *testing.T) {
	cols := ResolveColumns([]string{"اسم", "هوية", "جوال"})
	row := []string{" أحمد ", "12345"}

	if got := cols.Value(row, FieldName); got != "أحمد" {
		t.Errorf("got %q, want trimmed name", got)
	}
	if got := cols.Value(row, FieldMobile); got != "" {
		t.Errorf("got %q, want empty for short row", got)
	}
	if got := cols.Value(row, FieldDate); got != "" {
		t.Errorf("got %q, want empty for unresolved field", got)
	}
}
