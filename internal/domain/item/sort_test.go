package item_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jarda-app/jarda/internal/domain/item"
)

func codes(items []item.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Code
	}
	return out
}

func fromCodes(cs ...string) []item.Item {
	out := make([]item.Item, len(cs))
	for i, c := range cs {
		out[i] = item.Item{ID: c, Code: c}
	}
	return out
}

func TestSortByCode_NumericRuns(t *testing.T) {
	sorted := item.SortByCode(fromCodes("2", "10", "1"))
	require.Equal(t, []string{"1", "2", "10"}, codes(sorted))
}

func TestSortByCode_MixedAlphanumeric(t *testing.T) {
	sorted := item.SortByCode(fromCodes("11BG2", "11BG1"))
	require.Equal(t, []string{"11BG1", "11BG2"}, codes(sorted))
}

func TestSortByCode_CaseInsensitive(t *testing.T) {
	sorted := item.SortByCode(fromCodes("b2", "A10", "a2"))
	require.Equal(t, []string{"a2", "A10", "b2"}, codes(sorted))
}

func TestSortByCode_Idempotent(t *testing.T) {
	once := item.SortByCode(fromCodes("301", "101", "11BG2", "2", "11BG1", "10"))
	twice := item.SortByCode(once)
	require.Equal(t, once, twice)
}

func TestSortByCode_StableForDuplicates(t *testing.T) {
	items := []item.Item{
		{ID: "first", Code: "100"},
		{ID: "second", Code: "100"},
		{ID: "third", Code: "100"},
	}
	sorted := item.SortByCode(items)
	require.Equal(t, "first", sorted[0].ID)
	require.Equal(t, "second", sorted[1].ID)
	require.Equal(t, "third", sorted[2].ID)
}

func TestSortByCode_DoesNotMutateInput(t *testing.T) {
	in := fromCodes("2", "1")
	_ = item.SortByCode(in)
	require.Equal(t, []string{"2", "1"}, codes(in))
}

func TestCompareCodes(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2", "10", -1},
		{"10", "2", 1},
		{"11BG1", "11BG2", -1},
		{"abc", "ABC", 0},
		{"01", "1", 0},
		{"101", "101", 0},
		{"10", "10a", -1},
		{"", "1", -1},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, item.CompareCodes(tt.a, tt.b), "compare %q %q", tt.a, tt.b)
	}
}
