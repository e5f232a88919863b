package export

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jarda-app/jarda/internal/domain/item"
	"github.com/jarda-app/jarda/internal/domain/session"
)

func ptr(v float64) *float64 { return &v }

func TestSession_RowsMatchItemOrder(t *testing.T) {
	sess := &session.Session{
		SiteName:  "مشروع نيوم",
		StartDate: "2023-10-26",
		Items: []item.Item{
			{ID: "i1", Code: "101", Name: "أرز بسمتي", Brand: "أبو كاس", Unit: "كجم"},
			{ID: "i2", Code: "102", Name: "سكر", Unit: "كجم"},
		},
		Entries: map[string]session.Entry{
			"i1": {ItemID: "i1", Quantity: ptr(25.5), Notes: "كيس مفتوح"},
		},
	}

	f, err := Session(sess)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, headers, rows[0])
	require.Equal(t, []string{"1", "101", "أرز بسمتي", "أبو كاس", "كجم", "25.5", "كيس مفتوح"}, rows[1])

	// No entry: quantity renders as zero, notes stay blank. GetRows trims
	// trailing empty cells.
	require.Equal(t, []string{"2", "102", "سكر", "", "كجم", "0"}, rows[2])
}

func TestSession_SheetIsRightToLeft(t *testing.T) {
	f, err := Session(&session.Session{})
	require.NoError(t, err)
	defer f.Close()

	opts, err := f.GetSheetView(sheetName, -1)
	require.NoError(t, err)
	require.NotNil(t, opts.RightToLeft)
	require.True(t, *opts.RightToLeft)
}

func TestFilename(t *testing.T) {
	sess := &session.Session{SiteName: "مشروع نيوم", StartDate: "2023-10-26"}
	require.Equal(t, "Inventory_مشروع نيوم_2023-10-26.xlsx", Filename(sess))
}
