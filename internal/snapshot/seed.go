package snapshot

import (
	"github.com/jarda-app/jarda/internal/domain/item"
	"github.com/jarda-app/jarda/internal/domain/session"
	"github.com/jarda-app/jarda/internal/domain/site"
)

// Seed is the data a fresh store starts from when no snapshot exists yet.
// The item catalog also serves as the migration fallback for stored
// sessions that predate per-session item lists.
type Seed struct {
	Sites    []site.Site
	Sessions []session.Session
	Items    []item.Item
}

// DefaultSeed returns the stock catering catalog and demo sites.
func DefaultSeed() Seed {
	items := []item.Item{
		{ID: "1", Code: "101", Brand: "المهيدب", Name: "أرز بسمتي", Unit: "كجم", MinQuantity: f(10), MaxQuantity: f(100)},
		{ID: "2", Code: "102", Brand: "الأسرة", Name: "سكر ناعم", Unit: "كجم", MinQuantity: f(5), MaxQuantity: f(50)},
		{ID: "3", Code: "103", Brand: "ليبتون", Name: "شاي تلقيمة", Unit: "كرتون"},
		{ID: "4", Code: "201", Brand: "المراعي", Name: "حليب طويل الأجل", Unit: "كرتون", MinQuantity: f(20), MaxQuantity: f(200)},
		{ID: "5", Code: "202", Brand: "لورباك", Name: "زبدة غير مملحة", Unit: "حبة"},
		{ID: "6", Code: "301", Brand: "دو", Name: "دجاج مجمد 1000جم", Unit: "كرتون"},
		{ID: "7", Code: "302", Brand: "محلي", Name: "لحم حاشي", Unit: "كجم"},
		{ID: "8", Code: "401", Brand: "محلي", Name: "طماطم محلي", Unit: "صندوق"},
		{ID: "9", Code: "402", Brand: "محلي", Name: "بصل أحمر", Unit: "كجم"},
		{ID: "10", Code: "501", Brand: "فيري", Name: "سائل غسيل صحون", Unit: "لتر"},
	}

	sites := []site.Site{
		{ID: "site1", Name: "مشروع البحر الأحمر - المنطقة أ"},
		{ID: "site2", Name: "مشروع نيوم - سكن العمال"},
	}

	sessions := []session.Session{
		{
			ID:        "s1",
			SiteID:    "site1",
			SiteName:  "مشروع البحر الأحمر - المنطقة أ",
			StartDate: "2023-10-27",
			EndDate:   "2023-11-03",
			Status:    session.StatusSubmitted,
			Entries: map[string]session.Entry{
				"1": {ItemID: "1", Quantity: f(50)},
				"4": {ItemID: "4", Quantity: f(120)},
			},
			Items: item.SortByCode(item.CloneList(items)),
		},
	}

	return Seed{Sites: sites, Sessions: sessions, Items: item.SortByCode(items)}
}

func f(v float64) *float64 {
	return &v
}
