package item

// Item is one catalog line. Items are immutable once created: there is no
// edit operation, replacement is delete plus add.
type Item struct {
	ID    string `json:"id"`
	Code  string `json:"code"`
	Brand string `json:"brand"`
	Name  string `json:"name"`
	Unit  string `json:"unit"`
	// Admin-defined normal range. Both bounds are set together in
	// practice, though nothing enforces it.
	MinQuantity *float64 `json:"minQuantity,omitempty"`
	MaxQuantity *float64 `json:"maxQuantity,omitempty"`
}

// Clone returns a deep copy of the item.
func (i Item) Clone() Item {
	out := i
	if i.MinQuantity != nil {
		v := *i.MinQuantity
		out.MinQuantity = &v
	}
	if i.MaxQuantity != nil {
		v := *i.MaxQuantity
		out.MaxQuantity = &v
	}
	return out
}

// CloneList returns a deep copy of an item list.
func CloneList(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
