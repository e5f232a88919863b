package site

// Site represents one physical location that gets counted periodically.
type Site struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
