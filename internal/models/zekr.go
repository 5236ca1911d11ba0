package models

// Zekr is one item of the static reference catalogue, loaded from CSV at
// process start.
type Zekr struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}
