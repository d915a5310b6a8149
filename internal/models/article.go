package models

// ArticleDateLayout is the display form the authoring tool stamps on publish
const ArticleDateLayout = "Jan 02, 2006"

// Article is a standalone content record, keyed by slug. The flat-file store
// is its only writer; the web read path never mutates it.
type Article struct {
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	VideoID         string `json:"video_id"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	Date            string `json:"date"`
	PlaceholderText string `json:"placeholder_text"`
}
