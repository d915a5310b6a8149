package models

// ContestTimeLayout is the fixed format of contest start/end timestamps
const ContestTimeLayout = "2006-01-02 15:04:05"

// Contest is a contest record from the flat-file store. Records are
// partitioned at read time into live and expired by comparing EndDate to the
// current time.
type Contest struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}
