package soiltest

import "time"

// Record is a persisted soil test owned by a user. Every nutrient field is
// independently optional: labs report different subsets, and OCR loses more.
type Record struct {
	ID               string
	UserID           string
	Ph               *string
	Moisture         *string
	Nitrogen         *string
	Phosphorus       *string
	Potassium        *string
	OrganicMatter    *string
	OriginalFilename string
	TestedAt         time.Time
	CreatedAt        time.Time
}

// Reading is the parsed content of one soil test report, before it is given
// an identity and an owner.
type Reading struct {
	Ph            *string
	Moisture      *string
	Nitrogen      *string
	Phosphorus    *string
	Potassium     *string
	OrganicMatter *string
	TestedAt      time.Time
}
