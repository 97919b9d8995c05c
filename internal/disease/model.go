package disease

import "time"

// Diagnosis is one classifier verdict for a crop photo.
type Diagnosis struct {
	Disease            string
	Confidence         float64
	Description        string
	Treatment          string
	PreventiveMeasures []string
	Alternatives       []Alternative
}

// Alternative is a lower-ranked candidate diagnosis.
type Alternative struct {
	Disease     string  `json:"disease"`
	Probability float64 `json:"probability"`
}

// Detection is a persisted diagnosis together with the retained photo's
// storage key.
type Detection struct {
	ID                 string
	StorageKey         string
	DiseaseName        string
	Confidence         float64
	Description        string
	Treatment          string
	PreventiveMeasures []string
	CreatedAt          time.Time
}
