package soiltest

// SoilData is the wire shape of one soil test reading. Fields that the
// parser could not find serialize as explicit nulls.
type SoilData struct {
	Ph            *string `json:"ph"`
	Moisture      *string `json:"moisture"`
	Nitrogen      *string `json:"nitrogen"`
	Phosphorus    *string `json:"phosphorus"`
	Potassium     *string `json:"potassium"`
	OrganicMatter *string `json:"organicMatter"`
	LastTested    string  `json:"lastTested"`
}

// UploadResponse is returned after a successful ingestion.
type UploadResponse struct {
	Message  string   `json:"message"`
	SoilData SoilData `json:"soilData"`
	ID       string   `json:"id"`
}

func toSoilData(rec Record) SoilData {
	return SoilData{
		Ph:            rec.Ph,
		Moisture:      rec.Moisture,
		Nitrogen:      rec.Nitrogen,
		Phosphorus:    rec.Phosphorus,
		Potassium:     rec.Potassium,
		OrganicMatter: rec.OrganicMatter,
		LastTested:    rec.TestedAt.Format("2006-01-02"),
	}
}
