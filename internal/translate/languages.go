package translate

// Language is one entry in the supported-language list shown to clients.
type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SupportedLanguages is the fixed list the frontend offers. Names carry the
// native script alongside the English label.
var SupportedLanguages = []Language{
	{Code: "en", Name: "English"},
	{Code: "hi", Name: "हिंदी (Hindi)"},
	{Code: "mr", Name: "मराठी (Marathi)"},
	{Code: "gu", Name: "ગુજરાતી (Gujarati)"},
	{Code: "bn", Name: "বাংলা (Bengali)"},
	{Code: "pa", Name: "ਪੰਜਾਬੀ (Punjabi)"},
	{Code: "ta", Name: "தமிழ் (Tamil)"},
	{Code: "te", Name: "తెలుగు (Telugu)"},
	{Code: "kn", Name: "ಕನ್ನಡ (Kannada)"},
}

var supportedCodes = func() map[string]struct{} {
	m := make(map[string]struct{}, len(SupportedLanguages))
	for _, l := range SupportedLanguages {
		m[l.Code] = struct{}{}
	}
	return m
}()

// NormalizeLanguageCode maps a requested code onto the supported set,
// defaulting to English for anything unknown.
func NormalizeLanguageCode(code string) string {
	if _, ok := supportedCodes[code]; ok {
		return code
	}
	return "en"
}
