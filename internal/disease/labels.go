package disease

import "strings"

// diseaseDetails carries curated guidance for known labels. Labels without an
// entry fall back to generic field-hygiene advice.
var diseaseDetails = map[string]Diagnosis{
	"Apple___Apple_scab": {
		Disease:     "Apple Scab",
		Description: "A serious disease of apples and ornamental crabapples caused by the fungus Venturia inaequalis.",
		Treatment:   "Apply protective fungicides early in the season. Start applications at green tip and continue at 7-10 day intervals.",
		PreventiveMeasures: []string{
			"Plant resistant varieties",
			"Remove and destroy fallen leaves",
			"Ensure good air circulation through pruning",
			"Avoid overhead irrigation",
		},
	},
	"Potato___Late_blight": {
		Disease:     "Late Blight",
		Description: "A destructive disease of potato and tomato caused by the oomycete Phytophthora infestans.",
		Treatment:   "Remove infected plants immediately and apply a copper-based or systemic fungicide to the remaining crop.",
		PreventiveMeasures: []string{
			"Use certified disease-free seed tubers",
			"Destroy cull piles and volunteer plants",
			"Avoid overhead irrigation late in the day",
			"Hill soil well around plants",
		},
	},
	"Rice___Bacterial_leaf_blight": {
		Disease:     "Bacterial Leaf Blight",
		Description: "A bacterial disease of rice caused by Xanthomonas oryzae that yellows and dries leaf blades.",
		Treatment:   "Drain the field, avoid excess nitrogen, and apply a recommended bactericide where available.",
		PreventiveMeasures: []string{
			"Plant resistant varieties",
			"Use balanced fertilization",
			"Maintain shallow, intermittent irrigation",
			"Remove infected stubble after harvest",
		},
	},
}

// detailsFor resolves a raw model label to user-facing guidance.
func detailsFor(label string) Diagnosis {
	if d, ok := diseaseDetails[label]; ok {
		return d
	}
	return Diagnosis{
		Disease:     FormatLabel(label),
		Description: "Specific details not available for this disease.",
		Treatment:   "Consult a local agricultural expert for specific treatment recommendations.",
		PreventiveMeasures: []string{
			"Practice crop rotation",
			"Maintain proper plant spacing",
			"Keep the field clean",
			"Monitor plants regularly",
		},
	}
}

// FormatLabel turns a raw model label like "Tomato___Early_blight" into a
// display name like "Early Blight". Labels carry the crop before a triple
// underscore; only the disease part is shown.
func FormatLabel(label string) string {
	parts := strings.Split(label, "___")
	name := parts[len(parts)-1]
	name = strings.ReplaceAll(name, "_", " ")

	words := strings.Fields(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
