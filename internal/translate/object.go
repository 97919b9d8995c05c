package translate

import "context"

// TranslateValue walks a decoded JSON value and translates every string leaf,
// including strings inside arrays and nested objects. Non-string leaves pass
// through unchanged, so numeric readings survive a translated API response.
func TranslateValue(ctx context.Context, tr Translator, value any, target string) (any, error) {
	switch v := value.(type) {
	case string:
		return tr.Translate(ctx, v, target)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			translated, err := TranslateValue(ctx, tr, item, target)
			if err != nil {
				return nil, err
			}
			out[i] = translated
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			translated, err := TranslateValue(ctx, tr, item, target)
			if err != nil {
				return nil, err
			}
			out[key] = translated
		}
		return out, nil
	default:
		return value, nil
	}
}
