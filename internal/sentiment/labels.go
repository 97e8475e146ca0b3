package sentiment

const (
	LABEL_POSITIVE = "Positive"
	LABEL_NEUTRAL  = "Neutral"
	LABEL_NEGATIVE = "Negative"
)

// LabelMapping maps raw provider labels to display labels.
type LabelMapping map[string]string

// DefaultLabelMapping covers the index-coded classes of the hosted model as
// well as literal sentiment names.
func DefaultLabelMapping() LabelMapping {
	return LabelMapping{
		"LABEL_0":      LABEL_NEGATIVE,
		"LABEL_1":      LABEL_NEUTRAL,
		"LABEL_2":      LABEL_POSITIVE,
		LABEL_POSITIVE: LABEL_POSITIVE,
		LABEL_NEUTRAL:  LABEL_NEUTRAL,
		LABEL_NEGATIVE: LABEL_NEGATIVE,
	}
}

// Resolve returns the display label for raw. Unmapped labels pass through.
func (m LabelMapping) Resolve(raw string) string {
	if display, ok := m[raw]; ok {
		return display
	}
	return raw
}
