package models

const (
	FAILED_REQUEST_LABEL  = "Analysis Failed (API Request Error)"
	FAILED_RESPONSE_LABEL = "Analysis Failed (API Response Error)"
)

// ResultRow pairs one input comment with its display label or a failure marker.
type ResultRow struct {
	Comment   string `json:"comment"`
	Sentiment string `json:"sentiment"`
}

// IsFailure reports whether the row carries one of the reserved failure markers.
func (r ResultRow) IsFailure() bool {
	return r.Sentiment == FAILED_REQUEST_LABEL || r.Sentiment == FAILED_RESPONSE_LABEL
}
