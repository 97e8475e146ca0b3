package models

// SentimentRequest is the body sent to the hosted sentiment endpoint.
type SentimentRequest struct {
	Comments []string `json:"comments"`
}

// SentimentResponse is the success body of the hosted sentiment endpoint.
// Sentiments is aligned index for index with SentimentRequest.Comments.
type SentimentResponse struct {
	Sentiments []string `json:"sentiments"`
}
