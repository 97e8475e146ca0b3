package sentiment

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

const (
	VADER_POSITIVE_THRESHOLD = 0.20
	VADER_NEGATIVE_THRESHOLD = -0.20
)

var (
	markdownLinkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern          = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTagPattern      = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
)

// VaderClassifier labels comments locally with VADER. It only understands
// English; Telugu script scores as Neutral.
type VaderClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderClassifier() *VaderClassifier {
	return &VaderClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderClassifier) Classify(ctx context.Context, comments []string) ([]string, error) {
	labels := make([]string, 0, len(comments))
	for _, comment := range comments {
		if err := ctx.Err(); err != nil {
			return nil, &TransportError{Err: err}
		}
		_, label := v.Score(comment)
		labels = append(labels, label)
	}
	return labels, nil
}

// Score returns the compound score and display label of text.
func (v *VaderClassifier) Score(text string) (float64, string) {
	plainText := ConvertMarkdownToText(text)

	score := v.analyzer.PolarityScores(plainText).Compound

	switch {
	case score >= VADER_POSITIVE_THRESHOLD:
		return score, LABEL_POSITIVE
	case score <= VADER_NEGATIVE_THRESHOLD:
		return score, LABEL_NEGATIVE
	default:
		return score, LABEL_NEUTRAL
	}
}

func RemoveLinks(input string) string {
	input = markdownLinkPattern.ReplaceAllString(input, "$1")
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown, drops the markup and links, and
// collapses whitespace. Only real tags are stripped, so text such as "<3"
// survives, and entities are decoded back to the characters VADER scores.
func ConvertMarkdownToText(input string) string {
	input = RemoveLinks(input)
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := htmlTagPattern.ReplaceAllString(string(output), " ")
	plainText = html.UnescapeString(plainText)

	return strings.Join(strings.Fields(plainText), " ")
}
