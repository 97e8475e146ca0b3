package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelMapping_Resolve(t *testing.T) {
	m := DefaultLabelMapping()

	tests := []struct {
		raw  string
		want string
	}{
		{"LABEL_0", "Negative"},
		{"LABEL_1", "Neutral"},
		{"LABEL_2", "Positive"},
		{"Positive", "Positive"},
		{"Neutral", "Neutral"},
		{"Negative", "Negative"},
		{"Happy", "Happy"},
		{"LABEL_3", "LABEL_3"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Resolve(tt.raw))
		})
	}
}

func TestLabelMapping_EveryMappedLabelResolvesToItsValue(t *testing.T) {
	m := DefaultLabelMapping()
	for raw, display := range m {
		assert.Equal(t, display, m.Resolve(raw))
	}
}

func TestLabelMapping_NilPassesThrough(t *testing.T) {
	var m LabelMapping
	assert.Equal(t, "LABEL_2", m.Resolve("LABEL_2"))
}
