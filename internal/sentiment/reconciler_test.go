package sentiment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/commentsense/internal/models"
)

type stubClassifier struct {
	labels []string
	err    error
	calls  int
	got    []string
}

func (s *stubClassifier) Classify(_ context.Context, comments []string) ([]string, error) {
	s.calls++
	s.got = append([]string(nil), comments...)
	return s.labels, s.err
}

func sentiments(rows []models.ResultRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Sentiment
	}
	return out
}

func comments(rows []models.ResultRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Comment
	}
	return out
}

func TestReconcile_SuccessPreservesOrderAndMapsLabels(t *testing.T) {
	batch := CommentBatch{"బాగుంది", "worst", "ok ok", "so happy"}
	stub := &stubClassifier{labels: []string{"LABEL_2", "LABEL_0", "LABEL_1", "Happy"}}

	out := NewReconciler(stub).Reconcile(context.Background(), batch, ModeBatch)

	require.Equal(t, OutcomeSuccess, out.Kind)
	assert.True(t, out.OK())
	assert.NoError(t, out.Err)
	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, []string(batch), stub.got)
	assert.Equal(t, []string(batch), comments(out.Rows))
	assert.Equal(t, []string{"Positive", "Negative", "Neutral", "Happy"}, sentiments(out.Rows))
}

func TestReconcile_SuccessLengthProperty(t *testing.T) {
	for n := 1; n <= 20; n++ {
		batch := make(CommentBatch, n)
		labels := make([]string, n)
		for i := range batch {
			batch[i] = fmt.Sprintf("comment %d", i)
			labels[i] = fmt.Sprintf("LABEL_%d", i%3)
		}

		out := NewReconciler(&stubClassifier{labels: labels}).Reconcile(context.Background(), batch, ModeBatch)

		require.Equal(t, OutcomeSuccess, out.Kind)
		require.Len(t, out.Rows, n)
		assert.Equal(t, []string(batch), comments(out.Rows))
	}
}

func TestReconcile_SingleSuccess(t *testing.T) {
	out := NewReconciler(&stubClassifier{labels: []string{"LABEL_2"}}).
		Reconcile(context.Background(), NewSingleBatch("  bagundi  "), ModeSingle)

	label, ok := out.Label()
	require.True(t, ok)
	assert.Equal(t, "Positive", label)
	assert.Equal(t, "bagundi", out.Rows[0].Comment)
	assert.Empty(t, out.Notices)
}

func TestReconcile_CustomLabelMapping(t *testing.T) {
	r := NewReconciler(&stubClassifier{labels: []string{"pos"}},
		WithLabelMapping(LabelMapping{"pos": "Positive"}))

	out := r.Reconcile(context.Background(), CommentBatch{"x"}, ModeBatch)
	assert.Equal(t, []string{"Positive"}, sentiments(out.Rows))
}

func TestReconcile_EmptyBatchNeverCallsClassifier(t *testing.T) {
	for _, mode := range []Mode{ModeSingle, ModeBatch} {
		t.Run(string(mode), func(t *testing.T) {
			stub := &stubClassifier{}

			out := NewReconciler(stub).Reconcile(context.Background(), CommentBatch{}, mode)

			assert.Equal(t, OutcomeEmptyInput, out.Kind)
			assert.Equal(t, 0, stub.calls)
			assert.Empty(t, out.Rows)
			assert.NoError(t, out.Err)
			require.Len(t, out.Notices, 1)
			assert.Equal(t, NoticeWarning, out.Notices[0].Level)
		})
	}
}

func TestReconcile_LengthMismatchMarksEveryRow(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
	}{
		{"too few", []string{"LABEL_2"}},
		{"too many", []string{"LABEL_2", "LABEL_0", "LABEL_1", "LABEL_1"}},
		{"empty", []string{}},
		{"nil", nil},
	}

	batch := CommentBatch{"a", "b", "c"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := NewReconciler(&stubClassifier{labels: tt.labels}).
				Reconcile(context.Background(), batch, ModeBatch)

			assert.Equal(t, OutcomeShapeMismatch, out.Kind)
			var shapeErr *ShapeError
			assert.ErrorAs(t, out.Err, &shapeErr)
			require.Len(t, out.Rows, len(batch))
			assert.Equal(t, []string(batch), comments(out.Rows))
			for _, row := range out.Rows {
				assert.Equal(t, models.FAILED_RESPONSE_LABEL, row.Sentiment)
				assert.True(t, row.IsFailure())
			}
		})
	}
}

func TestReconcile_SingleLengthMismatchProducesNoResult(t *testing.T) {
	out := NewReconciler(&stubClassifier{labels: []string{}}).
		Reconcile(context.Background(), CommentBatch{"a"}, ModeSingle)

	assert.Equal(t, OutcomeShapeMismatch, out.Kind)
	assert.Empty(t, out.Rows)
	_, ok := out.Label()
	assert.False(t, ok)
	require.NotEmpty(t, out.Notices)
	assert.Equal(t, "API returned empty results list.", out.Notices[0].Message)
}

func TestReconcile_ShapeErrorFromClassifier(t *testing.T) {
	stub := &stubClassifier{err: &ShapeError{Reason: "missing sentiments", Preview: `{"labels":[]}`}}

	out := NewReconciler(stub).Reconcile(context.Background(), CommentBatch{"a", "b"}, ModeBatch)

	assert.Equal(t, OutcomeShapeMismatch, out.Kind)
	assert.Equal(t, []string{models.FAILED_RESPONSE_LABEL, models.FAILED_RESPONSE_LABEL}, sentiments(out.Rows))
}

func TestReconcile_TransportFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"network error", &TransportError{Err: errors.New("connection refused")}},
		{"server error", &TransportError{StatusCode: 503, Body: []byte("down")}},
		{"not found", &TransportError{StatusCode: 404}},
		{"untyped error", errors.New("boom")},
		{"wrapped transport error", fmt.Errorf("calling api: %w", &TransportError{StatusCode: 500})},
	}

	batch := CommentBatch{"a", "b", "c"}
	for _, tt := range tests {
		t.Run(tt.name+"/batch", func(t *testing.T) {
			out := NewReconciler(&stubClassifier{err: tt.err}).Reconcile(context.Background(), batch, ModeBatch)

			assert.Equal(t, OutcomeTransportFailure, out.Kind)
			assert.ErrorIs(t, out.Err, tt.err)
			require.Len(t, out.Rows, len(batch))
			assert.Equal(t, []string(batch), comments(out.Rows))
			for _, row := range out.Rows {
				assert.Equal(t, models.FAILED_REQUEST_LABEL, row.Sentiment)
			}
		})

		t.Run(tt.name+"/single", func(t *testing.T) {
			out := NewReconciler(&stubClassifier{err: tt.err}).Reconcile(context.Background(), CommentBatch{"a"}, ModeSingle)

			assert.Equal(t, OutcomeTransportFailure, out.Kind)
			assert.Empty(t, out.Rows)
			assert.NotEmpty(t, out.Notices)
		})
	}
}

func TestReconcile_TransportFailureSurfacesStatusAndBody(t *testing.T) {
	stub := &stubClassifier{err: &TransportError{StatusCode: 500, Body: []byte(`{"error":"oom"}`)}}

	out := NewReconciler(stub).Reconcile(context.Background(), CommentBatch{"a"}, ModeBatch)

	var msgs []string
	for _, n := range out.Notices {
		msgs = append(msgs, n.Message)
	}
	assert.Contains(t, msgs, "Status Code: 500")
	assert.Contains(t, msgs, `Response body: {"error":"oom"}`)
	assert.Contains(t, msgs, "Batch analysis API request failed.")
}

func TestReconcile_ValidationRejectedProducesNoRows(t *testing.T) {
	detail := []byte(`{"detail":[{"loc":["body","comments"],"msg":"field required"}]}`)

	for _, mode := range []Mode{ModeSingle, ModeBatch} {
		t.Run(string(mode), func(t *testing.T) {
			stub := &stubClassifier{err: &ValidationError{StatusCode: 422, Detail: detail}}

			out := NewReconciler(stub).Reconcile(context.Background(), CommentBatch{"a", "b"}, mode)

			assert.Equal(t, OutcomeValidationRejected, out.Kind)
			assert.Empty(t, out.Rows)
			assert.JSONEq(t, string(detail), string(out.Detail))
			for _, n := range out.Notices {
				assert.NotContains(t, n.Message, "Analysis Failed")
			}
		})
	}
}

func TestReconcile_ValidationRejectedNonJSONDetail(t *testing.T) {
	stub := &stubClassifier{err: &ValidationError{StatusCode: 422, Detail: []byte("bad payload")}}

	out := NewReconciler(stub).Reconcile(context.Background(), CommentBatch{"a"}, ModeBatch)

	assert.Equal(t, OutcomeValidationRejected, out.Kind)
	assert.Nil(t, out.Detail)
	require.Len(t, out.Notices, 4)
	assert.Equal(t, "API returned 422 but response body is not valid JSON: bad payload", out.Notices[3].Message)
}

func TestReconcile_BatchProgressNotices(t *testing.T) {
	var streamed []Notice
	notifier := NotifierFunc(func(_ context.Context, n Notice) { streamed = append(streamed, n) })

	out := NewReconciler(&stubClassifier{labels: []string{"LABEL_0", "LABEL_1"}}, WithNotifier(notifier)).
		Reconcile(context.Background(), CommentBatch{"a", "b"}, ModeBatch)

	want := []Notice{
		{NoticeInfo, "Analyzing 2 comments..."},
		{NoticeProgress, "Calling API with batch..."},
		{NoticeProgress, "Processing results..."},
		{NoticeProgress, "Processed 1/2 comments."},
		{NoticeProgress, "Processed 2/2 comments."},
		{NoticeInfo, "Batch Analysis Complete!"},
	}
	assert.Equal(t, want, out.Notices)
	assert.Equal(t, want, streamed)
}
