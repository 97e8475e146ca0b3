package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/commentsense/internal/models"
)

// Classifier labels comments. The returned slice should align index for
// index with comments; Reconciler verifies that it does.
type Classifier interface {
	Classify(ctx context.Context, comments []string) ([]string, error)
}

type Mode string

const (
	ModeSingle Mode = "single"
	ModeBatch  Mode = "batch"
)

type OutcomeKind string

const (
	OutcomeSuccess            OutcomeKind = "success"
	OutcomeValidationRejected OutcomeKind = "validation_rejected"
	OutcomeTransportFailure   OutcomeKind = "transport_failure"
	OutcomeShapeMismatch      OutcomeKind = "shape_mismatch"
	OutcomeEmptyInput         OutcomeKind = "empty_input"
)

// Outcome is the result of one reconciliation.
type Outcome struct {
	Kind OutcomeKind
	Mode Mode
	// Rows is aligned with the input batch, except for validation
	// rejections, empty input and failed single-comment requests, which
	// carry no rows.
	Rows []models.ResultRow
	Err  error
	// Detail is the 422 body when it parsed as JSON.
	Detail  json.RawMessage
	Notices []Notice
}

func (o Outcome) OK() bool { return o.Kind == OutcomeSuccess }

// Label returns the display label of a successful single-comment outcome.
func (o Outcome) Label() (string, bool) {
	if o.Kind != OutcomeSuccess || len(o.Rows) == 0 {
		return "", false
	}
	return o.Rows[0].Sentiment, true
}

type Reconciler struct {
	classifier Classifier
	labels     LabelMapping
	notifier   Notifier
}

type Option func(*Reconciler)

func WithLabelMapping(m LabelMapping) Option {
	return func(r *Reconciler) { r.labels = m }
}

func WithNotifier(n Notifier) Option {
	return func(r *Reconciler) { r.notifier = n }
}

func NewReconciler(classifier Classifier, opts ...Option) *Reconciler {
	r := &Reconciler{
		classifier: classifier,
		labels:     DefaultLabelMapping(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile sends the whole batch in one classifier call and maps the answer
// back onto the comments. It never returns an error: every failure is
// described by the Outcome.
func (r *Reconciler) Reconcile(ctx context.Context, batch CommentBatch, mode Mode) Outcome {
	rec := &recorder{ctx: ctx, notifier: r.notifier}
	out := r.reconcile(ctx, batch, mode, rec)
	out.Mode = mode
	out.Notices = rec.notices
	return out
}

func (r *Reconciler) reconcile(ctx context.Context, batch CommentBatch, mode Mode, rec *recorder) Outcome {
	if batch.IsEmpty() {
		if mode == ModeSingle {
			rec.warn("Please enter a comment.")
		} else {
			rec.warn("The uploaded file is empty or contains only blank lines.")
		}
		return Outcome{Kind: OutcomeEmptyInput}
	}

	if mode == ModeBatch {
		rec.info(fmt.Sprintf("Analyzing %d comments...", len(batch)))
		rec.progress("Calling API with batch...")
	}

	start := time.Now()
	raw, err := r.classifier.Classify(ctx, []string(batch))
	if err != nil {
		slog.Warn("[Reconciler] Classifier call failed",
			slog.String("mode", string(mode)),
			slog.Int("comments", len(batch)),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return r.failed(batch, mode, err, rec)
	}

	if len(raw) != len(batch) {
		shapeErr := &ShapeError{
			Reason: fmt.Sprintf("expected %d labels, got %d", len(batch), len(raw)),
		}
		if mode == ModeSingle {
			if len(raw) == 0 {
				rec.warn("API returned empty results list.")
			} else {
				rec.warn(fmt.Sprintf("API returned unexpected format for single result: %d labels", len(raw)))
			}
			return Outcome{Kind: OutcomeShapeMismatch, Err: shapeErr}
		}
		rec.fail(fmt.Sprintf("Batch analysis failed: API returned unexpected response format or count. Expected list of %d items, got %d.",
			len(batch), len(raw)))
		return Outcome{
			Kind: OutcomeShapeMismatch,
			Rows: markAll(batch, models.FAILED_RESPONSE_LABEL),
			Err:  shapeErr,
		}
	}

	if mode == ModeBatch {
		rec.progress("Processing results...")
	}
	rows := make([]models.ResultRow, len(batch))
	for i, comment := range batch {
		rows[i] = models.ResultRow{
			Comment:   comment,
			Sentiment: r.labels.Resolve(raw[i]),
		}
		if mode == ModeBatch {
			rec.progress(fmt.Sprintf("Processed %d/%d comments.", i+1, len(batch)))
		}
	}
	if mode == ModeBatch {
		rec.info("Batch Analysis Complete!")
	}

	slog.Info("[Reconciler] Reconciled batch",
		slog.String("mode", string(mode)),
		slog.Int("comments", len(batch)),
		slog.Duration("elapsed", time.Since(start)))

	return Outcome{Kind: OutcomeSuccess, Rows: rows}
}

func (r *Reconciler) failed(batch CommentBatch, mode Mode, err error, rec *recorder) Outcome {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		rec.fail(validationErr.Error() + ".")
		detail := validationErr.DetailJSON()
		if detail == nil {
			rec.fail(fmt.Sprintf("API returned %d but response body is not valid JSON: %s",
				validationErr.StatusCode, string(validationErr.Detail)))
		}
		return Outcome{Kind: OutcomeValidationRejected, Err: err, Detail: detail}
	}

	var shapeErr *ShapeError
	if errors.As(err, &shapeErr) {
		rec.warn(shapeErr.Error())
		out := Outcome{Kind: OutcomeShapeMismatch, Err: err}
		if mode == ModeBatch {
			rec.fail("Batch analysis failed: API returned unexpected response format or count.")
			out.Rows = markAll(batch, models.FAILED_RESPONSE_LABEL)
		}
		return out
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		rec.fail(transportErr.Error())
		if transportErr.StatusCode != 0 {
			rec.fail(fmt.Sprintf("Status Code: %d", transportErr.StatusCode))
		}
		if len(transportErr.Body) > 0 {
			rec.fail("Response body: " + string(transportErr.Body))
		}
	} else {
		rec.fail(fmt.Sprintf("An unexpected error occurred during the API call: %v", err))
	}

	out := Outcome{Kind: OutcomeTransportFailure, Err: err}
	if mode == ModeBatch {
		rec.fail("Batch analysis API request failed.")
		out.Rows = markAll(batch, models.FAILED_REQUEST_LABEL)
	}
	return out
}

func markAll(batch CommentBatch, marker string) []models.ResultRow {
	rows := make([]models.ResultRow, len(batch))
	for i, comment := range batch {
		rows[i] = models.ResultRow{Comment: comment, Sentiment: marker}
	}
	return rows
}

type recorder struct {
	ctx      context.Context
	notifier Notifier
	notices  []Notice
}

func (r *recorder) add(level NoticeLevel, msg string) {
	n := Notice{Level: level, Message: msg}
	r.notices = append(r.notices, n)
	if r.notifier != nil {
		r.notifier.Notify(r.ctx, n)
	}
}

func (r *recorder) info(msg string) { r.add(NoticeInfo, msg) }
func (r *recorder) progress(msg string) { r.add(NoticeProgress, msg) }
func (r *recorder) warn(msg string) { r.add(NoticeWarning, msg) }
func (r *recorder) fail(msg string) { r.add(NoticeError, msg) }
