package server

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/commentsense/internal/export"
	"github.com/spacesedan/commentsense/internal/models"
	"github.com/spacesedan/commentsense/internal/sentiment"
)

// AnalyzeRequest carries either one comment or a list of comments.
type AnalyzeRequest struct {
	Comment  *string  `json:"comment"`
	Comments []string `json:"comments"`
}

type AnalyzeResponse struct {
	Outcome sentiment.OutcomeKind `json:"outcome"`
	Mode    sentiment.Mode        `json:"mode"`
	Label   string                `json:"label,omitempty"`
	Rows    []models.ResultRow    `json:"rows"`
	Notices []sentiment.Notice    `json:"notices"`
	Detail  json.RawMessage       `json:"detail,omitempty"`
}

// AnalyzeJSON handles POST /api/v1/sentiment
func (s *Server) AnalyzeJSON(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	var (
		batch sentiment.CommentBatch
		mode  sentiment.Mode
	)
	switch {
	case req.Comments != nil:
		batch, mode = sentiment.BatchFromLines(req.Comments), sentiment.ModeBatch
	case req.Comment != nil:
		batch, mode = sentiment.NewSingleBatch(*req.Comment), sentiment.ModeSingle
	default:
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "one of comment or comments is required")
		return
	}

	out := s.reconciler.Reconcile(c.Request.Context(), batch, mode)
	respondOutcome(c, out)
}

// AnalyzeFileJSON handles POST /api/v1/sentiment/file
// With ?format=csv the rows are returned as a CSV attachment.
func (s *Server) AnalyzeFileJSON(c *gin.Context) {
	batch, err := s.readUpload(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_UPLOAD", err.Error())
		return
	}

	out := s.reconciler.Reconcile(c.Request.Context(), batch, sentiment.ModeBatch)

	if c.Query("format") == "csv" && len(out.Rows) > 0 {
		data, err := export.EncodeCSV(out.Rows)
		if err != nil {
			respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+export.CSV_FILE_NAME+`"`)
		c.Data(http.StatusOK, export.CSV_MIME_TYPE+"; charset=utf-8", data)
		return
	}

	respondOutcome(c, out)
}

func toAnalyzeResponse(out sentiment.Outcome) AnalyzeResponse {
	resp := AnalyzeResponse{
		Outcome: out.Kind,
		Mode:    out.Mode,
		Rows:    out.Rows,
		Notices: out.Notices,
		Detail:  out.Detail,
	}
	if resp.Rows == nil {
		resp.Rows = []models.ResultRow{}
	}
	if resp.Notices == nil {
		resp.Notices = []sentiment.Notice{}
	}
	if label, ok := out.Label(); ok && out.Mode == sentiment.ModeSingle {
		resp.Label = label
	}
	return resp
}

// respondOutcome maps an outcome onto a status. Batch failures that still
// carry marker rows are delivered as 200 so the rows can be shown.
func respondOutcome(c *gin.Context, out sentiment.Outcome) {
	data := toAnalyzeResponse(out)

	switch out.Kind {
	case sentiment.OutcomeSuccess:
		respondSuccess(c, http.StatusOK, data)
	case sentiment.OutcomeEmptyInput:
		respondErrorWithData(c, http.StatusBadRequest, "EMPTY_INPUT", noticeMessage(out), data)
	case sentiment.OutcomeValidationRejected:
		respondErrorWithData(c, http.StatusUnprocessableEntity, "VALIDATION_REJECTED", errMessage(out), data)
	default:
		if len(out.Rows) > 0 {
			respondSuccess(c, http.StatusOK, data)
			return
		}
		code := "API_REQUEST_ERROR"
		if out.Kind == sentiment.OutcomeShapeMismatch {
			code = "API_RESPONSE_ERROR"
		}
		respondErrorWithData(c, http.StatusBadGateway, code, errMessage(out), data)
	}
}

func errMessage(out sentiment.Outcome) string {
	if out.Err != nil {
		return out.Err.Error()
	}
	return noticeMessage(out)
}

func noticeMessage(out sentiment.Outcome) string {
	if len(out.Notices) == 0 {
		return string(out.Kind)
	}
	return out.Notices[0].Message
}
