package server

import (
	"encoding/base64"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/commentsense/internal/export"
	"github.com/spacesedan/commentsense/internal/models"
	"github.com/spacesedan/commentsense/internal/sentiment"
)

const pageTitle = "YouTube Sentiment Analysis (Telugu/English/Transliterated)"

var templateFuncs = template.FuncMap{
	"noticeClass": func(level sentiment.NoticeLevel) string {
		return "notice-" + string(level)
	},
}

type pageData struct {
	Title         string
	Comment       string
	SingleLabel   string
	SingleNotices []sentiment.Notice
	FileNotices   []sentiment.Notice
	Detail        string
	Rows          []models.ResultRow
	CSVHref       template.URL
	CSVFileName   string
}

func newPageData() pageData {
	return pageData{Title: pageTitle, CSVFileName: export.CSV_FILE_NAME}
}

// Index handles GET /
func (s *Server) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPageData())
}

// AnalyzeSinglePage handles POST /analyze/single
func (s *Server) AnalyzeSinglePage(c *gin.Context) {
	data := newPageData()
	data.Comment = c.PostForm("comment")

	out := s.reconciler.Reconcile(c.Request.Context(), sentiment.NewSingleBatch(data.Comment), sentiment.ModeSingle)
	if label, ok := out.Label(); ok {
		data.SingleLabel = label
	}
	data.SingleNotices = out.Notices
	data.Detail = string(out.Detail)

	c.HTML(http.StatusOK, "index.html", data)
}

// AnalyzeFilePage handles POST /analyze/file
func (s *Server) AnalyzeFilePage(c *gin.Context) {
	data := newPageData()

	batch, err := s.readUpload(c)
	if err != nil {
		data.FileNotices = []sentiment.Notice{{Level: sentiment.NoticeError, Message: err.Error()}}
		c.HTML(http.StatusBadRequest, "index.html", data)
		return
	}

	out := s.reconciler.Reconcile(c.Request.Context(), batch, sentiment.ModeBatch)
	data.FileNotices = out.Notices
	data.Detail = string(out.Detail)
	data.Rows = out.Rows

	if len(out.Rows) > 0 {
		csvData, err := export.EncodeCSV(out.Rows)
		if err != nil {
			slog.Error("[Server] Failed to encode csv", slog.String("error", err.Error()))
		} else {
			data.CSVHref = template.URL("data:" + export.CSV_MIME_TYPE + ";charset=utf-8;base64," +
				base64.StdEncoding.EncodeToString(csvData))
		}
	}

	c.HTML(http.StatusOK, "index.html", data)
}
