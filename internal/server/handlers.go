package server

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"manuscript-tracker/internal/api"
	"manuscript-tracker/internal/domain"
	apperrors "manuscript-tracker/internal/errors"
	"manuscript-tracker/internal/render"
)

type statusRequest struct {
	Status string `json:"status"`
}

type wordsRequest struct {
	WordCount *int `json:"word_count"`
}

type feedbackRequest struct {
	Date     string `json:"date"`
	Reviewer string `json:"reviewer"`
	Feedback string `json:"feedback"`
	Action   string `json:"action"`
}

func (s *Server) health(c *gin.Context) {
	success(c, http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getReport(c *gin.Context) {
	report, err := s.reports.BuildReport(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, report)
}

func (s *Server) getReportMarkdown(c *gin.Context) {
	report, err := s.reports.BuildReport(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := render.Markdown(&buf, report, render.Options{DateFormat: s.opts.DateFormat}); err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", buf.Bytes())
}

func (s *Server) listChapters(c *gin.Context) {
	chapters, err := s.api.ListChapters(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, chapters)
}

func (s *Server) setChapterStatus(c *gin.Context) {
	ordinal, err := ordinalParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperrors.NewInvalidArgumentError("body", "", err.Error()))
		return
	}
	status, err := domain.ParseChapterStatus(req.Status)
	if err != nil {
		fail(c, apperrors.NewInvalidArgumentError("status", req.Status, err.Error()))
		return
	}

	update, err := s.api.SetChapterStatus(c.Request.Context(), ordinal, status)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, updateResponse(update))
}

func (s *Server) setWordCount(c *gin.Context) {
	ordinal, err := ordinalParam(c)
	if err != nil {
		fail(c, err)
		return
	}
	var req wordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperrors.NewInvalidArgumentError("body", "", err.Error()))
		return
	}
	if req.WordCount == nil {
		fail(c, apperrors.NewInvalidArgumentError("word_count", nil, "word_count is required"))
		return
	}

	update, err := s.api.SetWordCount(c.Request.Context(), ordinal, *req.WordCount)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, updateResponse(update))
}

func (s *Server) listTasks(c *gin.Context) {
	filter := api.TaskFilter{OpenOnly: queryBool(c, "open")}
	if raw := c.Query("chapter"); raw != "" {
		ordinal, err := strconv.Atoi(raw)
		if err != nil {
			fail(c, apperrors.NewInvalidArgumentError("chapter", raw, "must be an integer"))
			return
		}
		filter.Chapter = &ordinal
	}
	filter.GlobalOnly = queryBool(c, "global")

	tasks, err := s.api.ListTasks(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, tasks)
}

func (s *Server) toggleTask(c *gin.Context) {
	task, err := s.api.ToggleTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, task)
}

func (s *Server) listFeedback(c *gin.Context) {
	entries, err := s.api.ListFeedback(c.Request.Context(), queryBool(c, "open"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusOK, entries)
}

func (s *Server) addFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperrors.NewInvalidArgumentError("body", "", err.Error()))
		return
	}

	entry := domain.FeedbackEntry{
		Reviewer: req.Reviewer,
		Feedback: req.Feedback,
		Action:   req.Action,
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			fail(c, apperrors.NewInvalidArgumentError("date", req.Date, "date must be YYYY-MM-DD"))
			return
		}
		entry.Date = date
	}

	created, err := s.api.AddFeedbackEntry(c.Request.Context(), entry)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, http.StatusCreated, created)
}

func ordinalParam(c *gin.Context) (int, error) {
	raw := c.Param("ordinal")
	ordinal, err := strconv.Atoi(raw)
	if err != nil || ordinal < 0 {
		return 0, apperrors.NewInvalidArgumentError("ordinal", raw, "ordinal must be a non-negative integer")
	}
	return ordinal, nil
}

func queryBool(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && v
}

type chapterUpdateResponse struct {
	Chapter   domain.Chapter `json:"chapter"`
	Changed   bool           `json:"changed"`
	Regressed bool           `json:"regressed"`
}

func updateResponse(update *api.ChapterUpdate) chapterUpdateResponse {
	return chapterUpdateResponse{
		Chapter:   update.Chapter,
		Changed:   update.Changed,
		Regressed: update.Regressed(),
	}
}
