package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"hydration-tracker/internal/export"
	"hydration-tracker/internal/ledger"
	"hydration-tracker/internal/logger"
	"hydration-tracker/internal/model"
	"hydration-tracker/internal/web"

	"github.com/gin-gonic/gin"
)

// TrackerHandler serves the tracker page and the ledger endpoints it calls.
type TrackerHandler struct {
	ledger *ledger.Ledger
	tmpl   *web.Templates
}

func NewTrackerHandler(l *ledger.Ledger, tmpl *web.Templates) *TrackerHandler {
	return &TrackerHandler{ledger: l, tmpl: tmpl}
}

type noticeView struct {
	Kind    ledger.NoticeKind `json:"kind,omitempty"`
	Percent int               `json:"percent,omitempty"`
	Title   string            `json:"title"`
	Message string            `json:"message"`
}

func viewOf(n ledger.Notice) *noticeView {
	return &noticeView{Kind: n.Kind, Percent: n.Percent, Title: n.Title(), Message: n.Message()}
}

type ledgerResponse struct {
	Ledger   model.DailyLedger `json:"ledger"`
	Progress ledger.Progress   `json:"progress"`
	Notice   *noticeView       `json:"notice,omitempty"`
	Updated  *bool             `json:"updated,omitempty"`
}

// respond writes the current ledger state, optionally with a notice.
func (h *TrackerHandler) respond(c *gin.Context, n *noticeView, updated *bool) {
	s, err := h.ledger.Snapshot()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ledgerResponse{
		Ledger:   s,
		Progress: ledger.NewProgress(s.Total, s.Goal),
		Notice:   n,
		Updated:  updated,
	})
}

func (h *TrackerHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{
			"title": "Invalid Amount",
			"error": fmt.Sprintf("Please enter a valid amount between 1-%dml", ledger.MaxCustom),
		})
	case errors.Is(err, ledger.ErrUnknownPreset):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("ledger operation failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"title": "Storage Error", "error": err.Error()})
	}
}

// GET /
func (h *TrackerHandler) Page(c *gin.Context) {
	s, err := h.ledger.Snapshot()
	if err != nil {
		logger.Error("render page failed", "err", err)
		c.String(http.StatusInternalServerError, "ledger unavailable: %v", err)
		return
	}
	var buf bytes.Buffer
	if err := h.tmpl.Render(&buf, web.NewPage(s)); err != nil {
		logger.Error("render page failed", "err", err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// GET /api/ledger
func (h *TrackerHandler) State(c *gin.Context) {
	h.respond(c, nil, nil)
}

// POST /api/ledger/intake  body: {"amount":300}
func (h *TrackerHandler) AddCustom(c *gin.Context) {
	var req model.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	n, err := h.ledger.AddCustom(req.Amount)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, viewOf(n), nil)
}

// POST /api/ledger/intake/:preset
func (h *TrackerHandler) AddPreset(c *gin.Context) {
	n, err := h.ledger.AddPreset(c.Param("preset"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, viewOf(n), nil)
}

// PUT /api/ledger/goal  body: {"goal":2500}
func (h *TrackerHandler) UpdateGoal(c *gin.Context) {
	var req model.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	updated, err := h.ledger.UpdateGoal(req.Goal)
	if err != nil {
		h.fail(c, err)
		return
	}
	var n *noticeView
	if updated {
		n = &noticeView{Title: "Goal Updated", Message: fmt.Sprintf("Daily goal set to %dml", req.Goal)}
	}
	h.respond(c, n, &updated)
}

// POST /api/ledger/reset
func (h *TrackerHandler) Reset(c *gin.Context) {
	if err := h.ledger.ResetDay(); err != nil {
		h.fail(c, err)
		return
	}
	h.respond(c, &noticeView{Title: "Day Reset", Message: "Your daily intake has been reset to 0ml"}, nil)
}

// GET /api/ledger/export
func (h *TrackerHandler) Export(c *gin.Context) {
	s, err := h.ledger.Snapshot()
	if err != nil {
		h.fail(c, err)
		return
	}
	var buf bytes.Buffer
	if err := export.Write(&buf, s); err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="hydration-today.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
