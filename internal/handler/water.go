package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"hydration-tracker/internal/logger"
	"hydration-tracker/internal/model"
	"hydration-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

type WaterHandler struct{ svc *service.WaterService }

func NewWaterHandler(svc *service.WaterService) *WaterHandler { return &WaterHandler{svc: svc} }

// Layouts accepted for an explicit record timestamp.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	var err error
	for _, layout := range timestampLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// decodeTimestamp reads an optional timestamp given as a string or as Unix
// milliseconds. Absent, null and "" mean none.
func decodeTimestamp(raw json.RawMessage) (*time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		if s == "" {
			return nil, nil
		}
		t, err := parseTimestamp(s)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	var ms float64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return nil, err
	}
	t := time.UnixMilli(int64(ms))
	return &t, nil
}

// POST /api/water  body: {"capacity":250,"timestamp":"..." | 1700000000000}
func (h *WaterHandler) Create(c *gin.Context) {
	var req model.AppendWaterRequest
	// An empty body carries no fields; it falls through to the capacity check.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	ts, err := decodeTimestamp(req.Timestamp)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timestamp"})
		return
	}

	rec, err := h.svc.Append(c.Request.Context(), req.Capacity, ts)
	if errors.Is(err, service.ErrMissingField) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Capacity is required"})
		return
	}
	if err != nil {
		logger.Error("water.append failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	logger.Info("water.append", "id", rec.ID, "capacity", rec.Capacity)
	c.JSON(http.StatusCreated, rec)
}

// GET /api/water
func (h *WaterHandler) List(c *gin.Context) {
	recs, err := h.svc.List(c.Request.Context())
	if err != nil {
		logger.Error("water.list failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if recs == nil {
		recs = []model.WaterIntake{}
	}
	c.JSON(http.StatusOK, recs)
}

// GET /
func (h *WaterHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "Water Tracker Backend is running!")
}
