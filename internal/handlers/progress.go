package handlers

import (
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/requestdata"
  "github.com/yungbote/neuroplan-backend/internal/services"
)

type ProgressHandler struct {
  log             *logger.Logger
  progressService services.ProgressService
}

func NewProgressHandler(log *logger.Logger, progressService services.ProgressService) *ProgressHandler {
  return &ProgressHandler{
    log:             log.With("handler", "ProgressHandler"),
    progressService: progressService,
  }
}

func (h *ProgressHandler) RecordProgress(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  planID, err := uuid.Parse(c.Param("planId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  dayIndex, err := strconv.Atoi(c.Param("dayIndex"))
  if err != nil || dayIndex < 0 || dayIndex > 4 {
    RespondError(c, http.StatusBadRequest, "invalid_day_index", err)
    return
  }

  // notes and evidence are optional
  var req struct {
    EngagementNotes string         `json:"engagement_notes"`
    Evidence        map[string]any `json:"evidence"`
  }
  if c.Request.ContentLength > 0 {
    if err := c.ShouldBindJSON(&req); err != nil {
      RespondError(c, http.StatusBadRequest, "invalid_body", err)
      return
    }
  }

  row, err := h.progressService.RecordProgress(c.Request.Context(), rd.UserID, planID, dayIndex, req.EngagementNotes, req.Evidence)
  if err != nil {
    h.log.Error("RecordProgress failed", "error", err, "user_id", rd.UserID, "plan_id", planID)
    RespondServiceError(c, err)
    return
  }
  RespondCreated(c, gin.H{"progress": row})
}

func (h *ProgressHandler) ListProgress(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  planID, err := uuid.Parse(c.Param("planId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }

  rows, err := h.progressService.GetProgressForPlan(c.Request.Context(), rd.UserID, planID)
  if err != nil {
    h.log.Error("ListProgress failed", "error", err, "user_id", rd.UserID, "plan_id", planID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"progress": rows})
}
