package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/requestdata"
  "github.com/yungbote/neuroplan-backend/internal/services"
  "github.com/yungbote/neuroplan-backend/internal/types"
)

type ChildHandler struct {
  log          *logger.Logger
  childService services.ChildService
}

func NewChildHandler(log *logger.Logger, childService services.ChildService) *ChildHandler {
  return &ChildHandler{
    log:          log.With("handler", "ChildHandler"),
    childService: childService,
  }
}

func (h *ChildHandler) CreateChild(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }

  var req struct {
    FirstName       string `json:"first_name" binding:"required"`
    AgeYears        *int   `json:"age_years"`
    Neurotype       string `json:"neurotype"`
    Interests       string `json:"interests"`
    LearningContext string `json:"learning_context"`
    State           string `json:"state"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }

  child := &types.Child{
    FirstName:       req.FirstName,
    AgeYears:        req.AgeYears,
    Neurotype:       req.Neurotype,
    Interests:       req.Interests,
    LearningContext: req.LearningContext,
    State:           req.State,
  }
  created, err := h.childService.CreateChild(c.Request.Context(), rd.UserID, child)
  if err != nil {
    h.log.Error("CreateChild failed", "error", err, "user_id", rd.UserID)
    RespondError(c, http.StatusBadRequest, "create_child_failed", err)
    return
  }
  RespondCreated(c, gin.H{"child": created})
}

func (h *ChildHandler) ListChildren(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  children, err := h.childService.GetChildren(c.Request.Context(), rd.UserID)
  if err != nil {
    h.log.Error("ListChildren failed", "error", err, "user_id", rd.UserID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"children": children})
}

func (h *ChildHandler) UpdateChild(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  childID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }

  var update services.ChildUpdate
  if err := c.ShouldBindJSON(&update); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }

  child, err := h.childService.UpdateChild(c.Request.Context(), rd.UserID, childID, update)
  if err != nil {
    h.log.Error("UpdateChild failed", "error", err, "user_id", rd.UserID, "child_id", childID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"child": child})
}

func (h *ChildHandler) DeleteChild(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  childID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }

  if err := h.childService.DeleteChild(c.Request.Context(), rd.UserID, childID); err != nil {
    h.log.Error("DeleteChild failed", "error", err, "user_id", rd.UserID, "child_id", childID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}
