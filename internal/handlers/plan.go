package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/requestdata"
  "github.com/yungbote/neuroplan-backend/internal/services"
)

type PlanHandler struct {
  log            *logger.Logger
  planService    services.PlanService
  planGeneration services.PlanGenerationService
}

func NewPlanHandler(log *logger.Logger, planService services.PlanService, planGeneration services.PlanGenerationService) *PlanHandler {
  return &PlanHandler{
    log:            log.With("handler", "PlanHandler"),
    planService:    planService,
    planGeneration: planGeneration,
  }
}

// GeneratePlan kicks off individual plan generation for a child. The service
// owns the degrade policy; a 201 here can still carry degraded: true.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  childID, err := uuid.Parse(c.Param("childId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }

  // customization body is optional
  var custom *services.PlanCustomization
  if c.Request.ContentLength > 0 {
    var body services.PlanCustomization
    if err := c.ShouldBindJSON(&body); err != nil {
      RespondError(c, http.StatusBadRequest, "invalid_body", err)
      return
    }
    custom = &body
  }

  plan, err := h.planGeneration.GenerateForChild(c.Request.Context(), rd.UserID, childID, custom)
  if err != nil {
    h.log.Error("GeneratePlan failed", "error", err, "user_id", rd.UserID, "child_id", childID)
    RespondServiceError(c, err)
    return
  }
  RespondCreated(c, gin.H{"plan": plan})
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
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

  plan, err := h.planService.GetPlan(c.Request.Context(), rd.UserID, planID)
  if err != nil {
    h.log.Error("GetPlan failed", "error", err, "user_id", rd.UserID, "plan_id", planID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"plan": plan})
}

func (h *PlanHandler) ListPlansForChild(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  childID, err := uuid.Parse(c.Param("childId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }

  plans, err := h.planService.GetPlansForChild(c.Request.Context(), rd.UserID, childID)
  if err != nil {
    h.log.Error("ListPlansForChild failed", "error", err, "user_id", rd.UserID, "child_id", childID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"plans": plans})
}
