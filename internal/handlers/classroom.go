package handlers

import (
  "fmt"
  "net/http"
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/requestdata"
  "github.com/yungbote/neuroplan-backend/internal/services"
  "github.com/yungbote/neuroplan-backend/internal/types"
)

type ClassroomHandler struct {
  log              *logger.Logger
  classroomService services.ClassroomService
}

func NewClassroomHandler(log *logger.Logger, classroomService services.ClassroomService) *ClassroomHandler {
  return &ClassroomHandler{
    log:              log.With("handler", "ClassroomHandler"),
    classroomService: classroomService,
  }
}

// GeneratePlan validates the request, then always answers 200 with either a
// generated plan or a fallback plan. The model being down is not the
// educator's problem.
func (h *ClassroomHandler) GeneratePlan(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }

  var req services.ClassroomPlanRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }

  if missing := missingClassroomFields(&req); len(missing) > 0 {
    RespondError(c, http.StatusBadRequest, "missing_fields",
      fmt.Errorf("missing required fields: %s", strings.Join(missing, ", ")))
    return
  }

  result := h.classroomService.GeneratePlan(c.Request.Context(), &req)
  if !result.Success {
    h.log.Warn("Classroom generation degraded", "classroom", req.ClassroomName, "error", result.Error)
  }
  RespondOK(c, result)
}

func missingClassroomFields(req *services.ClassroomPlanRequest) []string {
  var missing []string
  if strings.TrimSpace(req.ClassroomName) == "" {
    missing = append(missing, "classroom_name")
  }
  if strings.TrimSpace(req.EducatorName) == "" {
    missing = append(missing, "educator_name")
  }
  if strings.TrimSpace(req.YearLevel) == "" {
    missing = append(missing, "year_level")
  }
  if strings.TrimSpace(req.Subject) == "" {
    missing = append(missing, "subject")
  }
  if len(req.LearningObjectives) == 0 {
    missing = append(missing, "learning_objectives")
  }
  return missing
}

func (h *ClassroomHandler) CreateConfiguration(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }

  var cfg types.ClassroomConfig
  if err := c.ShouldBindJSON(&cfg); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }

  created, err := h.classroomService.CreateConfiguration(c.Request.Context(), rd.UserID, &cfg)
  if err != nil {
    h.log.Error("CreateConfiguration failed", "error", err, "user_id", rd.UserID)
    RespondError(c, http.StatusBadRequest, "create_configuration_failed", err)
    return
  }
  RespondCreated(c, gin.H{"configuration": created})
}

func (h *ClassroomHandler) ListConfigurations(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  configs, err := h.classroomService.ListConfigurations(c.Request.Context(), rd.UserID)
  if err != nil {
    h.log.Error("ListConfigurations failed", "error", err, "user_id", rd.UserID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"configurations": configs})
}

func (h *ClassroomHandler) GetConfiguration(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  configID, err := uuid.Parse(c.Param("configId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  cfg, err := h.classroomService.GetConfiguration(c.Request.Context(), rd.UserID, configID)
  if err != nil {
    h.log.Error("GetConfiguration failed", "error", err, "user_id", rd.UserID, "config_id", configID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"configuration": cfg})
}

func (h *ClassroomHandler) UpdateConfiguration(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  configID, err := uuid.Parse(c.Param("configId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }

  var cfg types.ClassroomConfig
  if err := c.ShouldBindJSON(&cfg); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }

  updated, err := h.classroomService.UpdateConfiguration(c.Request.Context(), rd.UserID, configID, &cfg)
  if err != nil {
    h.log.Error("UpdateConfiguration failed", "error", err, "user_id", rd.UserID, "config_id", configID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"configuration": updated})
}

func (h *ClassroomHandler) DeleteConfiguration(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  configID, err := uuid.Parse(c.Param("configId"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }

  if err := h.classroomService.DeleteConfiguration(c.Request.Context(), rd.UserID, configID); err != nil {
    h.log.Error("DeleteConfiguration failed", "error", err, "user_id", rd.UserID, "config_id", configID)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"deleted": true})
}
