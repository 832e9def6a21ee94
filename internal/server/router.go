package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/neuroplan-backend/internal/handlers"
  "github.com/yungbote/neuroplan-backend/internal/middleware"
)

type RouterConfig struct {
  AuthMiddleware   *middleware.AuthMiddleware
  UserHandler      *handlers.UserHandler
  ChildHandler     *handlers.ChildHandler
  PlanHandler      *handlers.PlanHandler
  ProgressHandler  *handlers.ProgressHandler
  ClassroomHandler *handlers.ClassroomHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5173",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)

// ===============
// || Protected ||
// ===============
  api := router.Group("/api")
  api.Use(cfg.AuthMiddleware.RequireAuth())
  // User
  api.GET("/user", cfg.UserHandler.GetMe)
  // Children
  api.POST("/children", cfg.ChildHandler.CreateChild)
  api.GET("/children", cfg.ChildHandler.ListChildren)
  api.PUT("/children/:id", cfg.ChildHandler.UpdateChild)
  api.DELETE("/children/:id", cfg.ChildHandler.DeleteChild)
  // Plans
  api.POST("/plans/generate/:childId", cfg.PlanHandler.GeneratePlan)
  api.GET("/plans/child/:childId", cfg.PlanHandler.ListPlansForChild)
  api.GET("/plans/:planId", cfg.PlanHandler.GetPlan)
  // Progress
  api.POST("/progress/:planId/day/:dayIndex", cfg.ProgressHandler.RecordProgress)
  api.GET("/plans/:planId/progress", cfg.ProgressHandler.ListProgress)
  // Educator plans
  api.POST("/educator-plans/generate", cfg.ClassroomHandler.GeneratePlan)
  api.POST("/educator-plans/configurations", cfg.ClassroomHandler.CreateConfiguration)
  api.GET("/educator-plans/configurations", cfg.ClassroomHandler.ListConfigurations)
  api.GET("/educator-plans/classroom/:configId", cfg.ClassroomHandler.GetConfiguration)
  api.PUT("/educator-plans/classroom/:configId", cfg.ClassroomHandler.UpdateConfiguration)
  api.DELETE("/educator-plans/classroom/:configId", cfg.ClassroomHandler.DeleteConfiguration)

  return router
}
