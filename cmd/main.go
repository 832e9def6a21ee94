package main

import (
  "fmt"
  "os"
  "github.com/joho/godotenv"
  "github.com/yungbote/neuroplan-backend/internal/db"
  "github.com/yungbote/neuroplan-backend/internal/handlers"
  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/middleware"
  "github.com/yungbote/neuroplan-backend/internal/repos"
  "github.com/yungbote/neuroplan-backend/internal/server"
  "github.com/yungbote/neuroplan-backend/internal/services"
  "github.com/yungbote/neuroplan-backend/internal/utils"
  "gorm.io/gorm"
)

func main() {
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  authMode := utils.GetEnv("AUTH_MODE", "jwt", log)
  planMode := utils.GetEnv("PLAN_MODE", "openai", log)
  classroomStoreMode := utils.GetEnv("CLASSROOM_STORE", "memory", log)
  dbFallback := utils.GetEnv("DB_FALLBACK", "", log)
  curriculumDir := utils.GetEnv("CURRICULUM_DIR", "data/curriculum", log)

  // Database
  var gormDB *gorm.DB
  postgresService, err := db.NewPostgresService(log)
  if err == nil {
    if err = postgresService.AutoMigrateAll(); err != nil {
      log.Warn("Postgres auto migration failed", "error", err)
    }
    gormDB = postgresService.DB()
  } else if dbFallback == "sqlite" {
    log.Warn("Postgres init failed, falling back to SQLite", "error", err)
    sqliteService, sErr := db.NewSQLiteService(log)
    if sErr != nil {
      log.Error("SQLite fallback init failed", "error", sErr)
      os.Exit(1)
    }
    if sErr = sqliteService.AutoMigrateAll(); sErr != nil {
      log.Warn("SQLite auto migration failed", "error", sErr)
    }
    gormDB = sqliteService.DB()
  } else {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(gormDB, log)
  childRepo := repos.NewChildRepo(gormDB, log)
  planRepo := repos.NewLearningPlanRepo(gormDB, log)
  progressRepo := repos.NewPlanProgressRepo(gormDB, log)

  // Services
  log.Info("Setting up Services from main...")
  var aiClient services.AIClient
  if planMode == "mock" {
    aiClient = services.NewMockAIClient(log)
  } else {
    aiClient, err = services.NewOpenAIClient(log)
    if err != nil {
      log.Warn("Could not init OpenAIClient, plans will degrade to fallback content", "error", err)
      aiClient = services.NewMockAIClient(log)
    }
  }

  curriculumService, err := services.NewCurriculumService(log, curriculumDir)
  if err != nil {
    log.Error("Could not init CurriculumService", "error", err)
    os.Exit(1)
  }

  var classroomStore services.ClassroomStore
  if classroomStoreMode == "redis" {
    classroomStore, err = services.NewRedisClassroomStore(log)
    if err != nil {
      log.Warn("Could not init redis classroom store, using in-memory store", "error", err)
      classroomStore = services.NewMemoryClassroomStore()
    }
  } else {
    classroomStore = services.NewMemoryClassroomStore()
  }

  var authService services.AuthService
  if authMode == "dev" {
    log.Warn("AUTH_MODE=dev, all requests run as the dev user")
    authService = services.NewDevAuthService(gormDB, log, userRepo)
  } else {
    authService = services.NewAuthService(gormDB, log, userRepo, jwtSecretKey)
  }
  userService := services.NewUserService(gormDB, log, userRepo)
  childService := services.NewChildService(gormDB, log, childRepo)
  planService := services.NewPlanService(gormDB, log, childRepo, planRepo)
  planGenService := services.NewPlanGenerationService(gormDB, log, childRepo, planRepo, curriculumService, aiClient)
  progressService := services.NewProgressService(gormDB, log, childRepo, planRepo, progressRepo)
  classroomService := services.NewClassroomService(log, classroomStore, curriculumService, aiClient)

  // Handlers
  log.Info("Setting up handlers from main...")
  userHandler := handlers.NewUserHandler(log, userService)
  childHandler := handlers.NewChildHandler(log, childService)
  planHandler := handlers.NewPlanHandler(log, planService, planGenService)
  progressHandler := handlers.NewProgressHandler(log, progressService)
  classroomHandler := handlers.NewClassroomHandler(log, classroomService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthMiddleware:   authMiddleware,
    UserHandler:      userHandler,
    ChildHandler:     childHandler,
    PlanHandler:      planHandler,
    ProgressHandler:  progressHandler,
    ClassroomHandler: classroomHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
