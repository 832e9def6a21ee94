package db

import (
  "fmt"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "github.com/yungbote/neuroplan-backend/internal/types"
  "github.com/yungbote/neuroplan-backend/internal/utils"
  "github.com/yungbote/neuroplan-backend/internal/logger"
)

// SQLiteService backs the same repos when Postgres is unreachable and
// DB_FALLBACK=sqlite. Records survive only as long as the file (or the
// process, for :memory:). A demo convenience, not a durability guarantee.
type SQLiteService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSQLiteService(log *logger.Logger) (*SQLiteService, error) {
  serviceLog := log.With("service", "SQLiteService")

  path := utils.GetEnv("SQLITE_PATH", "file::memory:?cache=shared", log)

  log.Info("Opening SQLite fallback database...", "path", path)
  gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
  if err != nil {
    log.Error("Failed to open SQLite database", "error", err)
    return nil, fmt.Errorf("Failed to open SQLite database: %w", err)
  }

  // SQLite ships with foreign keys off
  if err := gdb.Exec(`PRAGMA foreign_keys = ON;`).Error; err != nil {
    return nil, fmt.Errorf("Failed to enable sqlite foreign keys: %w", err)
  }

  return &SQLiteService{db: gdb, log: serviceLog}, nil
}

func (s *SQLiteService) AutoMigrateAll() error {
  s.log.Info("Auto migrating sqlite tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.Child{},
    &types.LearningPlan{},
    &types.PlanProgress{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for sqlite tables", "error", err)
    return err
  }
  return nil
}

func (s *SQLiteService) DB() *gorm.DB {
  return s.db
}
