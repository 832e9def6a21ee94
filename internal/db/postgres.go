package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/yungbote/neuroplan-backend/internal/types"
  "github.com/yungbote/neuroplan-backend/internal/utils"
  "github.com/yungbote/neuroplan-backend/internal/logger"
)

type PostgresService struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "neuroplan", log)
  log.Debug("Environment variables loaded")

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    log.Error("Failed to enable uuid-ossp extension", "error", err)
    return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
  }

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.Child{},
    &types.LearningPlan{},
    &types.PlanProgress{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }

  s.log.Info("Configuring foreign key relationships for postgres tables...")
  return CascadeConstraints(s.db)
}

// CascadeConstraints installs the ON DELETE CASCADE foreign keys that
// AutoMigrate skips (FK creation is disabled at gorm.Open). Idempotent, and
// shared with the repo integration-test harness so tests run against the
// same referential-integrity rules as production.
func CascadeConstraints(db *gorm.DB) error {
  constraints := []struct {
    name string
    sql  string
  }{
    {
      name: "fk_child_user_id",
      sql: `
        ALTER TABLE "child"
        ADD CONSTRAINT "fk_child_user_id"
        FOREIGN KEY ("user_id")
        REFERENCES "user"("id")
        ON DELETE CASCADE
      `,
    },
    {
      // deleting a child must take its plans with it
      name: "fk_learning_plan_child_id",
      sql: `
        ALTER TABLE "learning_plan"
        ADD CONSTRAINT "fk_learning_plan_child_id"
        FOREIGN KEY ("child_id")
        REFERENCES "child"("id")
        ON DELETE CASCADE
      `,
    },
    {
      name: "fk_plan_progress_plan_id",
      sql: `
        ALTER TABLE "plan_progress"
        ADD CONSTRAINT "fk_plan_progress_plan_id"
        FOREIGN KEY ("plan_id")
        REFERENCES "learning_plan"("id")
        ON DELETE CASCADE
      `,
    },
  }
  for _, c := range constraints {
    var exists bool
    if err := db.Raw(
      `SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, c.name,
    ).Scan(&exists).Error; err != nil {
      return fmt.Errorf("Failed to check constraint %s: %w", c.name, err)
    }
    if exists {
      continue
    }
    if err := db.Exec(c.sql).Error; err != nil {
      return fmt.Errorf("Failed to add %s: %w", c.name, err)
    }
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}
