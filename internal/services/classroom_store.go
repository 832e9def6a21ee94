package services

import (
  "context"
  "encoding/json"
  "fmt"
  "os"
  "strings"
  "sync"
  "time"

  "github.com/google/uuid"
  goredis "github.com/redis/go-redis/v9"

  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/types"
)

// ClassroomStore is the storage port for classroom configurations and plans.
// Two implementations: an in-process map (default, process lifetime) and a
// redis-backed one (CLASSROOM_STORE=redis). Get methods return nil, nil when
// the key is absent.
type ClassroomStore interface {
  PutConfig(ctx context.Context, cfg *types.ClassroomConfig) error
  GetConfig(ctx context.Context, id uuid.UUID) (*types.ClassroomConfig, error)
  ListConfigs(ctx context.Context, userID uuid.UUID) ([]*types.ClassroomConfig, error)
  DeleteConfig(ctx context.Context, id uuid.UUID) error
  PutPlan(ctx context.Context, plan *types.ClassroomPlan) error
  GetPlan(ctx context.Context, id uuid.UUID) (*types.ClassroomPlan, error)
}

// ---- in-memory ----

type memoryClassroomStore struct {
  mu      sync.RWMutex
  configs map[uuid.UUID]*types.ClassroomConfig
  plans   map[uuid.UUID]*types.ClassroomPlan
}

func NewMemoryClassroomStore() ClassroomStore {
  return &memoryClassroomStore{
    configs: map[uuid.UUID]*types.ClassroomConfig{},
    plans:   map[uuid.UUID]*types.ClassroomPlan{},
  }
}

func (m *memoryClassroomStore) PutConfig(ctx context.Context, cfg *types.ClassroomConfig) error {
  m.mu.Lock()
  defer m.mu.Unlock()
  m.configs[cfg.ID] = cfg
  return nil
}

func (m *memoryClassroomStore) GetConfig(ctx context.Context, id uuid.UUID) (*types.ClassroomConfig, error) {
  m.mu.RLock()
  defer m.mu.RUnlock()
  return m.configs[id], nil
}

func (m *memoryClassroomStore) ListConfigs(ctx context.Context, userID uuid.UUID) ([]*types.ClassroomConfig, error) {
  m.mu.RLock()
  defer m.mu.RUnlock()
  out := make([]*types.ClassroomConfig, 0)
  for _, cfg := range m.configs {
    if cfg.UserID == userID {
      out = append(out, cfg)
    }
  }
  return out, nil
}

func (m *memoryClassroomStore) DeleteConfig(ctx context.Context, id uuid.UUID) error {
  m.mu.Lock()
  defer m.mu.Unlock()
  delete(m.configs, id)
  return nil
}

func (m *memoryClassroomStore) PutPlan(ctx context.Context, plan *types.ClassroomPlan) error {
  m.mu.Lock()
  defer m.mu.Unlock()
  m.plans[plan.ID] = plan
  return nil
}

func (m *memoryClassroomStore) GetPlan(ctx context.Context, id uuid.UUID) (*types.ClassroomPlan, error) {
  m.mu.RLock()
  defer m.mu.RUnlock()
  return m.plans[id], nil
}

// ---- redis ----

type redisClassroomStore struct {
  log *logger.Logger
  rdb *goredis.Client
}

func NewRedisClassroomStore(log *logger.Logger) (ClassroomStore, error) {
  if log == nil {
    return nil, fmt.Errorf("logger required")
  }

  addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
  if addr == "" {
    return nil, fmt.Errorf("missing REDIS_ADDR")
  }

  rdb := goredis.NewClient(&goredis.Options{
    Addr:        addr,
    DialTimeout: 5 * time.Second,
  })

  ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
  defer cancel()
  if err := rdb.Ping(ctx).Err(); err != nil {
    _ = rdb.Close()
    return nil, fmt.Errorf("redis ping: %w", err)
  }

  return &redisClassroomStore{
    log: log.With("service", "RedisClassroomStore"),
    rdb: rdb,
  }, nil
}

func classroomConfigKey(id uuid.UUID) string  { return "classroom:config:" + id.String() }
func classroomPlanKey(id uuid.UUID) string    { return "classroom:plan:" + id.String() }
func classroomUserKey(uid uuid.UUID) string   { return "classroom:configs:" + uid.String() }

func (r *redisClassroomStore) PutConfig(ctx context.Context, cfg *types.ClassroomConfig) error {
  b, err := json.Marshal(cfg)
  if err != nil {
    return err
  }
  if err := r.rdb.Set(ctx, classroomConfigKey(cfg.ID), b, 0).Err(); err != nil {
    return fmt.Errorf("redis set config: %w", err)
  }
  if err := r.rdb.SAdd(ctx, classroomUserKey(cfg.UserID), cfg.ID.String()).Err(); err != nil {
    return fmt.Errorf("redis index config: %w", err)
  }
  return nil
}

func (r *redisClassroomStore) GetConfig(ctx context.Context, id uuid.UUID) (*types.ClassroomConfig, error) {
  raw, err := r.rdb.Get(ctx, classroomConfigKey(id)).Bytes()
  if err == goredis.Nil {
    return nil, nil
  }
  if err != nil {
    return nil, fmt.Errorf("redis get config: %w", err)
  }
  var cfg types.ClassroomConfig
  if err := json.Unmarshal(raw, &cfg); err != nil {
    return nil, fmt.Errorf("decode config: %w", err)
  }
  return &cfg, nil
}

func (r *redisClassroomStore) ListConfigs(ctx context.Context, userID uuid.UUID) ([]*types.ClassroomConfig, error) {
  ids, err := r.rdb.SMembers(ctx, classroomUserKey(userID)).Result()
  if err != nil {
    return nil, fmt.Errorf("redis list configs: %w", err)
  }
  out := make([]*types.ClassroomConfig, 0, len(ids))
  for _, idStr := range ids {
    id, err := uuid.Parse(idStr)
    if err != nil {
      continue
    }
    cfg, err := r.GetConfig(ctx, id)
    if err != nil {
      return nil, err
    }
    if cfg == nil {
      // stale index entry
      _ = r.rdb.SRem(ctx, classroomUserKey(userID), idStr).Err()
      continue
    }
    out = append(out, cfg)
  }
  return out, nil
}

func (r *redisClassroomStore) DeleteConfig(ctx context.Context, id uuid.UUID) error {
  cfg, err := r.GetConfig(ctx, id)
  if err != nil {
    return err
  }
  if cfg == nil {
    return nil
  }
  if err := r.rdb.Del(ctx, classroomConfigKey(id)).Err(); err != nil {
    return fmt.Errorf("redis delete config: %w", err)
  }
  return r.rdb.SRem(ctx, classroomUserKey(cfg.UserID), id.String()).Err()
}

func (r *redisClassroomStore) PutPlan(ctx context.Context, plan *types.ClassroomPlan) error {
  b, err := json.Marshal(plan)
  if err != nil {
    return err
  }
  if err := r.rdb.Set(ctx, classroomPlanKey(plan.ID), b, 0).Err(); err != nil {
    return fmt.Errorf("redis set plan: %w", err)
  }
  return nil
}

func (r *redisClassroomStore) GetPlan(ctx context.Context, id uuid.UUID) (*types.ClassroomPlan, error) {
  raw, err := r.rdb.Get(ctx, classroomPlanKey(id)).Bytes()
  if err == goredis.Nil {
    return nil, nil
  }
  if err != nil {
    return nil, fmt.Errorf("redis get plan: %w", err)
  }
  var plan types.ClassroomPlan
  if err := json.Unmarshal(raw, &plan); err != nil {
    return nil, fmt.Errorf("decode plan: %w", err)
  }
  return &plan, nil
}
