package services

import (
  "context"
  "fmt"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/neuroplan-backend/internal/logger"
  "github.com/yungbote/neuroplan-backend/internal/repos"
  "github.com/yungbote/neuroplan-backend/internal/requestdata"
  "github.com/yungbote/neuroplan-backend/internal/types"
)

// AuthService verifies identity-provider tokens and provisions a local user
// row on first sight of a subject. Session issuance itself is the provider's
// job, not ours.
type AuthService interface {
  SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
  db  *gorm.DB
  log *logger.Logger

  userRepo  repos.UserRepo
  jwtSecret []byte
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, jwtSecret string) AuthService {
  return &authService{
    db:        db,
    log:       baseLog.With("service", "AuthService"),
    userRepo:  userRepo,
    jwtSecret: []byte(jwtSecret),
  }
}

type identityClaims struct {
  Email string `json:"email"`
  Name  string `json:"name"`
  jwt.RegisteredClaims
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  claims := &identityClaims{}
  token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
    if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
    }
    return as.jwtSecret, nil
  })
  if err != nil || !token.Valid {
    return ctx, fmt.Errorf("invalid token")
  }
  if claims.Subject == "" {
    return ctx, fmt.Errorf("token missing subject")
  }

  user, err := as.ensureUser(ctx, claims.Subject, claims.Email, claims.Name)
  if err != nil {
    return ctx, err
  }

  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      user.ID,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

// ensureUser looks the subject up and creates the row if this is the first
// authenticated request we have seen for it.
func (as *authService) ensureUser(ctx context.Context, subject, email, name string) (*types.User, error) {
  user, err := as.userRepo.GetBySubject(ctx, nil, subject)
  if err != nil {
    return nil, fmt.Errorf("load user: %w", err)
  }
  if user != nil {
    return user, nil
  }

  now := time.Now()
  user = &types.User{
    ID:          uuid.New(),
    Subject:     subject,
    Email:       email,
    DisplayName: name,
    CreatedAt:   now,
    UpdatedAt:   now,
  }
  if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
    // lost a race with a concurrent first request; re-read
    existing, readErr := as.userRepo.GetBySubject(ctx, nil, subject)
    if readErr == nil && existing != nil {
      return existing, nil
    }
    return nil, fmt.Errorf("provision user: %w", err)
  }
  as.log.Info("Provisioned user on first authenticated request", "subject", subject, "user_id", user.ID)
  return user, nil
}

// devAuthService bypasses token verification entirely (AUTH_MODE=dev): every
// request runs as a fixed local user.
type devAuthService struct {
  db  *gorm.DB
  log *logger.Logger

  userRepo repos.UserRepo
}

func NewDevAuthService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) AuthService {
  return &devAuthService{
    db:       db,
    log:      baseLog.With("service", "DevAuthService"),
    userRepo: userRepo,
  }
}

func (das *devAuthService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  user, err := das.userRepo.GetBySubject(ctx, nil, "dev-user")
  if err != nil {
    return ctx, fmt.Errorf("load dev user: %w", err)
  }
  if user == nil {
    now := time.Now()
    user = &types.User{
      ID:          uuid.New(),
      Subject:     "dev-user",
      Email:       "dev@localhost",
      DisplayName: "Dev User",
      CreatedAt:   now,
      UpdatedAt:   now,
    }
    if _, err := das.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
      return ctx, fmt.Errorf("provision dev user: %w", err)
    }
  }
  rd := &requestdata.RequestData{
    TokenString: tokenString,
    UserID:      user.ID,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}
