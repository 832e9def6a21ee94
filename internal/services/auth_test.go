package services

import (
  "context"
  "testing"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/neuroplan-backend/internal/requestdata"
  "github.com/yungbote/neuroplan-backend/internal/types"
)

const testSecret = "test-secret"

type stubUserRepo struct {
  bySubject map[string]*types.User
  createErr error
}

func newStubUserRepo() *stubUserRepo {
  return &stubUserRepo{bySubject: map[string]*types.User{}}
}

func (s *stubUserRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
  if s.createErr != nil {
    return nil, s.createErr
  }
  for _, u := range users {
    s.bySubject[u.Subject] = u
  }
  return users, nil
}

func (s *stubUserRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
  var out []*types.User
  for _, u := range s.bySubject {
    for _, id := range userIDs {
      if u.ID == id {
        out = append(out, u)
      }
    }
  }
  return out, nil
}

func (s *stubUserRepo) GetBySubject(ctx context.Context, tx *gorm.DB, subject string) (*types.User, error) {
  return s.bySubject[subject], nil
}

func signedToken(t *testing.T, subject, email, name string) string {
  t.Helper()
  claims := identityClaims{
    Email: email,
    Name:  name,
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   subject,
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  signed, err := token.SignedString([]byte(testSecret))
  if err != nil {
    t.Fatalf("sign token: %v", err)
  }
  return signed
}

func TestSetContextFromToken_ProvisionsUserOnFirstSight(t *testing.T) {
  repo := newStubUserRepo()
  svc := NewAuthService(nil, testLogger(t), repo, testSecret)

  token := signedToken(t, "auth0|abc", "mia@example.com", "Mia's Parent")
  ctx, err := svc.SetContextFromToken(context.Background(), token)
  if err != nil {
    t.Fatalf("SetContextFromToken: %v", err)
  }

  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    t.Fatalf("expected request data with user id, got %+v", rd)
  }

  user := repo.bySubject["auth0|abc"]
  if user == nil {
    t.Fatalf("user row was not provisioned")
  }
  if user.Email != "mia@example.com" || user.DisplayName != "Mia's Parent" {
    t.Fatalf("claims not carried onto user row: %+v", user)
  }
}

func TestSetContextFromToken_ReusesExistingUser(t *testing.T) {
  repo := newStubUserRepo()
  existing := &types.User{ID: uuid.New(), Subject: "auth0|abc"}
  repo.bySubject[existing.Subject] = existing
  svc := NewAuthService(nil, testLogger(t), repo, testSecret)

  ctx, err := svc.SetContextFromToken(context.Background(), signedToken(t, "auth0|abc", "", ""))
  if err != nil {
    t.Fatalf("SetContextFromToken: %v", err)
  }
  if rd := requestdata.GetRequestData(ctx); rd.UserID != existing.ID {
    t.Fatalf("expected existing user id %s, got %s", existing.ID, rd.UserID)
  }
}

func TestSetContextFromToken_RejectsBadTokens(t *testing.T) {
  svc := NewAuthService(nil, testLogger(t), newStubUserRepo(), testSecret)

  cases := map[string]string{
    "empty":        "",
    "garbage":      "not.a.jwt",
    "wrong secret": func() string {
      token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "x"})
      s, _ := token.SignedString([]byte("other-secret"))
      return s
    }(),
  }
  for name, token := range cases {
    if _, err := svc.SetContextFromToken(context.Background(), token); err == nil {
      t.Errorf("%s: expected error", name)
    }
  }
}

func TestSetContextFromToken_RejectsMissingSubject(t *testing.T) {
  svc := NewAuthService(nil, testLogger(t), newStubUserRepo(), testSecret)
  if _, err := svc.SetContextFromToken(context.Background(), signedToken(t, "", "a@b.c", "A")); err == nil {
    t.Fatalf("expected error for token without subject")
  }
}

func TestDevAuthService_FixedUser(t *testing.T) {
  repo := newStubUserRepo()
  svc := NewDevAuthService(nil, testLogger(t), repo)

  ctx1, err := svc.SetContextFromToken(context.Background(), "")
  if err != nil {
    t.Fatalf("SetContextFromToken: %v", err)
  }
  ctx2, err := svc.SetContextFromToken(context.Background(), "anything")
  if err != nil {
    t.Fatalf("SetContextFromToken: %v", err)
  }

  id1 := requestdata.GetRequestData(ctx1).UserID
  id2 := requestdata.GetRequestData(ctx2).UserID
  if id1 != id2 {
    t.Fatalf("dev auth must pin a single user, got %s and %s", id1, id2)
  }
  if repo.bySubject["dev-user"] == nil {
    t.Fatalf("dev user row was not provisioned")
  }
}
