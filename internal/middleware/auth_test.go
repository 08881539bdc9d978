package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pkfit.com.br/pkfitsystem/internal/entity"
	"pkfit.com.br/pkfitsystem/internal/modules/user/repository"
	"pkfit.com.br/pkfitsystem/pkg/token"
)

type stubUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	return false, nil
}

func (s *stubUserRepo) FindInAcademy(ctx context.Context, id, academyID uuid.UUID, roles ...entity.Role) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) List(ctx context.Context, filter repository.Filter) ([]*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) ListByAcademy(ctx context.Context, academyID uuid.UUID, filter repository.MemberFilter) ([]*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) ListProfessors(ctx context.Context, academyID uuid.UUID) ([]*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) CountByRole(ctx context.Context, academyID uuid.UUID, role entity.Role, status entity.Status) (int64, error) {
	return 0, nil
}

func (s *stubUserRepo) RecentByAcademy(ctx context.Context, academyID uuid.UUID, limit int) ([]*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (s *stubUserRepo) SetPassword(ctx context.Context, id uuid.UUID, hash string) error { return nil }

func (s *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func setupRouter(m *AuthMiddleware, roles ...entity.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{m.RequireAuth()}
	if len(roles) > 0 {
		handlers = append(handlers, m.RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return body.Error
}

func TestRequireAuthMissingHeader(t *testing.T) {
	tokens := token.NewService("test-secret", time.Hour)
	m := NewAuthMiddleware(&stubUserRepo{}, tokens)
	router := setupRouter(m)

	rec := doRequest(router, "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "authentication token not provided" {
		t.Errorf("unexpected error message: %s", msg)
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	tokens := token.NewService("test-secret", time.Hour)
	m := NewAuthMiddleware(&stubUserRepo{}, tokens)
	router := setupRouter(m)

	for _, header := range []string{"Token abc", "Bearer", "Bearer a b"} {
		rec := doRequest(router, header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
		if msg := errorMessage(t, rec); msg != "malformed authorization header" {
			t.Errorf("header %q: unexpected error message: %s", header, msg)
		}
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	tokens := token.NewService("test-secret", time.Hour)
	m := NewAuthMiddleware(&stubUserRepo{}, tokens)
	router := setupRouter(m)

	rec := doRequest(router, "Bearer not-a-real-token")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "invalid token" {
		t.Errorf("unexpected error message: %s", msg)
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	issuer := token.NewService("test-secret", time.Nanosecond)
	signed, _, err := issuer.Issue(uuid.New(), "carlos@pkdemo.com.br", "ALUNO", nil)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	m := NewAuthMiddleware(&stubUserRepo{}, issuer)
	router := setupRouter(m)

	rec := doRequest(router, "Bearer "+signed)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "token expired" {
		t.Errorf("unexpected error message: %s", msg)
	}
}

func TestRequireAuthDeletedUser(t *testing.T) {
	tokens := token.NewService("test-secret", time.Hour)
	signed, _, err := tokens.Issue(uuid.New(), "removido@pkdemo.com.br", "ALUNO", nil)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	m := NewAuthMiddleware(&stubUserRepo{users: map[uuid.UUID]*entity.User{}}, tokens)
	router := setupRouter(m)

	rec := doRequest(router, "Bearer "+signed)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "user not found" {
		t.Errorf("unexpected error message: %s", msg)
	}
}

func TestRequireAuthSuccess(t *testing.T) {
	user := &entity.User{
		ID:     uuid.New(),
		Name:   "Carlos Mendes",
		Email:  "carlos@pkdemo.com.br",
		Role:   entity.RoleAdminAcademia,
		Status: entity.StatusActive,
	}

	tokens := token.NewService("test-secret", time.Hour)
	signed, _, err := tokens.Issue(user.ID, user.Email, string(user.Role), nil)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	repo := &stubUserRepo{users: map[uuid.UUID]*entity.User{user.ID: user}}
	m := NewAuthMiddleware(repo, tokens)
	router := setupRouter(m)

	rec := doRequest(router, "Bearer "+signed)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRequireRolesForbidden(t *testing.T) {
	student := &entity.User{
		ID:     uuid.New(),
		Name:   "Juliana Costa",
		Email:  "juliana@pkdemo.com.br",
		Role:   entity.RoleAluno,
		Status: entity.StatusActive,
	}

	tokens := token.NewService("test-secret", time.Hour)
	signed, _, err := tokens.Issue(student.ID, student.Email, string(student.Role), nil)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	repo := &stubUserRepo{users: map[uuid.UUID]*entity.User{student.ID: student}}
	m := NewAuthMiddleware(repo, tokens)
	router := setupRouter(m, entity.RoleAdminGlobal)

	rec := doRequest(router, "Bearer "+signed)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "you do not have permission to access this resource" {
		t.Errorf("unexpected error message: %s", msg)
	}
}

func TestRequireRolesAllowsAnyListedRole(t *testing.T) {
	professor := &entity.User{
		ID:     uuid.New(),
		Name:   "Fernanda Lima",
		Email:  "fernanda@pkdemo.com.br",
		Role:   entity.RoleProfessor,
		Status: entity.StatusActive,
	}

	tokens := token.NewService("test-secret", time.Hour)
	signed, _, err := tokens.Issue(professor.ID, professor.Email, string(professor.Role), nil)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	repo := &stubUserRepo{users: map[uuid.UUID]*entity.User{professor.ID: professor}}
	m := NewAuthMiddleware(repo, tokens)
	router := setupRouter(m, entity.RoleProfessor, entity.RolePersonal)

	rec := doRequest(router, "Bearer "+signed)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
