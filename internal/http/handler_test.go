package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/threadboard/threadboard/internal/repository/sqlite"
	"github.com/threadboard/threadboard/internal/service"
)

const testJWTSecret = "test-secret"

type testServer struct {
	router *gin.Engine
	auth   service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	userRepo := sqlite.NewUserRepository(db)
	postRepo := sqlite.NewPostRepository(db)
	commentRepo := sqlite.NewCommentRepository(db)
	require.NoError(t, userRepo.Init(ctx))
	require.NoError(t, postRepo.Init(ctx))
	require.NoError(t, commentRepo.Init(ctx))

	auth := service.NewAuthService(userRepo, testJWTSecret, 24*time.Hour, bcrypt.MinCost)

	router := gin.New()
	handler := NewHandler(auth, service.NewPostService(postRepo), service.NewCommentService(commentRepo), nil)
	handler.RegisterRoutes(router)

	return &testServer{router: router, auth: auth}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// rawRequest builds a GET /api/posts request with a verbatim Authorization
// header value, for exercising scheme handling in the auth middleware.
func (s *testServer) rawRequest(t *testing.T, authorization string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Authorization", authorization)
	return req, httptest.NewRecorder()
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func (s *testServer) registerAndLogin(t *testing.T, username, email, password string) (UserResponse, string) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	user := decodeJSON[UserResponse](t, rec)

	rec = s.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	login := decodeJSON[map[string]string](t, rec)
	require.NotEmpty(t, login["token"])

	return user, login["token"]
}
