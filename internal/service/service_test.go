package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/threadboard/threadboard/internal/domain"
	"github.com/threadboard/threadboard/internal/repository"
	"github.com/threadboard/threadboard/internal/repository/sqlite"
)

type testRepos struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	repos := testRepos{
		users:    sqlite.NewUserRepository(db),
		posts:    sqlite.NewPostRepository(db),
		comments: sqlite.NewCommentRepository(db),
	}
	require.NoError(t, repos.users.Init(ctx))
	require.NoError(t, repos.posts.Init(ctx))
	require.NoError(t, repos.comments.Init(ctx))
	return repos
}

func newTestAuth(t *testing.T, repos testRepos) AuthService {
	t.Helper()
	return NewAuthService(repos.users, "test-secret", 24*time.Hour, bcrypt.MinCost)
}

func createTestUser(t *testing.T, repos testRepos, username, email string) uuid.UUID {
	t.Helper()

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: "x",
	}
	require.NoError(t, repos.users.Create(context.Background(), user))
	return user.ID
}
