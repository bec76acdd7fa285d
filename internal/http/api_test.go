package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestAuthEndpoints(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	t.Run("register validates the body", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
			"username": "alice",
			"email":    "not-an-email",
			"password": "pw123456",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("register then conflict on same email", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
			"username": "alice",
			"email":    "a@x.com",
			"password": "pw123456",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = srv.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
			"username": "impostor",
			"email":    "a@x.com",
			"password": "pw123456",
		})
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("login with wrong password is unauthorized", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
			"email":    "a@x.com",
			"password": "wrong-password",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

// Exercises the full flow: register, login, authorized post creation, the
// ownership guard from another account, and a partial update by the owner.
func TestPostLifecycle(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	alice, aliceToken := srv.registerAndLogin(t, "alice", "a@x.com", "pw123456")
	_, bobToken := srv.registerAndLogin(t, "bob", "b@x.com", "pw123456")

	rec := srv.do(t, http.MethodPost, "/api/posts", aliceToken, gin.H{
		"title":   "hello",
		"content": "first post",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	post := decodeJSON[PostResponse](t, rec)
	require.Equal(t, alice.ID, post.AuthorID)

	t.Run("read back", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/posts/"+post.ID, aliceToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeJSON[PostResponse](t, rec)
		require.Equal(t, post.ID, got.ID)
	})

	t.Run("listing includes the post", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/posts", aliceToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		list := decodeJSON[[]PostResponse](t, rec)
		require.Len(t, list, 1)
	})

	t.Run("invalid id is a bad request", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/posts/not-a-uuid", aliceToken, nil)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update from another account looks like not found", func(t *testing.T) {
		rec := srv.do(t, http.MethodPut, "/api/posts/"+post.ID, bobToken, gin.H{
			"title": "hijacked",
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("owner updates title only", func(t *testing.T) {
		time.Sleep(1100 * time.Millisecond) // response timestamps have second resolution

		rec := srv.do(t, http.MethodPut, "/api/posts/"+post.ID, aliceToken, gin.H{
			"title": "hello, revised",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		updated := decodeJSON[PostResponse](t, rec)
		require.Equal(t, "hello, revised", updated.Title)
		require.Equal(t, "first post", updated.Content)

		was, err := time.Parse(time.RFC3339, post.UpdatedAt)
		require.NoError(t, err)
		now, err := time.Parse(time.RFC3339, updated.UpdatedAt)
		require.NoError(t, err)
		require.True(t, now.After(was))
	})

	t.Run("delete from another account looks like not found", func(t *testing.T) {
		rec := srv.do(t, http.MethodDelete, "/api/posts/"+post.ID, bobToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("owner deletes", func(t *testing.T) {
		rec := srv.do(t, http.MethodDelete, "/api/posts/"+post.ID, aliceToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = srv.do(t, http.MethodGet, "/api/posts/"+post.ID, aliceToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCommentEndpoints(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	alice, aliceToken := srv.registerAndLogin(t, "alice", "a@x.com", "pw123456")
	_, bobToken := srv.registerAndLogin(t, "bob", "b@x.com", "pw123456")

	rec := srv.do(t, http.MethodPost, "/api/posts", aliceToken, gin.H{
		"title":   "thread",
		"content": "content",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	post := decodeJSON[PostResponse](t, rec)

	rec = srv.do(t, http.MethodPost, "/api/posts/"+post.ID+"/comments", aliceToken, gin.H{
		"content": "top level",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	comment := decodeJSON[CommentResponse](t, rec)
	require.Equal(t, alice.ID, comment.AuthorID)
	require.Nil(t, comment.ParentID)

	t.Run("reply and list replies", func(t *testing.T) {
		rec := srv.do(t, http.MethodPost, "/api/posts/"+post.ID+"/comments", bobToken, gin.H{
			"content":   "a reply",
			"parent_id": comment.ID,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		reply := decodeJSON[CommentResponse](t, rec)
		require.NotNil(t, reply.ParentID)
		require.Equal(t, comment.ID, *reply.ParentID)

		rec = srv.do(t, http.MethodGet, "/api/comments/"+comment.ID+"/replies", aliceToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		replies := decodeJSON[[]CommentResponse](t, rec)
		require.Len(t, replies, 1)
		require.Equal(t, "a reply", replies[0].Content)
	})

	t.Run("post comment listing", func(t *testing.T) {
		rec := srv.do(t, http.MethodGet, "/api/posts/"+post.ID+"/comments", aliceToken, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		comments := decodeJSON[[]CommentResponse](t, rec)
		require.Len(t, comments, 2)
	})

	t.Run("update from another account looks like not found", func(t *testing.T) {
		rec := srv.do(t, http.MethodPut, "/api/comments/"+comment.ID, bobToken, gin.H{
			"content": "hijacked",
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("owner updates", func(t *testing.T) {
		rec := srv.do(t, http.MethodPut, "/api/comments/"+comment.ID, aliceToken, gin.H{
			"content": "edited",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		updated := decodeJSON[CommentResponse](t, rec)
		require.Equal(t, "edited", updated.Content)
	})

	t.Run("delete from another account looks like not found", func(t *testing.T) {
		rec := srv.do(t, http.MethodDelete, "/api/comments/"+comment.ID, bobToken, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("owner deletes", func(t *testing.T) {
		rec := srv.do(t, http.MethodDelete, "/api/comments/"+comment.ID, aliceToken, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestPostRoutesRequireAuthentication(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := srv.do(t, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
