package server

import (
	"net/http"
	"testing"

	"devconnect/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRoutesRequireAuth(t *testing.T) {
	_, app := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/posts", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "No token, authorization denied", errorMsg(t, resp))
}

func TestCreatePostSnapshotsAuthor(t *testing.T) {
	_, app := newTestServer(t)
	token := registerUser(t, app, "Alice", "alice@example.com")

	post := createPost(t, app, token, "hello world")

	assert.Equal(t, "hello world", post.Text)
	assert.Equal(t, "Alice", post.Name)
	assert.Contains(t, post.Avatar, "gravatar.com/avatar/")
	assert.Empty(t, post.Likes)
	assert.Empty(t, post.Comments)
}

func TestCreatePostValidation(t *testing.T) {
	_, app := newTestServer(t)
	token := registerUser(t, app, "Alice", "alice@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", token, fiber.Map{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []string{"Text is required"}, validationMsgs(t, resp))
}

func TestListPostsNewestFirst(t *testing.T) {
	_, app := newTestServer(t)
	token := registerUser(t, app, "Alice", "alice@example.com")

	createPost(t, app, token, "first")
	createPost(t, app, token, "second")
	createPost(t, app, token, "third")

	resp := doJSON(t, app, http.MethodGet, "/api/posts", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var posts []models.Post
	decodeBody(t, resp, &posts)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Text)
	assert.Equal(t, "first", posts[2].Text)
}

func TestGetPostMalformedID(t *testing.T) {
	_, app := newTestServer(t)
	token := registerUser(t, app, "Alice", "alice@example.com")

	for _, path := range []string{"/api/posts/abc", "/api/posts/0"} {
		resp := doJSON(t, app, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "path %s", path)
		assert.Equal(t, "Post not found", errorMsg(t, resp))
	}
}

func TestGetPostAbsent(t *testing.T) {
	_, app := newTestServer(t)
	token := registerUser(t, app, "Alice", "alice@example.com")

	resp := doJSON(t, app, http.MethodGet, "/api/posts/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Post not found", errorMsg(t, resp))
}

func TestDeletePostOwnerOnly(t *testing.T) {
	_, app := newTestServer(t)
	aliceToken := registerUser(t, app, "Alice", "alice@example.com")
	bobToken := registerUser(t, app, "Bob", "bob@example.com")

	post := createPost(t, app, aliceToken, "mine")

	denied := doJSON(t, app, http.MethodDelete, postPath(post.ID, ""), bobToken, nil)
	assert.Equal(t, http.StatusUnauthorized, denied.StatusCode)
	assert.Equal(t, "User not authorized", errorMsg(t, denied))

	ok := doJSON(t, app, http.MethodDelete, postPath(post.ID, ""), aliceToken, nil)
	require.Equal(t, http.StatusOK, ok.StatusCode)
	assert.Equal(t, "Post removed", errorMsg(t, ok))

	gone := doJSON(t, app, http.MethodGet, postPath(post.ID, ""), aliceToken, nil)
	assert.Equal(t, http.StatusNotFound, gone.StatusCode)
	_ = gone.Body.Close()
}

func TestLikeUnlikeLifecycle(t *testing.T) {
	_, app := newTestServer(t)
	aliceToken := registerUser(t, app, "Alice", "alice@example.com")
	bobToken := registerUser(t, app, "Bob", "bob@example.com")

	post := createPost(t, app, aliceToken, "like me")

	// Bob likes the post
	resp := doJSON(t, app, http.MethodPut, postPath(post.ID, "/like"), bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var likes []models.Like
	decodeBody(t, resp, &likes)
	require.Len(t, likes, 1)

	// a second like from Bob fails
	again := doJSON(t, app, http.MethodPut, postPath(post.ID, "/like"), bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, again.StatusCode)
	assert.Equal(t, "Post already liked", errorMsg(t, again))

	// Alice can still like it herself
	aliceLike := doJSON(t, app, http.MethodPut, postPath(post.ID, "/like"), aliceToken, nil)
	require.Equal(t, http.StatusOK, aliceLike.StatusCode)
	decodeBody(t, aliceLike, &likes)
	assert.Len(t, likes, 2)

	// Bob unlikes
	unlike := doJSON(t, app, http.MethodPut, postPath(post.ID, "/unlike"), bobToken, nil)
	require.Equal(t, http.StatusOK, unlike.StatusCode)
	decodeBody(t, unlike, &likes)
	assert.Len(t, likes, 1)

	// a second unlike from Bob fails
	unlikeAgain := doJSON(t, app, http.MethodPut, postPath(post.ID, "/unlike"), bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, unlikeAgain.StatusCode)
	assert.Equal(t, "Post has not yet been liked", errorMsg(t, unlikeAgain))
}

func TestLikeAbsentPost(t *testing.T) {
	_, app := newTestServer(t)
	token := registerUser(t, app, "Alice", "alice@example.com")

	resp := doJSON(t, app, http.MethodPut, "/api/posts/9999/like", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Post not found", errorMsg(t, resp))
}
