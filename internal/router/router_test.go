package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"Yatube/internal/config"
	"Yatube/internal/model"
	"Yatube/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
		&model.FollowOutbox{},
	))
	return db
}

func setup(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	return InitRouter(db), db
}

func get(r *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// signupAndLogin registers a user through the public endpoints and
// returns the session cookie.
func signupAndLogin(t *testing.T, r *gin.Engine, username string) *http.Cookie {
	t.Helper()
	w := postForm(r, "/auth/signup/", url.Values{
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {"hunter2"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/auth/login/", w.Header().Get("Location"))

	w = postForm(r, "/auth/login/", url.Values{
		"username": {username},
		"password": {"hunter2"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == "session_token" && c.Value != "" {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestGatedRoutesRedirectToLogin(t *testing.T) {
	r, _ := setup(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/create/"},
		{http.MethodGet, "/follow/"},
		{http.MethodGet, "/posts/1/edit/"},
		{http.MethodPost, "/posts/1/comment/"},
		{http.MethodPost, "/profile/somebody/follow/"},
		{http.MethodPost, "/profile/somebody/unfollow/"},
	}
	for _, tc := range paths {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var w *httptest.ResponseRecorder
			if tc.method == http.MethodGet {
				w = get(r, tc.path)
			} else {
				w = postForm(r, tc.path, url.Values{})
			}
			require.Equal(t, http.StatusFound, w.Code)
			loc := w.Header().Get("Location")
			assert.True(t, strings.HasPrefix(loc, "/auth/login/?next="), "got %q", loc)
			assert.Contains(t, loc, url.QueryEscape(tc.path))
		})
	}
}

func TestUnknownPathIs404(t *testing.T) {
	r, _ := setup(t)
	w := get(r, "/not_found_page/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnknownGroupIs404(t *testing.T) {
	r, _ := setup(t)
	w := get(r, "/group/birds/")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePostFlow(t *testing.T) {
	r, _ := setup(t)
	cookie := signupAndLogin(t, r, "leo")

	t.Run("form renders for the author", func(t *testing.T) {
		w := get(r, "/create/", cookie)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty text re-renders the form with messages", func(t *testing.T) {
		w := postForm(r, "/create/", url.Values{"text": {"  "}}, cookie)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "text is required")
	})

	t.Run("success redirects to the author profile", func(t *testing.T) {
		w := postForm(r, "/create/", url.Values{"text": {"my first post"}}, cookie)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/profile/leo/", w.Header().Get("Location"))

		w = get(r, "/profile/leo/")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "my first post")
		assert.Contains(t, w.Body.String(), `"post_count":1`)
	})
}

func TestNonOwnerEditRedirectsSilently(t *testing.T) {
	r, db := setup(t)
	ownerCookie := signupAndLogin(t, r, "owner")
	otherCookie := signupAndLogin(t, r, "other")

	w := postForm(r, "/create/", url.Values{"text": {"owned text"}}, ownerCookie)
	require.Equal(t, http.StatusFound, w.Code)

	var post model.Post
	require.NoError(t, db.First(&post).Error)
	editPath := "/posts/" + strconv.FormatUint(post.ID, 10) + "/edit/"
	detailPath := "/posts/" + strconv.FormatUint(post.ID, 10) + "/"

	t.Run("edit form bounces the non-owner to the detail view", func(t *testing.T) {
		w := get(r, editPath, otherCookie)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, detailPath, w.Header().Get("Location"))
	})

	t.Run("edit submit is a no-op for the non-owner", func(t *testing.T) {
		w := postForm(r, editPath, url.Values{"text": {"hijacked"}}, otherCookie)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, detailPath, w.Header().Get("Location"))

		var stored model.Post
		require.NoError(t, db.First(&stored, post.ID).Error)
		assert.Equal(t, "owned text", stored.Text)
	})
}

func TestFollowRoundTrip(t *testing.T) {
	r, _ := setup(t)
	signupAndLogin(t, r, "author")
	viewerCookie := signupAndLogin(t, r, "viewer")

	t.Run("follow redirects back to the profile", func(t *testing.T) {
		w := postForm(r, "/profile/author/follow/", url.Values{}, viewerCookie)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/profile/author/", w.Header().Get("Location"))
	})

	t.Run("profile reports the follow state for the viewer", func(t *testing.T) {
		w := get(r, "/profile/author/", viewerCookie)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"following":true`)

		// anonymous viewers never follow
		w = get(r, "/profile/author/")
		assert.Contains(t, w.Body.String(), `"following":false`)
	})

	t.Run("unfollow redirects back as well", func(t *testing.T) {
		w := postForm(r, "/profile/author/unfollow/", url.Values{}, viewerCookie)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/profile/author/", w.Header().Get("Location"))

		w = get(r, "/profile/author/", viewerCookie)
		assert.Contains(t, w.Body.String(), `"following":false`)
	})

	t.Run("follow of an unknown user is 404", func(t *testing.T) {
		w := postForm(r, "/profile/ghost/follow/", url.Values{}, viewerCookie)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCommentFlow(t *testing.T) {
	r, db := setup(t)
	cookie := signupAndLogin(t, r, "reader")

	w := postForm(r, "/create/", url.Values{"text": {"commentable"}}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	var post model.Post
	require.NoError(t, db.First(&post).Error)
	detailPath := "/posts/" + strconv.FormatUint(post.ID, 10) + "/"

	w = postForm(r, detailPath[:len(detailPath)-1]+"/comment/", url.Values{"text": {"nice one"}}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, detailPath, w.Header().Get("Location"))

	w = get(r, detailPath)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "nice one")
}

func TestIndexCacheStaleness(t *testing.T) {
	old := config.IndexCacheTTL
	config.IndexCacheTTL = 80 * time.Millisecond
	t.Cleanup(func() { config.IndexCacheTTL = old })

	r, db := setup(t)
	cookie := signupAndLogin(t, r, "writer")

	// populate the cache with the current (empty) listing
	first := get(r, "/")
	require.Equal(t, http.StatusOK, first.Code)
	assert.NotContains(t, first.Body.String(), "fresh post")

	w := postForm(r, "/create/", url.Values{"text": {"fresh post"}}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	var n int64
	require.NoError(t, db.Model(&model.Post{}).Count(&n).Error)
	require.Equal(t, int64(1), n)

	t.Run("inside the window the stale payload is served verbatim", func(t *testing.T) {
		w := get(r, "/")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, first.Body.String(), w.Body.String())
		assert.NotContains(t, w.Body.String(), "fresh post")
	})

	t.Run("after expiry the new post appears", func(t *testing.T) {
		time.Sleep(100 * time.Millisecond)
		w := get(r, "/")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "fresh post")
	})
}

func TestListAllOrderingThroughHTTP(t *testing.T) {
	r, db := setup(t)
	cookie := signupAndLogin(t, r, "writer")

	for _, text := range []string{"one", "two", "three"} {
		w := postForm(r, "/create/", url.Values{"text": {text}}, cookie)
		require.Equal(t, http.StatusFound, w.Code)
		time.Sleep(2 * time.Millisecond)
	}

	svc := service.NewPostService(db)
	page, err := svc.ListAll(1)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "three", page.Items[0].Text)
	assert.Equal(t, "one", page.Items[2].Text)
}
