package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkustov/imagekeep/internal/logger"
	"github.com/dkustov/imagekeep/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.Handler) ServerAdapter {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewHTTPServerAdapter(HTTPClientConfig{BaseURL: srv.URL}, logger.Nop())
	require.NoError(t, err)
	return a
}

func TestNormalizeBaseURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"localhost:8080", "http://localhost:8080", true},
		{"http://example.com/", "http://example.com", true},
		{"https://example.com", "https://example.com", true},
		{"", "", false},
		{"://", "", false},
	}

	for _, tc := range cases {
		got, err := normalizeBaseURL(tc.in)
		if tc.ok {
			require.NoError(t, err, "input %q", tc.in)
			assert.Equal(t, tc.want, got)
		} else {
			assert.Error(t, err, "input %q", tc.in)
		}
	}
}

func TestAdapter_RegisterAndLogin(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		var user models.User
		require.NoError(t, json.NewDecoder(r.Body).Decode(&user))
		assert.Equal(t, "alice", user.Username)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.MessageResponse{Message: "ok"})
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.LoginResponse{AccessToken: "signed.jwt"})
	})

	a := newTestAdapter(t, mux)
	ctx := context.Background()

	require.NoError(t, a.Register(ctx, models.User{Username: "alice", Email: "a@b.c", Password: "pw"}))

	token, err := a.Login(ctx, models.User{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt", token)
	assert.Equal(t, "signed.jwt", a.Token())
}

func TestAdapter_Login_BadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "invalid username/password"})
	})

	a := newTestAdapter(t, mux)

	_, err := a.Login(context.Background(), models.User{Username: "alice", Password: "nope"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.Token())
}

func TestAdapter_Upload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cat.png", header.Filename)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.UploadResponse{Message: "ok", Filename: header.Filename})
	})

	a := newTestAdapter(t, mux)
	a.SetToken("tok")

	resp, err := a.Upload(context.Background(), "cat.png", []byte("png bytes"))
	require.NoError(t, err)
	assert.Equal(t, "cat.png", resp.Filename)
}

func TestAdapter_Transform(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/resize/cat.png", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "30", r.URL.Query().Get("width"))
		assert.Equal(t, "40", r.URL.Query().Get("height"))
		json.NewEncoder(w).Encode(models.TransformResponse{
			Message: "ok", Filename: "cat.png", Width: 30, Height: 40,
		})
	})

	a := newTestAdapter(t, mux)
	a.SetToken("tok")

	resp, err := a.Transform(context.Background(), "resize", "cat.png", map[string]string{
		"width":  "30",
		"height": "40",
	})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.Width)
	assert.Equal(t, 40, resp.Height)
}

func TestAdapter_Transform_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sharpen/ghost.png", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "file not found"})
	})

	a := newTestAdapter(t, mux)
	a.SetToken("tok")

	_, err := a.Transform(context.Background(), "sharpen", "ghost.png", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAdapter_GalleryAndDownload(t *testing.T) {
	content := []byte("image bytes")
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gallery", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.GalleryResponse{Images: []string{"/uploads/cat.png"}})
	})
	mux.HandleFunc("/uploads/cat.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	})

	a := newTestAdapter(t, mux)
	a.SetToken("tok")
	ctx := context.Background()

	gallery, err := a.Gallery(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/cat.png"}, gallery.Images)

	data, err := a.Download(ctx, "cat.png")
	require.NoError(t, err)
	assert.Equal(t, content, data)
}
