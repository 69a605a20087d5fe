// Package adapter implements the client-side REST adapter used by the CLI.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dkustov/imagekeep/internal/logger"
	"github.com/dkustov/imagekeep/models"
)

type HTTPClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates cfg.BaseURL and configures
// the underlying resty client with the resolved base URL and request
// timeout.
func NewHTTPServerAdapter(cfg HTTPClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: cli, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// authed returns a request carrying the stored bearer token.
func (h *httpServerAdapter) authed(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetAuthToken(h.Token())
}

func (h *httpServerAdapter) Register(ctx context.Context, user models.User) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/register")
	if err != nil {
		return fmt.Errorf("register request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var login models.LoginResponse
	if err := json.Unmarshal(resp.Body(), &login); err != nil {
		return "", fmt.Errorf("login parse response: %w", err)
	}
	if login.AccessToken == "" {
		return "", fmt.Errorf("login: empty access token in response")
	}

	h.SetToken(login.AccessToken)
	return login.AccessToken, nil
}

func (h *httpServerAdapter) Upload(ctx context.Context, filename string, data []byte) (models.UploadResponse, error) {
	resp, err := h.authed(ctx).
		SetFileReader("file", filename, bytes.NewReader(data)).
		Post("/upload")
	if err != nil {
		return models.UploadResponse{}, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UploadResponse{}, err
	}

	var upload models.UploadResponse
	if err := json.Unmarshal(resp.Body(), &upload); err != nil {
		return models.UploadResponse{}, fmt.Errorf("upload parse response: %w", err)
	}

	return upload, nil
}

func (h *httpServerAdapter) Transform(ctx context.Context, op, filename string, params map[string]string) (models.TransformResponse, error) {
	resp, err := h.authed(ctx).
		SetQueryParams(params).
		SetPathParam("filename", filename).
		Get("/" + op + "/{filename}")
	if err != nil {
		return models.TransformResponse{}, fmt.Errorf("%s request: %w", op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.TransformResponse{}, err
	}

	var result models.TransformResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return models.TransformResponse{}, fmt.Errorf("%s parse response: %w", op, err)
	}

	return result, nil
}

func (h *httpServerAdapter) Gallery(ctx context.Context) (models.GalleryResponse, error) {
	resp, err := h.authed(ctx).Get("/api/gallery")
	if err != nil {
		return models.GalleryResponse{}, fmt.Errorf("gallery request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.GalleryResponse{}, err
	}

	var gallery models.GalleryResponse
	if err := json.Unmarshal(resp.Body(), &gallery); err != nil {
		return models.GalleryResponse{}, fmt.Errorf("gallery parse response: %w", err)
	}

	return gallery, nil
}

func (h *httpServerAdapter) Images(ctx context.Context) ([]models.ImageAsset, error) {
	resp, err := h.authed(ctx).Get("/api/images")
	if err != nil {
		return nil, fmt.Errorf("images request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var assets []models.ImageAsset
	if err := json.Unmarshal(resp.Body(), &assets); err != nil {
		return nil, fmt.Errorf("images parse response: %w", err)
	}

	return assets, nil
}

func (h *httpServerAdapter) Download(ctx context.Context, filename string) ([]byte, error) {
	resp, err := h.authed(ctx).
		SetPathParam("filename", filename).
		Get("/uploads/{filename}")
	if err != nil {
		return nil, fmt.Errorf("download request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}
