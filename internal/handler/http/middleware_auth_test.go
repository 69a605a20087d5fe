// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Kustov

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkustov/imagekeep/internal/service"
	"github.com/dkustov/imagekeep/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/gallery", nil)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)

	for _, header := range []string{"Bearer", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/api/gallery", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.Init().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
	}
	h := newTestHandler(t, auth, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/gallery", nil)
	req.Header.Set("Authorization", "Bearer expired.jwt.token")
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_PropagatesUserID(t *testing.T) {
	var listedOwner int64
	assets := &mockAssetService{
		listFn: func(_ context.Context, ownerID int64) ([]models.ImageAsset, error) {
			listedOwner = ownerID
			return nil, nil
		},
	}
	h := newTestHandler(t, nil, assets, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/gallery", nil)
	req.Header.Set("Authorization", testBearer)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testUserID, listedOwner)
}

func TestTraceIDHeaderIsSet(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/gallery", nil)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))
}

func TestTraceIDHeaderIsEchoed(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/gallery", nil)
	req.Header.Set("X-Trace-ID", "trace-123")
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, "trace-123", rec.Header().Get("X-Trace-ID"))
}
