// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Kustov

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkustov/imagekeep/internal/service"
	"github.com/dkustov/imagekeep/internal/store"
	"github.com/dkustov/imagekeep/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// multipartBody builds a multipart form with a single "file" part.
func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

// ─────────────────────────────────────────────
// upload
// ─────────────────────────────────────────────

func TestUpload_Success(t *testing.T) {
	var gotOwner int64
	var gotFilename string
	assets := &mockAssetService{
		uploadFn: func(_ context.Context, ownerID int64, filename string, _ []byte) (models.ImageAsset, error) {
			gotOwner = ownerID
			gotFilename = filename
			return models.ImageAsset{OwnerID: ownerID, Filename: filename}, nil
		},
	}
	h := newTestHandler(t, nil, assets, nil)

	body, contentType := multipartBody(t, "cat.png", []byte("fake png bytes"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", testBearer)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, testUserID, gotOwner)
	assert.Equal(t, "cat.png", gotFilename)

	var resp models.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cat.png", resp.Filename)
}

func TestUpload_MissingFilePart(t *testing.T) {
	h := newTestHandler(t, nil, &mockAssetService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(nil))
	req.Header.Set("Authorization", testBearer)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpload_ServiceRejections(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"bad extension", service.ErrUnsupportedFileType, http.StatusBadRequest},
		{"not an image", service.ErrNotAnImage, http.StatusBadRequest},
		{"duplicate", store.ErrAssetAlreadyExists, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assets := &mockAssetService{
				uploadFn: func(_ context.Context, _ int64, _ string, _ []byte) (models.ImageAsset, error) {
					return models.ImageAsset{}, tc.err
				},
			}
			h := newTestHandler(t, nil, assets, nil)

			body, contentType := multipartBody(t, "cat.png", []byte("bytes"))
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", contentType)
			req.Header.Set("Authorization", testBearer)
			rec := httptest.NewRecorder()
			h.Init().ServeHTTP(rec, req)

			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

// ─────────────────────────────────────────────
// gallery and images
// ─────────────────────────────────────────────

func TestGallery_Success(t *testing.T) {
	assets := &mockAssetService{
		listFn: func(_ context.Context, ownerID int64) ([]models.ImageAsset, error) {
			return []models.ImageAsset{
				{OwnerID: ownerID, Filename: "a.png"},
				{OwnerID: ownerID, Filename: "sobel_a.png"},
			}, nil
		},
	}
	h := newTestHandler(t, nil, assets, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/gallery", nil)
	req.Header.Set("Authorization", testBearer)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.GalleryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"/uploads/a.png", "/uploads/sobel_a.png"}, resp.Images)
}

func TestImages_Success(t *testing.T) {
	assets := &mockAssetService{
		listFn: func(_ context.Context, ownerID int64) ([]models.ImageAsset, error) {
			return []models.ImageAsset{
				{AssetID: 1, OwnerID: ownerID, Filename: "a.png", Width: 10, Height: 20, Format: "png"},
			}, nil
		},
	}
	h := newTestHandler(t, nil, assets, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/images", nil)
	req.Header.Set("Authorization", testBearer)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []models.ImageAsset
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "a.png", resp[0].Filename)
	assert.Equal(t, 10, resp[0].Width)
}

// ─────────────────────────────────────────────
// download
// ─────────────────────────────────────────────

func TestDownload_Success(t *testing.T) {
	content := []byte("png bytes")
	assets := &mockAssetService{
		downloadFn: func(_ context.Context, ownerID int64, filename string) ([]byte, models.ImageAsset, error) {
			return content, models.ImageAsset{OwnerID: ownerID, Filename: filename, Format: "png"}, nil
		},
	}
	h := newTestHandler(t, nil, assets, nil)

	req := httptest.NewRequest(http.MethodGet, "/uploads/cat.png", nil)
	req.Header.Set("Authorization", testBearer)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, content, rec.Body.Bytes())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cat.png")
}

func TestDownload_NotFound(t *testing.T) {
	assets := &mockAssetService{
		downloadFn: func(_ context.Context, _ int64, _ string) ([]byte, models.ImageAsset, error) {
			return nil, models.ImageAsset{}, store.ErrAssetNotFound
		},
	}
	h := newTestHandler(t, nil, assets, nil)

	req := httptest.NewRequest(http.MethodGet, "/uploads/ghost.png", nil)
	req.Header.Set("Authorization", testBearer)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
