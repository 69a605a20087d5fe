// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Kustov

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkustov/imagekeep/internal/imaging"
	"github.com/dkustov/imagekeep/internal/service"
	"github.com/dkustov/imagekeep/internal/store"
	"github.com/dkustov/imagekeep/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doTransform(t *testing.T, h *Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", testBearer)
	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

func TestTransform_Resize(t *testing.T) {
	var gotOp service.Op
	var gotParams service.TransformParams
	transforms := &mockTransformService{
		applyFn: func(_ context.Context, ownerID int64, filename string, op service.Op, params service.TransformParams) (models.ImageAsset, error) {
			gotOp = op
			gotParams = params
			return models.ImageAsset{OwnerID: ownerID, Filename: filename, Width: 30, Height: 40}, nil
		},
	}
	h := newTestHandler(t, nil, nil, transforms)

	rec := doTransform(t, h, "/resize/cat.png?width=30&height=40")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.OpResize, gotOp)
	require.NotNil(t, gotParams.Width)
	require.NotNil(t, gotParams.Height)
	assert.Equal(t, 30, *gotParams.Width)
	assert.Equal(t, 40, *gotParams.Height)

	var resp models.TransformResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cat.png", resp.Filename)
	assert.Equal(t, 30, resp.Width)
	assert.Equal(t, 40, resp.Height)
}

func TestTransform_RouteOpMapping(t *testing.T) {
	cases := []struct {
		path string
		op   service.Op
	}{
		{"/rotate/cat.png?angle=45", service.OpRotate},
		{"/adjust_brightness/cat.png?factor=2", service.OpBrightness},
		{"/sharpen/cat.png", service.OpSharpen},
		{"/sobel_edge/cat.png", service.OpSobel},
		{"/canny_edge/cat.png?low=50&high=150", service.OpCanny},
		{"/histogram_equalization/cat.png", service.OpEqualize},
		{"/gaussian_blur/cat.png?radius=3", service.OpBlur},
		{"/perspective_transform/cat.png", service.OpPerspective},
	}

	for _, tc := range cases {
		t.Run(string(tc.op), func(t *testing.T) {
			var gotOp service.Op
			transforms := &mockTransformService{
				applyFn: func(_ context.Context, _ int64, filename string, op service.Op, _ service.TransformParams) (models.ImageAsset, error) {
					gotOp = op
					return models.ImageAsset{Filename: filename}, nil
				},
			}
			h := newTestHandler(t, nil, nil, transforms)

			rec := doTransform(t, h, tc.path)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.op, gotOp)
		})
	}
}

func TestTransform_QueryOverrides(t *testing.T) {
	var gotParams service.TransformParams
	transforms := &mockTransformService{
		applyFn: func(_ context.Context, _ int64, filename string, _ service.Op, params service.TransformParams) (models.ImageAsset, error) {
			gotParams = params
			return models.ImageAsset{Filename: filename}, nil
		},
	}
	h := newTestHandler(t, nil, nil, transforms)

	rec := doTransform(t, h, "/canny_edge/cat.png?low=42.5&high=99")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotParams.CannyLow)
	require.NotNil(t, gotParams.CannyHigh)
	assert.Equal(t, 42.5, *gotParams.CannyLow)
	assert.Equal(t, 99.0, *gotParams.CannyHigh)
}

func TestTransform_BadQueryParam(t *testing.T) {
	h := newTestHandler(t, nil, nil, &mockTransformService{})

	rec := doTransform(t, h, "/resize/cat.png?width=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransform_ErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"asset missing", store.ErrAssetNotFound, http.StatusNotFound},
		{"file missing", store.ErrFileNotFound, http.StatusNotFound},
		{"bad dimensions", imaging.ErrInvalidDimensions, http.StatusBadRequest},
		{"bad thresholds", imaging.ErrInvalidThresholds, http.StatusBadRequest},
		{"bad kernel", imaging.ErrInvalidKernel, http.StatusBadRequest},
		{"storage down", errOpaque{}, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			transforms := &mockTransformService{
				applyFn: func(_ context.Context, _ int64, _ string, _ service.Op, _ service.TransformParams) (models.ImageAsset, error) {
					return models.ImageAsset{}, tc.err
				},
			}
			h := newTestHandler(t, nil, nil, transforms)

			rec := doTransform(t, h, "/sharpen/cat.png")
			assert.Equal(t, tc.want, rec.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

type errOpaque struct{}

func (errOpaque) Error() string { return "disk on fire" }
