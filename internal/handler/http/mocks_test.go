// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Kustov

package http

import (
	"context"
	"testing"

	"github.com/dkustov/imagekeep/internal/logger"
	"github.com/dkustov/imagekeep/internal/service"
	"github.com/dkustov/imagekeep/models"
)

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	loginFn        func(ctx context.Context, user models.User) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// ─────────────────────────────────────────────
// Mock AssetService
// ─────────────────────────────────────────────

type mockAssetService struct {
	uploadFn   func(ctx context.Context, ownerID int64, filename string, data []byte) (models.ImageAsset, error)
	listFn     func(ctx context.Context, ownerID int64) ([]models.ImageAsset, error)
	downloadFn func(ctx context.Context, ownerID int64, filename string) ([]byte, models.ImageAsset, error)
}

func (m *mockAssetService) Upload(ctx context.Context, ownerID int64, filename string, data []byte) (models.ImageAsset, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, ownerID, filename, data)
	}
	return models.ImageAsset{OwnerID: ownerID, Filename: filename}, nil
}

func (m *mockAssetService) List(ctx context.Context, ownerID int64) ([]models.ImageAsset, error) {
	if m.listFn != nil {
		return m.listFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockAssetService) Download(ctx context.Context, ownerID int64, filename string) ([]byte, models.ImageAsset, error) {
	if m.downloadFn != nil {
		return m.downloadFn(ctx, ownerID, filename)
	}
	return nil, models.ImageAsset{}, nil
}

// ─────────────────────────────────────────────
// Mock TransformService
// ─────────────────────────────────────────────

type mockTransformService struct {
	applyFn func(ctx context.Context, ownerID int64, filename string, op service.Op, params service.TransformParams) (models.ImageAsset, error)
}

func (m *mockTransformService) Apply(ctx context.Context, ownerID int64, filename string, op service.Op, params service.TransformParams) (models.ImageAsset, error) {
	if m.applyFn != nil {
		return m.applyFn(ctx, ownerID, filename, op, params)
	}
	return models.ImageAsset{OwnerID: ownerID, Filename: filename}, nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// bearerToken successfully parsed by the default mockAuthService as user 7.
const testBearer = "Bearer valid.jwt.token"

const testUserID int64 = 7

// newTestHandler builds a Handler over the given mocks. Nil mocks are
// replaced with permissive defaults: token parsing always yields testUserID.
func newTestHandler(t *testing.T, auth *mockAuthService, assets *mockAssetService, transforms *mockTransformService) *Handler {
	t.Helper()

	if auth == nil {
		auth = &mockAuthService{}
	}
	if auth.parseTokenFn == nil {
		auth.parseTokenFn = func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{UserID: testUserID}, nil
		}
	}
	if assets == nil {
		assets = &mockAssetService{}
	}
	if transforms == nil {
		transforms = &mockTransformService{}
	}

	return NewHandler(&service.Services{
		AuthService:      auth,
		AssetService:     assets,
		TransformService: transforms,
	}, logger.Nop())
}
