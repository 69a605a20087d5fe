package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dkustov/imagekeep/internal/logger"
	"github.com/dkustov/imagekeep/internal/service"
	"github.com/dkustov/imagekeep/internal/store"
	"github.com/dkustov/imagekeep/internal/utils"
	"github.com/dkustov/imagekeep/models"
)

// Uploads larger than this are rejected during multipart parsing.
const maxUploadBytes = 32 << 20

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		log.Err(err).Msg("missing or unreadable `file` form part")
		writeError(w, "missing `file` form part", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Err(err).Msg("reading uploaded file failed")
		writeError(w, "reading uploaded file failed", http.StatusBadRequest)
		return
	}

	asset, err := h.services.AssetService.Upload(ctx, userID, header.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidFilename),
			errors.Is(err, service.ErrUnsupportedFileType),
			errors.Is(err, service.ErrNotAnImage),
			errors.Is(err, service.ErrEmptyFile):
			log.Err(err).Str("filename", header.Filename).Msg("upload rejected")
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrAssetAlreadyExists):
			log.Err(err).Str("filename", header.Filename).Msg("duplicate upload")
			writeError(w, "file already uploaded", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during upload")
			writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, models.UploadResponse{
		Message:  "file uploaded successfully",
		Filename: asset.Filename,
	}, http.StatusCreated)
}

func (h *Handler) gallery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	assets, err := h.services.AssetService.List(ctx, userID)
	if err != nil {
		log.Err(err).Msg("listing assets failed")
		writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	urls := make([]string, 0, len(assets))
	for _, asset := range assets {
		urls = append(urls, "/uploads/"+asset.Filename)
	}

	utils.WriteJSON(w, models.GalleryResponse{Images: urls}, http.StatusOK)
}

func (h *Handler) images(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	assets, err := h.services.AssetService.List(ctx, userID)
	if err != nil {
		log.Err(err).Msg("listing assets failed")
		writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, assets, http.StatusOK)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	filename := chi.URLParam(r, "filename")

	data, asset, err := h.services.AssetService.Download(ctx, userID, filename)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrAssetNotFound), errors.Is(err, store.ErrFileNotFound):
			log.Err(err).Str("filename", filename).Msg("asset not found")
			writeError(w, "file not found", http.StatusNotFound)
			return
		case errors.Is(err, service.ErrInvalidFilename):
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during download")
			writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "image/"+asset.Format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", asset.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
