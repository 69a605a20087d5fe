package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dkustov/imagekeep/internal/imaging"
	"github.com/dkustov/imagekeep/internal/logger"
	"github.com/dkustov/imagekeep/internal/service"
	"github.com/dkustov/imagekeep/internal/store"
	"github.com/dkustov/imagekeep/internal/utils"
	"github.com/dkustov/imagekeep/models"
)

// transform builds the route handler for one image operation. All transform
// routes share the same shape: {filename} names one of the caller's assets,
// optional query parameters override the configured defaults, and the
// response reports the written asset's name and dimensions.
func (h *Handler) transform(op service.Op) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		log := logger.FromRequest(r)

		userID, ok := utils.GetUserIDFromContext(ctx)
		if !ok {
			writeError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		filename := chi.URLParam(r, "filename")

		params, err := parseTransformParams(r)
		if err != nil {
			log.Err(err).Str("op", string(op)).Msg("bad transform parameters")
			writeError(w, err.Error(), http.StatusBadRequest)
			return
		}

		asset, err := h.services.TransformService.Apply(ctx, userID, filename, op, params)
		if err != nil {
			h.writeTransformError(w, r, op, filename, err)
			return
		}

		utils.WriteJSON(w, models.TransformResponse{
			Message:  "image processed successfully",
			Filename: asset.Filename,
			Width:    asset.Width,
			Height:   asset.Height,
		}, http.StatusOK)
	}
}

func (h *Handler) writeTransformError(w http.ResponseWriter, r *http.Request, op service.Op, filename string, err error) {
	log := logger.FromRequest(r)

	switch {
	case errors.Is(err, store.ErrAssetNotFound), errors.Is(err, store.ErrFileNotFound):
		log.Err(err).Str("filename", filename).Str("op", string(op)).Msg("asset not found")
		writeError(w, "file not found", http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidFilename),
		errors.Is(err, service.ErrUnknownTransform),
		errors.Is(err, imaging.ErrInvalidDimensions),
		errors.Is(err, imaging.ErrInvalidFactor),
		errors.Is(err, imaging.ErrInvalidKernel),
		errors.Is(err, imaging.ErrInvalidThresholds),
		errors.Is(err, imaging.ErrInvalidShift):
		log.Err(err).Str("filename", filename).Str("op", string(op)).Msg("transform rejected")
		writeError(w, err.Error(), http.StatusBadRequest)
	default:
		log.Err(err).Str("filename", filename).Str("op", string(op)).Msg("unexpected error occurred during transform")
		writeError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// parseTransformParams collects the recognised numeric query parameters.
// Absent parameters stay nil so the service substitutes configured defaults;
// present but malformed values are a client error.
func parseTransformParams(r *http.Request) (service.TransformParams, error) {
	var params service.TransformParams
	query := r.URL.Query()

	if v := query.Get("width"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.New("`width` must be an integer")
		}
		params.Width = &width
	}
	if v := query.Get("height"); v != "" {
		height, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.New("`height` must be an integer")
		}
		params.Height = &height
	}
	if v := query.Get("angle"); v != "" {
		angle, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, errors.New("`angle` must be a number")
		}
		params.Angle = &angle
	}
	if v := query.Get("factor"); v != "" {
		factor, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, errors.New("`factor` must be a number")
		}
		params.Factor = &factor
	}
	if v := query.Get("low"); v != "" {
		low, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, errors.New("`low` must be a number")
		}
		params.CannyLow = &low
	}
	if v := query.Get("high"); v != "" {
		high, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return params, errors.New("`high` must be a number")
		}
		params.CannyHigh = &high
	}
	if v := query.Get("radius"); v != "" {
		radius, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.New("`radius` must be an integer")
		}
		params.BlurRadius = &radius
	}

	return params, nil
}
