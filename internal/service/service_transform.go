package service

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/dkustov/imagekeep/internal/config"
	"github.com/dkustov/imagekeep/internal/imaging"
	"github.com/dkustov/imagekeep/internal/logger"
	"github.com/dkustov/imagekeep/internal/store"
	"github.com/dkustov/imagekeep/models"
)

// Filename prefixes for operations that write a derived asset instead of
// replacing the original in place.
var derivedPrefixes = map[Op]string{
	OpSobel:       "sobel_",
	OpCanny:       "canny_",
	OpEqualize:    "equalized_",
	OpBlur:        "blurred_",
	OpPerspective: "perspective_",
}

// transformService is the concrete implementation of TransformService.
//
// Resize, rotate, brightness and sharpen rewrite the asset in place and
// refresh its metadata row. The edge, equalization, blur and perspective
// operations write a prefixed sibling asset and leave the original intact.
// Every read-modify-write cycle runs under the asset's keyed lock.
type transformService struct {
	assets   store.AssetRepository
	files    store.FileStore
	defaults config.Transforms
	locks    *keyedLock
	logger   *logger.Logger
}

// NewTransformService constructs a TransformService using defaults as the
// parameter values applied when a request carries no overrides.
func NewTransformService(assets store.AssetRepository, files store.FileStore, defaults config.Transforms, locks *keyedLock, logger *logger.Logger) TransformService {
	return &transformService{
		assets:   assets,
		files:    files,
		defaults: defaults,
		locks:    locks,
		logger:   logger,
	}
}

func (s *transformService) Apply(ctx context.Context, ownerID int64, filename string, op Op, params TransformParams) (models.ImageAsset, error) {
	log := logger.FromContext(ctx)

	filename, err := sanitizeFilename(filename)
	if err != nil {
		return models.ImageAsset{}, err
	}

	unlock := s.locks.Lock(ownerID, filename)
	defer unlock()

	if _, err := s.assets.FindAsset(ctx, ownerID, filename); err != nil {
		log.Err(err).Str("filename", filename).Str("op", string(op)).Msg("asset lookup failed")
		return models.ImageAsset{}, fmt.Errorf("asset lookup failed: %w", err)
	}

	data, err := s.files.Read(ctx, ownerID, filename)
	if err != nil {
		log.Err(err).Str("filename", filename).Msg("reading stored file failed")
		return models.ImageAsset{}, fmt.Errorf("reading stored file failed: %w", err)
	}

	img, format, err := imaging.Decode(data)
	if err != nil {
		log.Err(err).Str("filename", filename).Msg("decoding stored file failed")
		return models.ImageAsset{}, fmt.Errorf("decoding stored file failed: %w", err)
	}

	result, err := s.apply(img, op, params)
	if err != nil {
		log.Err(err).Str("filename", filename).Str("op", string(op)).Msg("transform failed")
		return models.ImageAsset{}, err
	}

	encoded, err := imaging.Encode(result, format)
	if err != nil {
		log.Err(err).Str("filename", filename).Msg("encoding result failed")
		return models.ImageAsset{}, fmt.Errorf("encoding result failed: %w", err)
	}

	outFilename := filename
	if prefix, derived := derivedPrefixes[op]; derived {
		outFilename = prefix + filename

		unlockOut := s.locks.Lock(ownerID, outFilename)
		defer unlockOut()
	}

	if err := s.files.Save(ctx, ownerID, outFilename, encoded); err != nil {
		log.Err(err).Str("filename", outFilename).Msg("saving result failed")
		return models.ImageAsset{}, fmt.Errorf("saving result failed: %w", err)
	}

	return s.recordResult(ctx, ownerID, outFilename, result.Bounds(), format)
}

// recordResult upserts the metadata row for the written file: in-place
// operations refresh the existing row, derived operations insert a new one
// (or refresh it when the same derivation was run before).
func (s *transformService) recordResult(ctx context.Context, ownerID int64, filename string, bounds image.Rectangle, format string) (models.ImageAsset, error) {
	log := logger.FromContext(ctx)
	width, height := bounds.Dx(), bounds.Dy()

	created, err := s.assets.CreateAsset(ctx, models.ImageAsset{
		OwnerID:  ownerID,
		Filename: filename,
		Width:    width,
		Height:   height,
		Format:   format,
	})
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, store.ErrAssetAlreadyExists) {
		log.Err(err).Str("filename", filename).Msg("recording result metadata failed")
		return models.ImageAsset{}, fmt.Errorf("recording result metadata failed: %w", err)
	}

	if err := s.assets.UpdateAssetMetadata(ctx, ownerID, filename, width, height, format); err != nil {
		log.Err(err).Str("filename", filename).Msg("refreshing result metadata failed")
		return models.ImageAsset{}, fmt.Errorf("refreshing result metadata failed: %w", err)
	}

	asset, err := s.assets.FindAsset(ctx, ownerID, filename)
	if err != nil {
		return models.ImageAsset{}, fmt.Errorf("reloading result metadata failed: %w", err)
	}

	return asset, nil
}

// apply dispatches to the imaging primitive for op, substituting configured
// defaults for any parameter the request did not override.
func (s *transformService) apply(img image.Image, op Op, params TransformParams) (image.Image, error) {
	switch op {
	case OpResize:
		width := intOrDefault(params.Width, s.defaults.ResizeWidth)
		height := intOrDefault(params.Height, s.defaults.ResizeHeight)
		return imaging.Resize(img, width, height)

	case OpRotate:
		angle := floatOrDefault(params.Angle, float64(s.defaults.RotateDegrees))
		return imaging.Rotate(img, angle), nil

	case OpBrightness:
		factor := floatOrDefault(params.Factor, s.defaults.BrightnessFactor)
		return imaging.AdjustBrightness(img, factor)

	case OpSharpen:
		return imaging.Sharpen(img), nil

	case OpSobel:
		return imaging.SobelEdges(img), nil

	case OpCanny:
		low := floatOrDefault(params.CannyLow, s.defaults.CannyLow)
		high := floatOrDefault(params.CannyHigh, s.defaults.CannyHigh)
		return imaging.CannyEdges(img, low, high)

	case OpEqualize:
		return imaging.EqualizeHistogram(img), nil

	case OpBlur:
		kernel := s.defaults.BlurKernelSize
		if params.BlurRadius != nil {
			kernel = 2**params.BlurRadius + 1
		}
		return imaging.GaussianBlur(img, kernel)

	case OpPerspective:
		return imaging.PerspectiveWarp(img, s.defaults.PerspectiveShift)

	default:
		return nil, ErrUnknownTransform
	}
}

func intOrDefault(v *int, def int) int {
	if v != nil {
		return *v
	}
	return def
}

func floatOrDefault(v *float64, def float64) float64 {
	if v != nil {
		return *v
	}
	return def
}
