// Package workers hosts the background jobs of the application. The only
// job today is the orphan sweeper, which periodically reconciles the upload
// directory against the asset table and reports disagreements. Neither side
// is mutated: uploads and transforms have no cross-store rollback, so the
// sweeper exists to make the resulting gaps visible in the logs.
package workers

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/dkustov/imagekeep/internal/logger"
	"github.com/dkustov/imagekeep/internal/store"
)

// Sweeper runs the orphan reconciliation on a ticker. It is idle until
// Start is called.
type Sweeper struct {
	assets store.AssetRepository
	files  store.FileStore
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSweeper(assets store.AssetRepository, files store.FileStore, logger *logger.Logger) *Sweeper {
	return &Sweeper{
		assets: assets,
		files:  files,
		logger: logger,
	}
}

// Start stops any previously running sweep loop, then launches a background
// goroutine that runs one sweep every interval. An interval of zero or less
// disables the worker. The goroutine exits when ctx is cancelled or Stop is
// called.
func (s *Sweeper) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		s.logger.Info().Msg("orphan sweeper disabled")
		return
	}

	s.Stop()

	s.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := s.Sweep(jobCtx); err != nil {
					s.logger.Err(err).Msg("orphan sweep failed")
				}
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until it has
// fully exited. Safe to call when the worker is not running.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

// Sweep performs one reconciliation pass: metadata rows whose backing file
// is missing, and files on disk with no metadata row, are both logged.
func (s *Sweeper) Sweep(ctx context.Context) error {
	log := s.logger

	assets, err := s.assets.ListAllAssets(ctx)
	if err != nil {
		return err
	}

	recorded := make(map[string]struct{}, len(assets))
	missingFiles := 0
	for _, asset := range assets {
		recorded[fileKey(asset.OwnerID, asset.Filename)] = struct{}{}
		if !s.files.Exists(asset.OwnerID, asset.Filename) {
			missingFiles++
			log.Warn().
				Int64("owner", asset.OwnerID).
				Str("filename", asset.Filename).
				Msg("metadata row has no backing file")
		}
	}

	orphanFiles := 0
	err = s.files.WalkFiles(ctx, func(ownerID int64, filename string) error {
		if _, ok := recorded[fileKey(ownerID, filename)]; !ok {
			orphanFiles++
			log.Warn().
				Int64("owner", ownerID).
				Str("filename", filename).
				Msg("file on disk has no metadata row")
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().
		Int("assets", len(assets)).
		Int("missing_files", missingFiles).
		Int("orphan_files", orphanFiles).
		Msg("orphan sweep completed")

	return nil
}

func fileKey(ownerID int64, filename string) string {
	return strconv.FormatInt(ownerID, 10) + "/" + filename
}
