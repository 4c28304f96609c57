package seed

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/bookmarkd/internal/domain"
	"github.com/MrSnakeDoc/bookmarkd/internal/gateway"
	"github.com/MrSnakeDoc/bookmarkd/internal/logger"
)

// Seeder fills an empty collection from a seed file at startup.
type Seeder struct {
	loader    *Loader
	validator *domain.Validator
	gateway   *gateway.Gateway
	logger    logger.Logger
}

// NewSeeder creates a seeder for the given file.
func NewSeeder(filePath string, v *domain.Validator, gw *gateway.Gateway, log logger.Logger) *Seeder {
	return &Seeder{
		loader:    NewLoader(filePath),
		validator: v,
		gateway:   gw,
		logger:    log,
	}
}

// Run inserts every valid entry when the collection is empty and returns how
// many were inserted. A non-empty collection is left untouched. Invalid
// entries are skipped with a warning; a storage failure aborts the run.
func (s *Seeder) Run(ctx context.Context) (int, error) {
	existing, err := s.gateway.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect collection: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Info("collection not empty, skipping seed",
			logger.Int("existing", len(existing)))
		return 0, nil
	}

	file, err := s.loader.Load()
	if err != nil {
		return 0, err
	}

	inserted := 0
	for i, entry := range file.Bookmarks {
		nb, err := s.validator.ValidateNew(entry)
		if err != nil {
			s.logger.Warn("skipping invalid seed entry",
				logger.Int("index", i),
				logger.String("reason", err.Error()))
			continue
		}

		b, err := s.gateway.Create(ctx, nb)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert seed entry %d: %w", i, err)
		}
		s.logger.Debug("seeded bookmark", logger.Int64("id", b.ID))
		inserted++
	}

	s.logger.Info("seed complete",
		logger.Int("inserted", inserted),
		logger.Int("skipped", len(file.Bookmarks)-inserted))
	return inserted, nil
}
