package service

import (
	"context"
	"fmt"
	"storefront/internal/customerrors"
	"storefront/internal/models"
	"storefront/internal/ports"
	"storefront/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// directoryKey is the only key of the directory cache
const directoryKey = "all"

// SponsorService is a read-through cache in front of the remote sponsor directory
type SponsorService struct {
	source         ports.SponsorSource
	cache          ports.SponsorCache
	directoryCache ports.SponsorDirectoryCache
}

// NewSponsorService creates a new SponsorService
func NewSponsorService(source ports.SponsorSource, cache ports.SponsorCache, directoryCache ports.SponsorDirectoryCache) *SponsorService {
	return &SponsorService{
		source:         source,
		cache:          cache,
		directoryCache: directoryCache,
	}
}

// ListSponsors fetches the directory from the remote API and caches it,
// falls back to the last cached directory if the remote API fails
func (s *SponsorService) ListSponsors(ctx context.Context) ([]models.Sponsor, error) {
	// step 1. try the remote API
	sponsors, err := s.source.ListSponsors(ctx)
	if err != nil {
		logger.GetOrCreateLoggerFromCtx(ctx).Warn(ctx, "error listing sponsors from remote api", zap.Error(err))

		// step 2. serve a stale directory if there is one
		cached, found, cacheErr := s.directoryCache.Get(ctx, directoryKey)
		if cacheErr != nil || !found {
			return nil, fmt.Errorf("error listing sponsors: %w", err)
		}
		logger.GetOrCreateLoggerFromCtx(ctx).Info(ctx, "serving cached sponsor directory", zap.Int("count", len(cached)))
		return cached, nil
	}

	// step 3. cache the directory and every sponsor
	if err = s.cacheDirectory(ctx, sponsors); err != nil {
		logger.GetOrCreateLoggerFromCtx(ctx).Error(ctx, "error caching sponsors", zap.Error(err))
	}
	return sponsors, nil
}

// GetSponsor returns one sponsor, from cache first, then by refreshing the directory
func (s *SponsorService) GetSponsor(ctx context.Context, sponsorID string) (models.Sponsor, error) {
	// step 1. try to check cache first
	sponsor, found, err := s.cache.Get(ctx, sponsorID)
	if err != nil {
		return models.Sponsor{}, fmt.Errorf("error checking sponsors cache: %w", err)
	}
	if found {
		return sponsor, nil
	}

	// step 2. refresh the directory on cache miss
	sponsors, err := s.ListSponsors(ctx)
	if err != nil {
		return models.Sponsor{}, err
	}
	for _, candidate := range sponsors {
		if candidate.ID == sponsorID {
			return candidate, nil
		}
	}
	return models.Sponsor{}, fmt.Errorf("sponsor %q: %w", sponsorID, customerrors.ErrSponsorNotFound)
}

// WarmUp loads the directory into cache, meant to be called on start
func (s *SponsorService) WarmUp(ctx context.Context) error {
	sponsors, err := s.source.ListSponsors(ctx)
	if err != nil {
		return fmt.Errorf("error getting sponsors to cache: %w", err)
	}

	if err = s.cacheDirectory(ctx, sponsors); err != nil {
		return fmt.Errorf("error caching sponsors: %w", err)
	}

	logger.GetOrCreateLoggerFromCtx(ctx).Info(ctx, "cached sponsors",
		zap.Int("count", len(sponsors)),
		zap.Int("total", s.cache.GetKeysAmount()),
	)
	return nil
}

// cacheDirectory stores the new directory and every sponsor in it,
// sponsors of the previous directory that are no longer listed are dropped
func (s *SponsorService) cacheDirectory(ctx context.Context, sponsors []models.Sponsor) error {
	previous, found, err := s.directoryCache.Get(ctx, directoryKey)
	if err != nil {
		return fmt.Errorf("error reading cached sponsor directory: %w", err)
	}

	listed := make(map[string]struct{}, len(sponsors))
	for _, sponsor := range sponsors {
		listed[sponsor.ID] = struct{}{}
	}

	eg, egCtx := errgroup.WithContext(ctx)

	if found {
		for _, sponsor := range previous {
			if _, ok := listed[sponsor.ID]; ok {
				continue
			}
			eg.Go(func() error {
				logger.GetOrCreateLoggerFromCtx(egCtx).Debug(egCtx, "dropping unlisted sponsor", zap.String("sponsor_id", sponsor.ID))
				return s.cache.Delete(egCtx, sponsor.ID)
			})
		}
	}
	for _, sponsor := range sponsors {
		eg.Go(func() error {
			return s.cache.Set(egCtx, sponsor.ID, sponsor)
		})
	}
	eg.Go(func() error {
		return s.directoryCache.Set(egCtx, directoryKey, sponsors)
	})

	return eg.Wait()
}
