package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"storefront/internal/customerrors"
	"storefront/internal/models"
	"storefront/internal/ports/adapters/cache"
	"storefront/pkg/logger"
)

type stubSponsorSource struct {
	mu       sync.Mutex
	sponsors []models.Sponsor
	err      error
	calls    int
}

func (s *stubSponsorSource) ListSponsors(_ context.Context) ([]models.Sponsor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.sponsors, nil
}

func (s *stubSponsorSource) set(sponsors []models.Sponsor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sponsors = sponsors
}

func (s *stubSponsorSource) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func testCtx() context.Context {
	return logger.WithLogger(context.Background(), logger.FromZap(zap.NewNop()))
}

func newTestSponsorService(source *stubSponsorSource) *SponsorService {
	return NewSponsorService(
		source,
		cache.NewSponsorCacheAdapterInMemoryLRU(16, time.Minute),
		cache.NewSponsorDirectoryCacheAdapterInMemory(time.Minute),
	)
}

var testSponsors = []models.Sponsor{
	{ID: "s1", Name: "Acme"},
	{ID: "s2", Name: "Globex"},
}

func TestSponsorService_ListSponsors(t *testing.T) {
	source := &stubSponsorSource{sponsors: testSponsors}
	s := newTestSponsorService(source)

	sponsors, err := s.ListSponsors(testCtx())
	require.NoError(t, err)
	assert.Equal(t, testSponsors, sponsors)
	assert.Equal(t, 2, s.cache.GetKeysAmount())
}

func TestSponsorService_ListSponsors_FallsBackToCache(t *testing.T) {
	source := &stubSponsorSource{sponsors: testSponsors}
	s := newTestSponsorService(source)
	ctx := testCtx()

	_, err := s.ListSponsors(ctx)
	require.NoError(t, err)

	source.fail(errors.New("remote down"))
	sponsors, err := s.ListSponsors(ctx)
	require.NoError(t, err)
	assert.Equal(t, testSponsors, sponsors)
}

func TestSponsorService_ListSponsors_NoCacheNoFallback(t *testing.T) {
	remoteErr := errors.New("remote down")
	s := newTestSponsorService(&stubSponsorSource{err: remoteErr})

	_, err := s.ListSponsors(testCtx())
	assert.ErrorIs(t, err, remoteErr)
}

func TestSponsorService_GetSponsor(t *testing.T) {
	source := &stubSponsorSource{sponsors: testSponsors}
	s := newTestSponsorService(source)
	ctx := testCtx()

	// miss refreshes the directory
	sponsor, err := s.GetSponsor(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, "Globex", sponsor.Name)
	assert.Equal(t, 1, source.calls)

	// hit does not call the source
	sponsor, err = s.GetSponsor(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", sponsor.Name)
	assert.Equal(t, 1, source.calls)
}

func TestSponsorService_GetSponsor_Unknown(t *testing.T) {
	s := newTestSponsorService(&stubSponsorSource{sponsors: testSponsors})

	_, err := s.GetSponsor(testCtx(), "nope")
	assert.ErrorIs(t, err, customerrors.ErrSponsorNotFound)
}

func TestSponsorService_WarmUp(t *testing.T) {
	source := &stubSponsorSource{sponsors: testSponsors}
	s := newTestSponsorService(source)
	ctx := testCtx()

	require.NoError(t, s.WarmUp(ctx))
	assert.Equal(t, 2, s.cache.GetKeysAmount())

	_, err := s.GetSponsor(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, source.calls)

	failing := newTestSponsorService(&stubSponsorSource{err: errors.New("remote down")})
	assert.Error(t, failing.WarmUp(ctx))
}

func TestSponsorService_DropsUnlistedSponsors(t *testing.T) {
	source := &stubSponsorSource{sponsors: testSponsors}
	s := newTestSponsorService(source)
	ctx := testCtx()

	require.NoError(t, s.WarmUp(ctx))
	assert.Equal(t, 2, s.cache.GetKeysAmount())

	// s2 leaves the directory
	source.set([]models.Sponsor{{ID: "s1", Name: "Acme"}, {ID: "s3", Name: "Initech"}})
	_, err := s.ListSponsors(ctx)
	require.NoError(t, err)

	_, found, err := s.cache.Get(ctx, "s2")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 2, s.cache.GetKeysAmount())

	_, err = s.GetSponsor(ctx, "s2")
	assert.ErrorIs(t, err, customerrors.ErrSponsorNotFound)
}
