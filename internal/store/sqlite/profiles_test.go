package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookcircle/bookcircle-server/internal/domain"
	"github.com/bookcircle/bookcircle-server/internal/store"
)

func TestProfiles(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetProfile(ctx, "user-1")
	assert.ErrorIs(t, err, store.ErrProfileNotFound)

	require.NoError(t, s.UpsertProfile(ctx, &domain.Profile{UserID: "user-1", DisplayName: "Ada", ExperienceYears: 1, UpdatedAt: baseTime}))
	require.NoError(t, s.UpsertProfile(ctx, &domain.Profile{UserID: "user-1", DisplayName: "Ada L.", ExperienceYears: 5.5, UpdatedAt: baseTime.Add(time.Hour)}))
	require.NoError(t, s.UpsertProfile(ctx, &domain.Profile{UserID: "user-0", UpdatedAt: baseTime}))

	p, err := s.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", p.DisplayName)
	assert.Equal(t, 5.5, p.ExperienceYears)
	assert.True(t, p.UpdatedAt.Equal(baseTime.Add(time.Hour)))

	all, err := s.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "user-0", all[0].UserID)
}
