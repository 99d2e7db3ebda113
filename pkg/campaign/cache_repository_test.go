package campaign

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/campaignforge/pkg/cache"
	"github.com/jordanlanch/campaignforge/pkg/content"
	"github.com/jordanlanch/campaignforge/pkg/domain"
	"github.com/jordanlanch/campaignforge/pkg/intent"
	"github.com/jordanlanch/campaignforge/pkg/logger"
)

type countingRepo struct {
	Repository
	gets int
}

func (r *countingRepo) GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	r.gets++
	return r.Repository.GetByID(ctx, id)
}

func setupCachedRepo(t *testing.T) (*CachedRepository, *countingRepo, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := cache.NewClient("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	inner := &countingRepo{Repository: newFakeCampaignRepo()}
	return NewCachedRepository(inner, client, time.Minute, logger.Default()), inner, mr
}

func cachedTestCampaign() *Campaign {
	in := &intent.CampaignIntent{
		Goal:        "Promote summer sale",
		Channels:    []intent.Channel{intent.ChannelEmail, intent.ChannelSocial},
		ContentSpec: intent.ContentSpec{KeyMessage: "30% off"},
	}
	contents := map[string]content.Content{
		"email":    content.EmailContent{Subject: "Summer sale", Body: "Everything 30% off."},
		"facebook": content.SocialContent{Platform: content.PlatformFacebook, Body: "Sale is on"},
	}
	return FromIntent(uuid.New(), uuid.New(), in, contents, nil)
}

func TestCachedRepository_GetByIDCaches(t *testing.T) {
	repo, inner, _ := setupCachedRepo(t)
	ctx := context.Background()

	c := cachedTestCampaign()
	require.NoError(t, repo.Create(ctx, c))

	first, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.gets)
	assert.Equal(t, first.Goal, second.Goal)

	email, ok := second.Content["email"].(content.EmailContent)
	require.True(t, ok)
	assert.Equal(t, "Summer sale", email.Subject)

	social, ok := second.Content["facebook"].(content.SocialContent)
	require.True(t, ok)
	assert.Equal(t, content.PlatformFacebook, social.Platform)
}

func TestCachedRepository_UpdateInvalidates(t *testing.T) {
	repo, inner, _ := setupCachedRepo(t)
	ctx := context.Background()

	c := cachedTestCampaign()
	require.NoError(t, repo.Create(ctx, c))

	_, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)

	c.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, 2, inner.gets)
}

func TestCachedRepository_StatusChangeInvalidates(t *testing.T) {
	repo, _, _ := setupCachedRepo(t)
	ctx := context.Background()

	c := cachedTestCampaign()
	require.NoError(t, repo.Create(ctx, c))

	_, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, repo.UpdateStatus(ctx, c.ID, StatusLaunched, &now))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusLaunched, got.Status)
}

func TestCachedRepository_DeleteInvalidates(t *testing.T) {
	repo, _, _ := setupCachedRepo(t)
	ctx := context.Background()

	c := cachedTestCampaign()
	require.NoError(t, repo.Create(ctx, c))

	_, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err = repo.GetByID(ctx, c.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestCachedRepository_CorruptEntryFallsThrough(t *testing.T) {
	repo, inner, mr := setupCachedRepo(t)
	ctx := context.Background()

	c := cachedTestCampaign()
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, mr.Set(campaignCacheKey(c.ID), "not json"))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.Goal, got.Goal)
	assert.Equal(t, 1, inner.gets)
}
