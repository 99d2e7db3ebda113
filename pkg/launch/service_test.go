package launch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jordanlanch/campaignforge/pkg/campaign"
	"github.com/jordanlanch/campaignforge/pkg/content"
	"github.com/jordanlanch/campaignforge/pkg/domain"
	"github.com/jordanlanch/campaignforge/pkg/intent"
)

type fakeRepo struct {
	mu        sync.Mutex
	campaigns map[uuid.UUID]*campaign.Campaign
	statuses  map[uuid.UUID]campaign.Status
}

func newFakeRepo(camps ...*campaign.Campaign) *fakeRepo {
	r := &fakeRepo{
		campaigns: map[uuid.UUID]*campaign.Campaign{},
		statuses:  map[uuid.UUID]campaign.Status{},
	}
	for _, c := range camps {
		r.campaigns[c.ID] = c
	}
	return r
}

func (r *fakeRepo) Create(ctx context.Context, c *campaign.Campaign) error {
	r.campaigns[c.ID] = c
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	c, ok := r.campaigns[id]
	if !ok {
		return nil, domain.NewNotFoundError("campaign")
	}
	return c, nil
}

func (r *fakeRepo) List(ctx context.Context, userID uuid.UUID, status campaign.Status, offset, limit int) ([]*campaign.Campaign, int, error) {
	return nil, 0, nil
}

func (r *fakeRepo) Update(ctx context.Context, c *campaign.Campaign) error { return nil }

func (r *fakeRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status campaign.Status, launchedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[id] = status
	return nil
}

func (r *fakeRepo) UpdateMetrics(ctx context.Context, id uuid.UUID, metrics map[string]int64) error {
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeRepo) ListScheduledBefore(ctx context.Context, cutoff time.Time, status campaign.Status) ([]*campaign.Campaign, error) {
	out := []*campaign.Campaign{}
	for _, c := range r.campaigns {
		if c.Status == status && c.Schedule != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeRepo) CountByStatus(ctx context.Context) (map[campaign.Status]int, error) {
	return nil, nil
}

type fakeProvider struct {
	channel intent.Channel
	err     error
	calls   int
}

func (p *fakeProvider) Channel() intent.Channel { return p.channel }

func (p *fakeProvider) Dispatch(ctx context.Context, camp *campaign.Campaign, c content.Content) (int64, error) {
	p.calls++
	if p.err != nil {
		return 0, p.err
	}
	return 1, nil
}

func readyCampaign(userID uuid.UUID) *campaign.Campaign {
	in := &intent.CampaignIntent{
		Goal:        "promote sale",
		Channels:    []intent.Channel{intent.ChannelEmail, intent.ChannelSMS},
		ContentSpec: intent.ContentSpec{KeyMessage: "30% off"},
	}
	return campaign.FromIntent(userID, uuid.New(), in, map[string]content.Content{
		"email": content.EmailContent{Subject: "s", Body: "b"},
		"sms":   content.SMSContent{Body: "short"},
	}, nil)
}

func TestLaunch_AllChannelsSucceed(t *testing.T) {
	userID := uuid.New()
	camp := readyCampaign(userID)
	repo := newFakeRepo(camp)

	email := &fakeProvider{channel: intent.ChannelEmail}
	sms := &fakeProvider{channel: intent.ChannelSMS}
	svc := NewService(repo, []Provider{email, sms}, nil, nil)

	result, err := svc.Launch(context.Background(), userID, camp.ID)
	require.NoError(t, err)

	assert.Len(t, result.Dispatched, 2)
	assert.Empty(t, result.Failed)
	assert.Equal(t, campaign.StatusLaunched, repo.statuses[camp.ID])
	assert.Equal(t, 1, email.calls)
	assert.Equal(t, 1, sms.calls)
	assert.Equal(t, int64(1), camp.Metrics["email_sent"])
	assert.NotNil(t, camp.LaunchedAt)
}

func TestLaunch_PartialFailure(t *testing.T) {
	userID := uuid.New()
	camp := readyCampaign(userID)
	repo := newFakeRepo(camp)

	email := &fakeProvider{channel: intent.ChannelEmail}
	sms := &fakeProvider{channel: intent.ChannelSMS, err: errors.New("gateway down")}
	svc := NewService(repo, []Provider{email, sms}, nil, nil)

	result, err := svc.Launch(context.Background(), userID, camp.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"email"}, result.Dispatched)
	assert.Contains(t, result.Failed, "sms")
	assert.Equal(t, campaign.StatusPartiallyLaunched, repo.statuses[camp.ID])
	assert.Equal(t, int64(1), camp.Metrics["sms_failed"])
}

func TestLaunch_TotalFailure(t *testing.T) {
	userID := uuid.New()
	camp := readyCampaign(userID)
	repo := newFakeRepo(camp)

	boom := errors.New("everything down")
	svc := NewService(repo, []Provider{
		&fakeProvider{channel: intent.ChannelEmail, err: boom},
		&fakeProvider{channel: intent.ChannelSMS, err: boom},
	}, nil, nil)

	_, err := svc.Launch(context.Background(), userID, camp.ID)
	require.Error(t, err)
	// Status is untouched on a total dispatch failure
	_, changed := repo.statuses[camp.ID]
	assert.False(t, changed)
}

func TestLaunch_MissingProviderFailsThatChannel(t *testing.T) {
	userID := uuid.New()
	camp := readyCampaign(userID)
	repo := newFakeRepo(camp)

	svc := NewService(repo, []Provider{&fakeProvider{channel: intent.ChannelEmail}}, nil, nil)

	result, err := svc.Launch(context.Background(), userID, camp.ID)
	require.NoError(t, err)
	assert.Contains(t, result.Failed, "sms")
	assert.Equal(t, campaign.StatusPartiallyLaunched, repo.statuses[camp.ID])
}

func TestLaunch_WrongOwner(t *testing.T) {
	camp := readyCampaign(uuid.New())
	repo := newFakeRepo(camp)
	svc := NewService(repo, nil, nil, nil)

	_, err := svc.Launch(context.Background(), uuid.New(), camp.ID)
	require.Error(t, err)
	assert.True(t, domain.IsForbidden(err))
}

func TestLaunch_NotLaunchableStatus(t *testing.T) {
	userID := uuid.New()
	camp := readyCampaign(userID)
	camp.Status = campaign.StatusCompleted
	repo := newFakeRepo(camp)
	svc := NewService(repo, nil, nil, nil)

	_, err := svc.Launch(context.Background(), userID, camp.ID)
	require.Error(t, err)
	de, ok := err.(*domain.DomainError)
	require.True(t, ok)
	assert.Equal(t, domain.ErrCodeConflict, de.Code)
}

func TestLaunch_RelaunchPartiallyLaunched(t *testing.T) {
	userID := uuid.New()
	camp := readyCampaign(userID)
	camp.Status = campaign.StatusPartiallyLaunched
	repo := newFakeRepo(camp)

	svc := NewService(repo, []Provider{
		&fakeProvider{channel: intent.ChannelEmail},
		&fakeProvider{channel: intent.ChannelSMS},
	}, nil, nil)

	result, err := svc.Launch(context.Background(), userID, camp.ID)
	require.NoError(t, err)
	assert.Len(t, result.Dispatched, 2)
	assert.Equal(t, campaign.StatusLaunched, repo.statuses[camp.ID])
}

func TestLaunchDue(t *testing.T) {
	userID := uuid.New()
	camp := readyCampaign(userID)
	camp.Schedule = &intent.Schedule{StartDate: "2026-01-01"}
	repo := newFakeRepo(camp)

	svc := NewService(repo, []Provider{
		&fakeProvider{channel: intent.ChannelEmail},
		&fakeProvider{channel: intent.ChannelSMS},
	}, nil, nil)

	launched := svc.LaunchDue(context.Background(), time.Now().UTC())
	assert.Equal(t, 1, launched)
	assert.Equal(t, campaign.StatusLaunched, repo.statuses[camp.ID])
}
