package campaign

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jordanlanch/campaignforge/pkg/content"
	"github.com/jordanlanch/campaignforge/pkg/domain"
	"github.com/jordanlanch/campaignforge/pkg/intent"
)

// Repository persists campaigns. JSON columns hold the structured parts
// (content map, spec, audience, schedule, metrics); scalar columns hold
// everything the list and stats queries filter on.
type Repository interface {
	Create(ctx context.Context, c *Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error)
	List(ctx context.Context, userID uuid.UUID, status Status, offset, limit int) ([]*Campaign, int, error)
	Update(ctx context.Context, c *Campaign) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, launchedAt *time.Time) error
	UpdateMetrics(ctx context.Context, id uuid.UUID, metrics map[string]int64) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListScheduledBefore(ctx context.Context, cutoff time.Time, status Status) ([]*Campaign, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

// SQLRepository is the postgres-backed Repository.
type SQLRepository struct {
	db *sql.DB
}

// NewSQLRepository creates a campaign repository on the given database
func NewSQLRepository(db *sql.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

const campaignColumns = `id, user_id, conversation_id, name, goal, status, channels,
	content_spec, audience_criteria, budget, schedule, brand_voice, content,
	warnings, metrics, created_at, updated_at, launched_at`

func (r *SQLRepository) Create(ctx context.Context, c *Campaign) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	contentJSON, err := content.EncodeMap(c.Content)
	if err != nil {
		return domain.NewInternalError(err)
	}
	specJSON, err := json.Marshal(c.ContentSpec)
	if err != nil {
		return domain.NewInternalError(err)
	}
	audienceJSON, err := json.Marshal(c.AudienceCriteria)
	if err != nil {
		return domain.NewInternalError(err)
	}
	scheduleJSON, err := marshalNullable(c.Schedule)
	if err != nil {
		return domain.NewInternalError(err)
	}
	metricsJSON, err := json.Marshal(c.Metrics)
	if err != nil {
		return domain.NewInternalError(err)
	}

	query := `
		INSERT INTO campaigns (` + campaignColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err = r.db.ExecContext(ctx, query,
		c.ID, c.UserID, c.ConversationID, c.Name, c.Goal, c.Status,
		pq.Array(channelStrings(c.Channels)),
		specJSON, audienceJSON, c.Budget, scheduleJSON, nullString(c.BrandVoice),
		contentJSON, pq.Array(c.Warnings), metricsJSON,
		c.CreatedAt, c.UpdatedAt, c.LaunchedAt,
	)
	if err != nil {
		return fmt.Errorf("creating campaign: %w", err)
	}
	return nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id = $1`
	c, err := scanCampaign(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFoundError("campaign")
		}
		return nil, fmt.Errorf("getting campaign: %w", err)
	}
	return c, nil
}

func (r *SQLRepository) List(ctx context.Context, userID uuid.UUID, status Status, offset, limit int) ([]*Campaign, int, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE user_id = $1`
	args := []interface{}{userID}
	argPos := 2

	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, status)
		argPos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []*Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM campaigns WHERE user_id = $1`
	countArgs := []interface{}{userID}
	if status != "" {
		countQuery += " AND status = $2"
		countArgs = append(countArgs, status)
	}
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

func (r *SQLRepository) Update(ctx context.Context, c *Campaign) error {
	c.UpdatedAt = time.Now().UTC()

	contentJSON, err := content.EncodeMap(c.Content)
	if err != nil {
		return domain.NewInternalError(err)
	}
	specJSON, err := json.Marshal(c.ContentSpec)
	if err != nil {
		return domain.NewInternalError(err)
	}
	audienceJSON, err := json.Marshal(c.AudienceCriteria)
	if err != nil {
		return domain.NewInternalError(err)
	}
	scheduleJSON, err := marshalNullable(c.Schedule)
	if err != nil {
		return domain.NewInternalError(err)
	}
	metricsJSON, err := json.Marshal(c.Metrics)
	if err != nil {
		return domain.NewInternalError(err)
	}

	query := `
		UPDATE campaigns
		SET name=$1, goal=$2, status=$3, channels=$4, content_spec=$5,
		    audience_criteria=$6, budget=$7, schedule=$8, brand_voice=$9,
		    content=$10, warnings=$11, metrics=$12, updated_at=$13, launched_at=$14
		WHERE id=$15
	`
	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Goal, c.Status, pq.Array(channelStrings(c.Channels)),
		specJSON, audienceJSON, c.Budget, scheduleJSON, nullString(c.BrandVoice),
		contentJSON, pq.Array(c.Warnings), metricsJSON, c.UpdatedAt, c.LaunchedAt,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating campaign: %w", err)
	}
	return checkAffected(res)
}

func (r *SQLRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, launchedAt *time.Time) error {
	query := `UPDATE campaigns SET status=$1, launched_at=COALESCE($2, launched_at), updated_at=$3 WHERE id=$4`
	res, err := r.db.ExecContext(ctx, query, status, launchedAt, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating campaign status: %w", err)
	}
	return checkAffected(res)
}

func (r *SQLRepository) UpdateMetrics(ctx context.Context, id uuid.UUID, metrics map[string]int64) error {
	metricsJSON, err := json.Marshal(metrics)
	if err != nil {
		return domain.NewInternalError(err)
	}
	query := `UPDATE campaigns SET metrics=$1, updated_at=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, metricsJSON, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating campaign metrics: %w", err)
	}
	return checkAffected(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("deleting campaign: %w", err)
	}
	return checkAffected(res)
}

// ListScheduledBefore returns campaigns in the given status whose schedule
// start date is at or before cutoff. Used by the cron launcher.
func (r *SQLRepository) ListScheduledBefore(ctx context.Context, cutoff time.Time, status Status) ([]*Campaign, error) {
	query := `
		SELECT ` + campaignColumns + ` FROM campaigns
		WHERE status = $1
		  AND schedule IS NOT NULL
		  AND (schedule->>'start_date')::date <= $2
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, status, cutoff)
	if err != nil {
		return nil, fmt.Errorf("listing scheduled campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []*Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *SQLRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM campaigns GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting campaigns: %w", err)
	}
	defer rows.Close()

	counts := map[Status]int{}
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCampaign(s scanner) (*Campaign, error) {
	var (
		c            Campaign
		channels     pq.StringArray
		warnings     pq.StringArray
		specJSON     []byte
		audienceJSON []byte
		scheduleJSON []byte
		contentJSON  []byte
		metricsJSON  []byte
		brandVoice   sql.NullString
	)

	err := s.Scan(
		&c.ID, &c.UserID, &c.ConversationID, &c.Name, &c.Goal, &c.Status,
		&channels, &specJSON, &audienceJSON, &c.Budget, &scheduleJSON,
		&brandVoice, &contentJSON, &warnings, &metricsJSON,
		&c.CreatedAt, &c.UpdatedAt, &c.LaunchedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Channels = make([]intent.Channel, len(channels))
	for i, ch := range channels {
		c.Channels[i] = intent.Channel(ch)
	}
	c.Warnings = warnings
	c.BrandVoice = brandVoice.String

	if err := json.Unmarshal(specJSON, &c.ContentSpec); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(audienceJSON, &c.AudienceCriteria); err != nil {
		return nil, err
	}
	if len(scheduleJSON) > 0 {
		var sched intent.Schedule
		if err := json.Unmarshal(scheduleJSON, &sched); err != nil {
			return nil, err
		}
		c.Schedule = &sched
	}
	if len(metricsJSON) > 0 {
		if err := json.Unmarshal(metricsJSON, &c.Metrics); err != nil {
			return nil, err
		}
	}

	c.Content, err = content.DecodeMap(contentJSON)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func channelStrings(channels []intent.Channel) []string {
	out := make([]string, len(channels))
	for i, ch := range channels {
		out[i] = string(ch)
	}
	return out
}

func marshalNullable(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	if s, ok := v.(*intent.Schedule); ok && s == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFoundError("campaign")
	}
	return nil
}

var _ Repository = (*SQLRepository)(nil)
