package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

var ErrNotFound = sql.ErrNoRows

// AssessmentRepo keeps a history of completed assessments, keyed by
// image hash so a resubmitted photo can be answered from cache instead
// of a second paid model call.
type AssessmentRepo struct{ DB *sql.DB }

func NewAssessmentRepo(db *sql.DB) *AssessmentRepo { return &AssessmentRepo{DB: db} }

type AssessmentRow struct {
	ID        int64
	CreatedAt time.Time
	ChatID    int64
	Source    string
	ImageHash string
	Engine    string
	Model     string
	Result    json.RawMessage
}

// Insert stores one completed assessment. Duplicate (image_hash, engine,
// model) rows are overwritten with the fresh result.
func (r *AssessmentRepo) Insert(ctx context.Context, row AssessmentRow) error {
	const q = `
insert into assessments (
  chat_id, source, image_hash, engine, model, result_json
) values ($1,$2,$3,$4,$5,$6)
on conflict (image_hash, engine, model) do update
set chat_id = excluded.chat_id,
    source = excluded.source,
    result_json = excluded.result_json`
	_, err := r.DB.ExecContext(ctx, q,
		row.ChatID, row.Source, row.ImageHash, row.Engine, row.Model, []byte(row.Result))
	return err
}

// FindByHash returns the freshest assessment for (image_hash, engine,
// model). If maxAge > 0 older rows count as not found.
func (r *AssessmentRepo) FindByHash(ctx context.Context, imageHash, engine, model string, maxAge time.Duration) (*AssessmentRow, error) {
	const q = `
select id, created_at,
       coalesce(chat_id,0) as chat_id,
       coalesce(source,'') as source,
       image_hash, engine, model, result_json
from assessments
where image_hash = $1 and engine = $2 and model = $3
order by created_at desc
limit 1`
	row := r.DB.QueryRowContext(ctx, q, imageHash, engine, model)

	var out AssessmentRow
	var js []byte
	if err := row.Scan(&out.ID, &out.CreatedAt, &out.ChatID, &out.Source,
		&out.ImageHash, &out.Engine, &out.Model, &js); err != nil {
		return nil, err
	}
	if maxAge > 0 && time.Since(out.CreatedAt) > maxAge {
		return nil, ErrNotFound
	}
	out.Result = js
	return &out, nil
}

// PurgeOlderThan deletes stale history rows so the table stays small.
func (r *AssessmentRepo) PurgeOlderThan(ctx context.Context, olderThan time.Duration) (int64, error) {
	if olderThan <= 0 {
		return 0, errors.New("olderThan must be > 0")
	}
	cutoff := time.Now().Add(-olderThan)
	const q = `delete from assessments where created_at < $1`
	res, err := r.DB.ExecContext(ctx, q, cutoff)
	if err != nil {
		return 0, err
	}
	aff, _ := res.RowsAffected()
	return aff, nil
}
