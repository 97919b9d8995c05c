package soiltest

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new soil test record.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO soil_tests (
    id,
    user_id,
    ph,
    moisture,
    nitrogen,
    phosphorus,
    potassium,
    organic_matter,
    original_filename,
    tested_at,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.UserID,
		nullable(rec.Ph),
		nullable(rec.Moisture),
		nullable(rec.Nitrogen),
		nullable(rec.Phosphorus),
		nullable(rec.Potassium),
		nullable(rec.OrganicMatter),
		rec.OriginalFilename,
		rec.TestedAt,
		rec.CreatedAt,
	)
	return err
}

// LatestByUser returns the most recent record for a user by test date,
// breaking ties on insertion time.
func (r *PGRepo) LatestByUser(ctx context.Context, userID string) (Record, error) {
	const query = `
SELECT id, user_id, ph, moisture, nitrogen, phosphorus, potassium, organic_matter, original_filename, tested_at, created_at
FROM soil_tests
WHERE user_id = $1
ORDER BY tested_at DESC, created_at DESC
LIMIT 1`

	var rec Record
	var ph, moisture, nitrogen, phosphorus, potassium, organicMatter sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&rec.ID,
		&rec.UserID,
		&ph,
		&moisture,
		&nitrogen,
		&phosphorus,
		&potassium,
		&organicMatter,
		&rec.OriginalFilename,
		&rec.TestedAt,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	rec.Ph = fromNull(ph)
	rec.Moisture = fromNull(moisture)
	rec.Nitrogen = fromNull(nitrogen)
	rec.Phosphorus = fromNull(phosphorus)
	rec.Potassium = fromNull(potassium)
	rec.OrganicMatter = fromNull(organicMatter)
	return rec, nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

var _ Repo = (*PGRepo)(nil)
