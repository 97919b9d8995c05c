package disease

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PGRepo implements Repo using Postgres. Preventive measures are stored as a
// JSON array in a text column.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts one detection.
func (r *PGRepo) Create(ctx context.Context, d Detection) error {
	measures, err := json.Marshal(d.PreventiveMeasures)
	if err != nil {
		return fmt.Errorf("encode preventive measures: %w", err)
	}

	const query = `
INSERT INTO disease_detections (
    id,
    storage_key,
    disease_name,
    confidence,
    description,
    treatment,
    preventive_measures,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.DB.ExecContext(
		ctx,
		query,
		d.ID,
		d.StorageKey,
		d.DiseaseName,
		d.Confidence,
		d.Description,
		d.Treatment,
		string(measures),
		d.CreatedAt,
	)
	return err
}

// Recent returns the newest detections first.
func (r *PGRepo) Recent(ctx context.Context, limit int) ([]Detection, error) {
	const query = `
SELECT id, storage_key, disease_name, confidence, description, treatment, preventive_measures, created_at
FROM disease_detections
ORDER BY created_at DESC
LIMIT $1`

	rows, err := r.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Detection
	for rows.Next() {
		var d Detection
		var measures string
		if err := rows.Scan(
			&d.ID,
			&d.StorageKey,
			&d.DiseaseName,
			&d.Confidence,
			&d.Description,
			&d.Treatment,
			&measures,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		if measures != "" {
			if err := json.Unmarshal([]byte(measures), &d.PreventiveMeasures); err != nil {
				return nil, fmt.Errorf("decode preventive measures for %s: %w", d.ID, err)
			}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
