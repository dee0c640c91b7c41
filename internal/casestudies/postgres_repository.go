package casestudies

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores the collection in the case_studies table.
// The snake_case side_images/content JSONB columns are mapped to the
// external camelCase shape here.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const caseStudyColumns = `id, title, client, date, duration, industry, category, image, side_images, content`

func scanCaseStudy(row pgx.Row) (CaseStudy, error) {
	var cs CaseStudy
	err := row.Scan(
		&cs.ID,
		&cs.Title,
		&cs.Client,
		&cs.Date,
		&cs.Duration,
		&cs.Industry,
		&cs.Category,
		&cs.Image,
		&cs.SideImages,
		&cs.Content,
	)
	return cs, err
}

func (r *PostgresRepository) List(ctx context.Context) ([]CaseStudy, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+caseStudyColumns+`
		FROM case_studies
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list case studies: %w", err)
	}
	defer rows.Close()

	items := make([]CaseStudy, 0)
	for rows.Next() {
		cs, err := scanCaseStudy(rows)
		if err != nil {
			return nil, fmt.Errorf("list case studies: %w", err)
		}
		items = append(items, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list case studies: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (CaseStudy, error) {
	cs, err := scanCaseStudy(r.pool.QueryRow(ctx, `
		SELECT `+caseStudyColumns+`
		FROM case_studies
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CaseStudy{}, ErrNotFound
		}
		return CaseStudy{}, fmt.Errorf("get case study: %w", err)
	}
	return cs, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item CaseStudy) (CaseStudy, error) {
	// Id assignment and insert happen in one statement, so two
	// concurrent creates cannot both read the same max.
	err := r.pool.QueryRow(ctx, `
		INSERT INTO case_studies (id, title, client, date, duration, industry, category, image, side_images, content)
		VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM case_studies), $1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`,
		item.Title,
		item.Client,
		item.Date,
		item.Duration,
		item.Industry,
		item.Category,
		item.Image,
		item.SideImages,
		item.Content,
	).Scan(&item.ID)
	if err != nil {
		return CaseStudy{}, fmt.Errorf("create case study: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, patch Patch) (CaseStudy, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return CaseStudy{}, fmt.Errorf("update case study: %w", err)
	}
	defer tx.Rollback(ctx)

	cs, err := scanCaseStudy(tx.QueryRow(ctx, `
		SELECT `+caseStudyColumns+`
		FROM case_studies
		WHERE id = $1
		FOR UPDATE
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CaseStudy{}, ErrNotFound
		}
		return CaseStudy{}, fmt.Errorf("update case study: %w", err)
	}

	patch.Apply(&cs)

	_, err = tx.Exec(ctx, `
		UPDATE case_studies
		SET title = $2, client = $3, date = $4, duration = $5, industry = $6,
		    category = $7, image = $8, side_images = $9, content = $10
		WHERE id = $1
	`,
		id,
		cs.Title,
		cs.Client,
		cs.Date,
		cs.Duration,
		cs.Industry,
		cs.Category,
		cs.Image,
		cs.SideImages,
		cs.Content,
	)
	if err != nil {
		return CaseStudy{}, fmt.Errorf("update case study: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return CaseStudy{}, fmt.Errorf("update case study: %w", err)
	}
	return cs, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.pool.Exec(ctx, `DELETE FROM case_studies WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete case study: %w", err)
	}
	return res.RowsAffected() > 0, nil
}
