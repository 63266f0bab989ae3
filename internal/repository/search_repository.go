package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ZvonimirSimic/weather-service/internal/domain"
)

// SearchRepository encapsulates search history persistence and the
// aggregate queries behind the statistics endpoints. All per-user queries
// take the id extracted from the verified token, never a client value.
type SearchRepository interface {
	Create(ctx context.Context, search *domain.Search) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Search, error)
	TopCities(ctx context.Context, userID int64, limit int) ([]domain.CityCount, error)
	Recent(ctx context.Context, userID int64, limit int) ([]domain.Search, error)
	ConditionCounts(ctx context.Context, userID int64) ([]domain.ConditionCount, error)
}

type searchRepository struct {
	pool *pgxpool.Pool
}

// NewSearchRepository instantiates repository.
func NewSearchRepository(pool *pgxpool.Pool) SearchRepository {
	return &searchRepository{pool: pool}
}

func (r *searchRepository) Create(ctx context.Context, search *domain.Search) error {
	const query = `
        INSERT INTO searches (user_id, city, query_time, temp, description, icon)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		search.UserID,
		search.City,
		search.QueryTime,
		search.Temp,
		search.Description,
		search.Icon,
	).Scan(&search.ID, &search.CreatedAt)
}

func (r *searchRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Search, error) {
	const query = `
        SELECT id, user_id, city, query_time, temp, description, icon, created_at
        FROM searches WHERE user_id=$1
        ORDER BY query_time DESC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSearches(rows)
}

func (r *searchRepository) TopCities(ctx context.Context, userID int64, limit int) ([]domain.CityCount, error) {
	const query = `
        SELECT city, COUNT(*) AS cnt
        FROM searches WHERE user_id=$1
        GROUP BY city
        ORDER BY cnt DESC
        LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]domain.CityCount, 0, limit)
	for rows.Next() {
		var c domain.CityCount
		if err := rows.Scan(&c.City, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func (r *searchRepository) Recent(ctx context.Context, userID int64, limit int) ([]domain.Search, error) {
	return r.ListByUser(ctx, userID, limit)
}

func (r *searchRepository) ConditionCounts(ctx context.Context, userID int64) ([]domain.ConditionCount, error) {
	const query = `
        SELECT description, COUNT(*) AS cnt
        FROM searches WHERE user_id=$1
        GROUP BY description
        ORDER BY cnt DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []domain.ConditionCount
	for rows.Next() {
		var c domain.ConditionCount
		if err := rows.Scan(&c.Condition, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

func scanSearches(rows pgx.Rows) ([]domain.Search, error) {
	var searches []domain.Search
	for rows.Next() {
		var s domain.Search
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.City,
			&s.QueryTime,
			&s.Temp,
			&s.Description,
			&s.Icon,
			&s.CreatedAt,
		); err != nil {
			return nil, err
		}
		searches = append(searches, s)
	}
	return searches, rows.Err()
}
