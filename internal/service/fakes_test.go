package service

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ZvonimirSimic/weather-service/internal/domain"
)

var pgconnUniqueViolation = pgconn.PgError{Code: "23505", ConstraintName: "ux_users_username"}

// memUserRepo is an in-memory UserRepository mirroring the Postgres
// behavior the service relies on: ErrNoRows on miss and a unique-violation
// PgError on duplicate insert.
type memUserRepo struct {
	nextID int64
	users  map[string]*domain.User

	createErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.users[user.Username]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "ux_users_username"}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now().UTC()
	clone := *user
	r.users[user.Username] = &clone
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

// memSearchRepo is an in-memory SearchRepository.
type memSearchRepo struct {
	nextID   int64
	searches []domain.Search

	lastListLimit int
	createErr     error
}

func newMemSearchRepo() *memSearchRepo {
	return &memSearchRepo{}
}

func (r *memSearchRepo) Create(_ context.Context, search *domain.Search) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	search.ID = r.nextID
	search.CreatedAt = time.Now().UTC()
	r.searches = append(r.searches, *search)
	return nil
}

func (r *memSearchRepo) byUser(userID int64) []domain.Search {
	var out []domain.Search
	for _, s := range r.searches {
		if s.UserID != nil && *s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QueryTime.After(out[j].QueryTime) })
	return out
}

func (r *memSearchRepo) ListByUser(_ context.Context, userID int64, limit int) ([]domain.Search, error) {
	r.lastListLimit = limit
	out := r.byUser(userID)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memSearchRepo) TopCities(_ context.Context, userID int64, limit int) ([]domain.CityCount, error) {
	counts := make(map[string]int64)
	for _, s := range r.byUser(userID) {
		counts[s.City]++
	}
	out := make([]domain.CityCount, 0, len(counts))
	for city, count := range counts {
		out = append(out, domain.CityCount{City: city, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].City < out[j].City
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memSearchRepo) Recent(ctx context.Context, userID int64, limit int) ([]domain.Search, error) {
	return r.ListByUser(ctx, userID, limit)
}

func (r *memSearchRepo) ConditionCounts(_ context.Context, userID int64) ([]domain.ConditionCount, error) {
	counts := make(map[string]int64)
	for _, s := range r.byUser(userID) {
		counts[s.Description]++
	}
	out := make([]domain.ConditionCount, 0, len(counts))
	for condition, count := range counts {
		out = append(out, domain.ConditionCount{Condition: condition, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Condition < out[j].Condition
	})
	return out, nil
}

// fakeProvider is a canned ForecastProvider.
type fakeProvider struct {
	entries       []domain.ForecastEntry
	current       *domain.CurrentConditions
	err           error
	lastCity      string
	forecastCalls int
}

func (p *fakeProvider) Forecast(_ context.Context, city string) ([]domain.ForecastEntry, error) {
	p.forecastCalls++
	p.lastCity = city
	if p.err != nil {
		return nil, p.err
	}
	return p.entries, nil
}

func (p *fakeProvider) Current(_ context.Context, _, _ float64) (*domain.CurrentConditions, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.current, nil
}
