// Package storage persists saved vacancies in PostgreSQL.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lxstatmose/edu-practice-parser/internal/model"
)

const createTableSQL = `
	CREATE TABLE IF NOT EXISTS vacancies (
		id                 SERIAL PRIMARY KEY,
		name               TEXT,
		area               TEXT,
		salary             JSONB,
		experience         TEXT,
		employment         TEXT,
		schedule           TEXT,
		professional_roles TEXT[],
		snippet            TEXT,
		employer           TEXT,
		url                TEXT
	)`

// Postgres is the vacancies table. It keeps no per-row identity beyond
// insertion order.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps an open pool.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the table if it does not exist yet.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create vacancies table: %w", err)
	}
	return nil
}

// Insert appends all vacancies in one batch.
func (p *Postgres) Insert(ctx context.Context, vacancies []model.Vacancy) error {
	if len(vacancies) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, v := range vacancies {
		salary, err := salaryJSON(v.Salary)
		if err != nil {
			return err
		}
		roles := v.Roles
		if roles == nil {
			roles = []string{}
		}
		batch.Queue(
			`INSERT INTO vacancies
			   (name, area, salary, experience, employment, schedule, professional_roles, snippet, employer, url)
			 VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7, $8, $9, $10)`,
			v.Title, v.Area, salary, v.Experience, v.Employment, v.Schedule, roles, v.Snippet, v.Employer, v.URL,
		)
	}

	br := p.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range vacancies {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert vacancy: %w", err)
		}
	}
	return br.Close()
}

// All returns every stored vacancy in insertion order.
func (p *Postgres) All(ctx context.Context) ([]model.Vacancy, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT name, area, salary, experience, employment, schedule, professional_roles, snippet, employer, url
		 FROM vacancies
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query vacancies: %w", err)
	}
	defer rows.Close()

	vacancies := make([]model.Vacancy, 0)
	for rows.Next() {
		var (
			v          model.Vacancy
			salary     []byte
			name, area *string
			exp, emp   *string
			schedule   *string
			snippet    *string
			employer   *string
			url        *string
		)
		if err := rows.Scan(
			&name, &area, &salary, &exp, &emp, &schedule, &v.Roles, &snippet, &employer, &url,
		); err != nil {
			return nil, fmt.Errorf("scan vacancy: %w", err)
		}
		v.Title, v.Area = deref(name), deref(area)
		v.Experience, v.Employment, v.Schedule = deref(exp), deref(emp), deref(schedule)
		v.Snippet, v.Employer, v.URL = deref(snippet), deref(employer), deref(url)
		if v.Roles == nil {
			v.Roles = []string{}
		}
		if len(salary) > 0 && string(salary) != "null" {
			v.Salary = &model.Salary{}
			if err := json.Unmarshal(salary, v.Salary); err != nil {
				return nil, fmt.Errorf("decode salary: %w", err)
			}
		}
		vacancies = append(vacancies, v)
	}
	return vacancies, rows.Err()
}

// Truncate removes every stored vacancy.
func (p *Postgres) Truncate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, `TRUNCATE TABLE vacancies`); err != nil {
		return fmt.Errorf("truncate vacancies: %w", err)
	}
	return nil
}

func salaryJSON(s *model.Salary) (*string, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode salary: %w", err)
	}
	str := string(b)
	return &str, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
