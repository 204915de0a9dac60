package storage

import (
	"context"
	"sync"

	"github.com/lxstatmose/edu-practice-parser/internal/model"
)

// Memory is an in-process vacancy store with the same semantics as
// Postgres. Used in tests and when no database is wanted.
type Memory struct {
	mu        sync.Mutex
	vacancies []model.Vacancy
	schema    bool
}

// NewMemory returns an empty store.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) EnsureSchema(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schema = true
	return nil
}

func (m *Memory) Insert(_ context.Context, vacancies []model.Vacancy) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vacancies = append(m.vacancies, vacancies...)
	return nil
}

func (m *Memory) All(context.Context) ([]model.Vacancy, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Vacancy, len(m.vacancies))
	copy(out, m.vacancies)
	return out, nil
}

func (m *Memory) Truncate(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vacancies = nil
	return nil
}

// SchemaEnsured reports whether EnsureSchema has been called.
func (m *Memory) SchemaEnsured() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schema
}
