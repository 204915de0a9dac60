// Package archive saves search results into the vacancy store and reads
// them back for export. It is transport-agnostic: the dialogue controller
// and the HTTP surface both use it.
package archive

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/lxstatmose/edu-practice-parser/internal/export"
	"github.com/lxstatmose/edu-practice-parser/internal/model"
	"github.com/lxstatmose/edu-practice-parser/internal/render"
)

var (
	// ErrNothingToSave is returned by Save when there are no results.
	ErrNothingToSave = errors.New("nothing to save")
	// ErrNothingToExport is returned when the store is empty.
	ErrNothingToExport = errors.New("nothing to export")
)

// Store is the append/read/truncate record store.
type Store interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, vacancies []model.Vacancy) error
	All(ctx context.Context) ([]model.Vacancy, error)
	Truncate(ctx context.Context) error
}

// Results is the last search result list of a session.
type Results interface {
	Results() []model.Vacancy
	ClearResults()
}

// Adapter wraps a Store with the save/export rules.
type Adapter struct {
	store Store
}

// New returns an Adapter over store.
func New(store Store) *Adapter {
	return &Adapter{store: store}
}

// Save appends the session results to the store and clears them.
func (a *Adapter) Save(ctx context.Context, r Results) (int, error) {
	vacancies := r.Results()
	if len(vacancies) == 0 {
		return 0, ErrNothingToSave
	}
	if err := a.store.EnsureSchema(ctx); err != nil {
		return 0, err
	}
	if err := a.store.Insert(ctx, vacancies); err != nil {
		return 0, err
	}
	r.ClearResults()
	return len(vacancies), nil
}

// FetchAll returns every stored vacancy in insertion order.
func (a *Adapter) FetchAll(ctx context.Context) ([]model.Vacancy, error) {
	if err := a.store.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return a.store.All(ctx)
}

// Clear removes every stored vacancy. There is no undo.
func (a *Adapter) Clear(ctx context.Context) error {
	if err := a.store.EnsureSchema(ctx); err != nil {
		return err
	}
	return a.store.Truncate(ctx)
}

// HasData reports whether anything is stored.
func (a *Adapter) HasData(ctx context.Context) (bool, error) {
	all, err := a.FetchAll(ctx)
	if err != nil {
		return false, err
	}
	return len(all) > 0, nil
}

// ExportCSV writes the stored vacancies into a temporary CSV file. The
// returned cleanup removes the file; call it right after delivery.
func (a *Adapter) ExportCSV(ctx context.Context) (path string, cleanup func(), err error) {
	all, err := a.FetchAll(ctx)
	if err != nil {
		return "", nil, err
	}
	if len(all) == 0 {
		return "", nil, ErrNothingToExport
	}

	path, err = export.TempFile(all)
	if err != nil {
		return "", nil, fmt.Errorf("export csv: %w", err)
	}
	return path, func() { _ = os.Remove(path) }, nil
}

// ExportChat renders the stored vacancies as chat messages.
func (a *Adapter) ExportChat(ctx context.Context) ([]string, error) {
	all, err := a.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, ErrNothingToExport
	}
	return render.Vacancies(all), nil
}
