// Package export writes vacancies as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/lxstatmose/edu-practice-parser/internal/model"
	"github.com/lxstatmose/edu-practice-parser/internal/render"
)

// Header is the fixed column order: title, region, salary, experience,
// employment, schedule, roles, description, employer, URL.
var Header = []string{
	"Название", "Регион", "Зарплата", "Опыт", "Тип занятости",
	"График работы", "Роли", "Описание", "Компания", "Ссылка",
}

// FileName is the name the document is delivered under.
const FileName = "vacancies.csv"

// WriteCSV writes the header and one row per vacancy.
func WriteCSV(w io.Writer, vacancies []model.Vacancy) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, v := range vacancies {
		if err := cw.Write(Row(v)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row is one vacancy as CSV cells, salary pre-formatted and roles joined.
func Row(v model.Vacancy) []string {
	return []string{
		v.Title,
		v.Area,
		render.Salary(v.Salary),
		v.Experience,
		v.Employment,
		v.Schedule,
		render.Roles(v.Roles),
		render.PlainText(v.Snippet),
		v.Employer,
		v.URL,
	}
}

// TempFile writes the CSV into a fresh temporary file and returns its path.
// The caller removes it once delivered.
func TempFile(vacancies []model.Vacancy) (string, error) {
	f, err := os.CreateTemp("", "vacancies-*.csv")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if err := WriteCSV(f, vacancies); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), nil
}
