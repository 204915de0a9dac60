package export_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxstatmose/edu-practice-parser/internal/export"
	"github.com/lxstatmose/edu-practice-parser/internal/model"
)

func sample() []model.Vacancy {
	from, to := 100000, 150000
	return []model.Vacancy{
		{
			Title: "Golang Developer", Area: "Москва",
			Salary:     &model.Salary{From: &from, To: &to, Currency: "RUR"},
			Experience: "От 1 года до 3 лет", Employment: "Полная занятость", Schedule: "Удаленная работа",
			Roles:   []string{"Программист, разработчик", "Аналитик"},
			Snippet: "Писать <highlighttext>Go</highlighttext>", Employer: "Acme", URL: "https://hh.ru/vacancy/1",
		},
		{
			Title: "Стажер Go", Area: "Казань",
			Experience: "Без опыта", Employment: "Стажировка",
			Roles: []string{}, Employer: model.EmployerUnknown, URL: "https://hh.ru/vacancy/2",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, sample()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, export.Header, records[0])
	assert.Equal(t, []string{
		"Golang Developer", "Москва", "100 000 - 150 000 RUR", "От 1 года до 3 лет",
		"Полная занятость", "Удаленная работа", "Программист, разработчик, Аналитик",
		"Писать Go", "Acme", "https://hh.ru/vacancy/1",
	}, records[1])
	assert.Equal(t, "Не указана", records[2][2])
	assert.Equal(t, "", records[2][6])
	assert.Equal(t, "Не указано", records[2][8])
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, nil))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestTempFile(t *testing.T) {
	path, err := export.TempFile(sample())
	require.NoError(t, err)
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 3)
}
