package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lxstatmose/edu-practice-parser/internal/model"
)

func intp(v int) *int { return &v }

func TestSalary(t *testing.T) {
	cases := []struct {
		name string
		in   *model.Salary
		want string
	}{
		{"nil", nil, "Не указана"},
		{"both", &model.Salary{From: intp(100000), To: intp(150000), Currency: "RUR"}, "100 000 - 150 000 RUR"},
		{"from only", &model.Salary{From: intp(80000), Currency: "RUR"}, "от 80 000 RUR"},
		{"to only", &model.Salary{To: intp(3500), Currency: "USD"}, "до 3 500 USD"},
		{"small", &model.Salary{From: intp(100), To: intp(200), Currency: "EUR"}, "100 - 200 EUR"},
		{"no bounds", &model.Salary{Currency: "RUR"}, "Не указана"},
		{"zero bounds", &model.Salary{From: intp(0), To: intp(0), Currency: "RUR"}, "Не указана"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Salary(c.in), c.name)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", formatNumber(0))
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1 000", formatNumber(1000))
	assert.Equal(t, "1 234 567", formatNumber(1234567))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "без разметки", PlainText("без разметки"))
	assert.Equal(t, "Писать на Golang и Python",
		PlainText("Писать на <highlighttext>Golang</highlighttext> и <highlighttext>Python</highlighttext>"))
	assert.Equal(t, "", PlainText(""))
}

func TestVacancy_Block(t *testing.T) {
	v := model.Vacancy{
		Title:      "Golang Developer",
		Area:       "Москва",
		Salary:     &model.Salary{From: intp(200000), Currency: "RUR"},
		Experience: "От 1 года до 3 лет",
		Employment: "Полная занятость",
		Schedule:   "",
		Roles:      []string{"Программист", "Тестировщик"},
		Snippet:    "<highlighttext>Golang</highlighttext> сервисы",
		Employer:   model.EmployerUnknown,
		URL:        "https://hh.ru/vacancy/1",
	}

	want := strings.Join([]string{
		"Название: Golang Developer",
		"Регион: Москва",
		"Зарплата: от 200 000 RUR",
		"Опыт: От 1 года до 3 лет",
		"Тип занятости: Полная занятость",
		"График работы: ",
		"Роли: Программист, Тестировщик",
		"Описание: Golang сервисы",
		"Компания: Не указано",
		"Ссылка: https://hh.ru/vacancy/1",
		"------------------------------",
	}, "\n")

	assert.Equal(t, want, Vacancy(v))
}

func TestVacancies_OnePerRecord(t *testing.T) {
	vs := []model.Vacancy{{Title: "a", URL: "u1"}, {Title: "b", URL: "u2"}}
	out := Vacancies(vs)
	assert.Len(t, out, 2)
	assert.True(t, strings.HasPrefix(out[1], "Название: b\n"))
	assert.Empty(t, Vacancies(nil))
}
