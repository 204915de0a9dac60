// Package render formats vacancies for chat messages and CSV cells.
package render

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lxstatmose/edu-practice-parser/internal/model"
)

const (
	SalaryUnknown = "Не указана"
	separator     = "------------------------------"
)

// Salary renders a salary range: "a - b CUR", "от a CUR", "до b CUR"
// or SalaryUnknown. Zero bounds count as absent.
func Salary(s *model.Salary) string {
	if s == nil {
		return SalaryUnknown
	}
	from, to := bound(s.From), bound(s.To)
	switch {
	case from > 0 && to > 0:
		return formatNumber(from) + " - " + formatNumber(to) + " " + s.Currency
	case from > 0:
		return "от " + formatNumber(from) + " " + s.Currency
	case to > 0:
		return "до " + formatNumber(to) + " " + s.Currency
	}
	return SalaryUnknown
}

func bound(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// formatNumber separates thousands with spaces: 150000 → "150 000".
func formatNumber(num int) string {
	if num >= 1000 {
		return formatNumber(num/1000) + " " + fmt.Sprintf("%03d", num%1000)
	}
	return fmt.Sprintf("%d", num)
}

// PlainText drops the markup hh.ru puts into snippets
// (<highlighttext>…</highlighttext>) and keeps the text.
func PlainText(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}

// Roles joins role names with ", ".
func Roles(roles []string) string {
	return strings.Join(roles, ", ")
}

// Vacancy renders one vacancy as a single chat message.
func Vacancy(v model.Vacancy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Название: %s\n", v.Title)
	fmt.Fprintf(&b, "Регион: %s\n", v.Area)
	fmt.Fprintf(&b, "Зарплата: %s\n", Salary(v.Salary))
	fmt.Fprintf(&b, "Опыт: %s\n", v.Experience)
	fmt.Fprintf(&b, "Тип занятости: %s\n", v.Employment)
	fmt.Fprintf(&b, "График работы: %s\n", v.Schedule)
	fmt.Fprintf(&b, "Роли: %s\n", Roles(v.Roles))
	fmt.Fprintf(&b, "Описание: %s\n", PlainText(v.Snippet))
	fmt.Fprintf(&b, "Компания: %s\n", v.Employer)
	fmt.Fprintf(&b, "Ссылка: %s\n", v.URL)
	b.WriteString(separator)
	return b.String()
}

// Vacancies renders one message per vacancy.
func Vacancies(vs []model.Vacancy) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, Vacancy(v))
	}
	return out
}
