package dialogue_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxstatmose/edu-practice-parser/internal/archive"
	"github.com/lxstatmose/edu-practice-parser/internal/dialogue"
	"github.com/lxstatmose/edu-practice-parser/internal/model"
	"github.com/lxstatmose/edu-practice-parser/internal/search"
	"github.com/lxstatmose/edu-practice-parser/internal/storage"
)

type fakeSearcher struct {
	result []model.Vacancy
	err    error
	got    []search.Request
}

func (f *fakeSearcher) Search(_ context.Context, req search.Request) ([]model.Vacancy, error) {
	f.got = append(f.got, req)
	return f.result, f.err
}

type fixedRegion string

func (r fixedRegion) Resolve(context.Context, string) string { return string(r) }

type harness struct {
	ctrl     *dialogue.Controller
	searcher *fakeSearcher
	sessions *dialogue.MemorySessions
	store    *storage.Memory
}

func newHarness(result ...model.Vacancy) *harness {
	h := &harness{
		searcher: &fakeSearcher{result: result},
		sessions: dialogue.NewMemorySessions(),
		store:    storage.NewMemory(),
	}
	h.ctrl = dialogue.NewController(h.sessions, h.searcher, fixedRegion("1"), archive.New(h.store), nil)
	return h
}

func (h *harness) send(evs ...dialogue.Event) []dialogue.Reply {
	var last []dialogue.Reply
	for _, ev := range evs {
		last = h.ctrl.Handle(context.Background(), 42, 7, ev)
	}
	return last
}

func vacancy(title string) model.Vacancy {
	return model.Vacancy{Title: title, URL: "https://hh.ru/vacancy/" + title, Employer: model.EmployerUnknown}
}

func dialogueToSearch() []dialogue.Event {
	return append(toFilters(), dialogue.Choice(dialogue.ChoiceRunSearch))
}

// ── Search ─────────────────────────────────────────────────────────────────

func TestController_SearchRendersResults(t *testing.T) {
	h := newHarness(vacancy("Go developer"), vacancy("Senior Go"))

	replies := h.send(dialogueToSearch()...)

	require.Len(t, replies, 2)
	assert.Contains(t, replies[0].Text, "Название: Go developer")
	assert.Contains(t, replies[1].Text, "Название: Senior Go")

	require.Len(t, h.searcher.got, 1)
	req := h.searcher.got[0]
	assert.Equal(t, "Golang", req.Query)
	assert.Equal(t, "1", req.Region, "region goes through the resolver")
	assert.Equal(t, 10, req.Count)

	sess, err := h.sessions.Load(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, dialogue.StateIdle, sess.State)
	assert.Len(t, sess.LastResults, 2)
}

func TestController_SearchNothingFound(t *testing.T) {
	h := newHarness()

	replies := h.send(dialogueToSearch()...)

	require.Len(t, replies, 1)
	assert.Equal(t, "Вакансии не найдены.", replies[0].Text)
}

func TestController_SearchFailureIsGeneric(t *testing.T) {
	h := newHarness()
	h.searcher.err = errors.New("boom")

	replies := h.send(dialogueToSearch()...)

	require.Len(t, replies, 1)
	assert.Equal(t, "Произошла ошибка, попробуйте позже.", replies[0].Text)
}

func TestController_SessionSurvivesBetweenTurns(t *testing.T) {
	h := newHarness()
	h.send(dialogue.Command("search"), dialogue.Text("Go"))

	sess, err := h.sessions.Load(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, dialogue.StateRegion, sess.State)
	assert.Equal(t, "Go", sess.Query)
	assert.Equal(t, int64(7), sess.ChatID)
}

func TestController_StartDropsSession(t *testing.T) {
	h := newHarness()
	h.send(dialogue.Command("search"), dialogue.Text("Go"))

	replies := h.send(dialogue.Command("start"))
	require.Len(t, replies, 1)
	assert.NotEmpty(t, replies[0].Commands)

	sess, err := h.sessions.Load(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestController_UnknownCommandKeepsUnsavedResults(t *testing.T) {
	h := newHarness(vacancy("Go"))
	h.send(dialogueToSearch()...)

	replies := h.send(dialogue.Command("help"))
	require.Len(t, replies, 1)

	sess, err := h.sessions.Load(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Len(t, sess.LastResults, 1)

	replies = h.send(dialogue.Command("save"))
	assert.Equal(t, "Вакансии сохранены в базе данных.", replies[0].Text)
}

// ── Save / Clear ───────────────────────────────────────────────────────────

func TestController_SaveWithoutResults(t *testing.T) {
	h := newHarness()

	replies := h.send(dialogue.Command("save"))

	require.Len(t, replies, 1)
	assert.Equal(t, "Нет вакансий для сохранения.", replies[0].Text)
	all, _ := h.store.All(context.Background())
	assert.Empty(t, all)
}

func TestController_SaveThenClear(t *testing.T) {
	h := newHarness(vacancy("Go"))
	h.send(dialogueToSearch()...)

	replies := h.send(dialogue.Command("save"))
	require.Len(t, replies, 1)
	assert.Equal(t, "Вакансии сохранены в базе данных.", replies[0].Text)

	all, _ := h.store.All(context.Background())
	assert.Len(t, all, 1)

	// results are consumed by the first save
	replies = h.send(dialogue.Command("save"))
	assert.Equal(t, "Нет вакансий для сохранения.", replies[0].Text)

	replies = h.send(dialogue.Command("clear"))
	assert.Equal(t, "Все сохраненные вакансии были удалены.", replies[0].Text)
	all, _ = h.store.All(context.Background())
	assert.Empty(t, all)
}

// ── Export ─────────────────────────────────────────────────────────────────

func TestController_ExportEmptyStore(t *testing.T) {
	h := newHarness()

	for _, ev := range []dialogue.Event{
		dialogue.Command("export"),
		dialogue.Choice(dialogue.ChoiceExportCSV),
		dialogue.Choice(dialogue.ChoiceExportChat),
	} {
		replies := h.send(ev)
		require.Len(t, replies, 1)
		assert.Equal(t, "Нет данных для экспорта.", replies[0].Text)
		assert.Nil(t, replies[0].Document)
	}
}

func TestController_ExportMenuAndFormats(t *testing.T) {
	h := newHarness(vacancy("a"), vacancy("b"))
	h.send(dialogueToSearch()...)
	h.send(dialogue.Command("save"))

	replies := h.send(dialogue.Command("export"))
	require.Len(t, replies, 1)
	assert.Equal(t, "Выберите вариант экспорта:", replies[0].Text)
	require.Len(t, replies[0].Buttons, 2)
	assert.Equal(t, dialogue.ChoiceExportCSV, replies[0].Buttons[0][0].Data)

	replies = h.send(dialogue.Choice(dialogue.ChoiceExportChat))
	assert.Len(t, replies, 2)

	replies = h.send(dialogue.Choice(dialogue.ChoiceExportCSV))
	require.Len(t, replies, 1)
	doc := replies[0].Document
	require.NotNil(t, doc)
	assert.Equal(t, "vacancies.csv", doc.Name)
	_, err := os.Stat(doc.Path)
	require.NoError(t, err)

	doc.Cleanup()
	_, err = os.Stat(doc.Path)
	assert.True(t, os.IsNotExist(err))
}
