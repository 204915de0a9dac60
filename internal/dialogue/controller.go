package dialogue

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lxstatmose/edu-practice-parser/internal/archive"
	"github.com/lxstatmose/edu-practice-parser/internal/export"
	"github.com/lxstatmose/edu-practice-parser/internal/model"
	"github.com/lxstatmose/edu-practice-parser/internal/render"
	"github.com/lxstatmose/edu-practice-parser/internal/search"
)

// Searcher runs one bounded vacancy search.
type Searcher interface {
	Search(ctx context.Context, req search.Request) ([]model.Vacancy, error)
}

// RegionResolver turns the region typed by the user into an hh.ru area.
type RegionResolver interface {
	Resolve(ctx context.Context, region string) string
}

// Controller runs Transition for one turn and carries out its actions.
type Controller struct {
	sessions SessionStore
	searcher Searcher
	regions  RegionResolver
	archive  *archive.Adapter
	log      *slog.Logger
}

// NewController wires a Controller. regions may be nil, in which case the
// region text is sent to hh.ru unchanged.
func NewController(sessions SessionStore, searcher Searcher, regions RegionResolver, a *archive.Adapter, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		sessions: sessions,
		searcher: searcher,
		regions:  regions,
		archive:  a,
		log:      logger,
	}
}

// Handle processes one event from userID and returns the replies for chatID.
// Callers must not run two Handle calls for the same user concurrently.
func (c *Controller) Handle(ctx context.Context, userID, chatID int64, ev Event) []Reply {
	log := c.log.With("user_id", userID)

	sess, err := c.sessions.Load(ctx, userID)
	if err != nil {
		log.Error("load session", "err", err)
		return []Reply{text(msgInternalError)}
	}
	if sess == nil {
		sess = NewSession(userID, chatID)
	}
	sess.ChatID = chatID

	from := sess.State
	out := Transition(sess, ev)
	if !IsTransitionAllowed(from, out.State) {
		log.Error("illegal dialogue transition", "from", from, "to", out.State)
	}

	replies := append(out.Replies, c.perform(ctx, log, sess, out.Action)...)

	if out.Reset {
		err = c.sessions.Delete(ctx, userID)
	} else {
		err = c.sessions.Save(ctx, sess)
	}
	if err != nil {
		log.Error("store session", "err", err)
	}
	return replies
}

func (c *Controller) perform(ctx context.Context, log *slog.Logger, sess *Session, action Action) []Reply {
	switch action {
	case ActionRunSearch:
		return c.runSearch(ctx, log, sess)
	case ActionSave:
		return c.save(ctx, log, sess)
	case ActionExportMenu:
		return c.exportMenu(ctx, log)
	case ActionExportCSV:
		return c.exportCSV(ctx, log)
	case ActionExportChat:
		return c.exportChat(ctx, log)
	case ActionClear:
		if err := c.archive.Clear(ctx); err != nil {
			log.Error("clear vacancies", "err", err)
			return []Reply{text(msgInternalError)}
		}
		return []Reply{text(msgCleared)}
	}
	return nil
}

func (c *Controller) runSearch(ctx context.Context, log *slog.Logger, sess *Session) []Reply {
	region := sess.Region
	if c.regions != nil {
		region = c.regions.Resolve(ctx, region)
	}

	vacancies, err := c.searcher.Search(ctx, sess.Request(region))
	if err != nil {
		log.Error("search vacancies", "query", sess.Query, "err", err)
		return []Reply{text(msgInternalError)}
	}
	sess.LastResults = vacancies
	log.Info("search completed", "query", sess.Query, "region", region, "found", len(vacancies))

	if len(vacancies) == 0 {
		return []Reply{text(msgNotFound)}
	}
	replies := make([]Reply, 0, len(vacancies))
	for _, block := range render.Vacancies(vacancies) {
		replies = append(replies, text(block))
	}
	return replies
}

func (c *Controller) save(ctx context.Context, log *slog.Logger, sess *Session) []Reply {
	n, err := c.archive.Save(ctx, sess)
	switch {
	case errors.Is(err, archive.ErrNothingToSave):
		return []Reply{text(msgNothingToSave)}
	case err != nil:
		log.Error("save vacancies", "err", err)
		return []Reply{text(msgInternalError)}
	}
	log.Info("vacancies saved", "count", n)
	return []Reply{text(msgSaved)}
}

func (c *Controller) exportMenu(ctx context.Context, log *slog.Logger) []Reply {
	has, err := c.archive.HasData(ctx)
	if err != nil {
		log.Error("check stored vacancies", "err", err)
		return []Reply{text(msgInternalError)}
	}
	if !has {
		return []Reply{text(msgNothingToExport)}
	}
	return []Reply{exportMenu()}
}

func (c *Controller) exportCSV(ctx context.Context, log *slog.Logger) []Reply {
	path, cleanup, err := c.archive.ExportCSV(ctx)
	switch {
	case errors.Is(err, archive.ErrNothingToExport):
		return []Reply{text(msgNothingToExport)}
	case err != nil:
		log.Error("export csv", "err", err)
		return []Reply{text(msgInternalError)}
	}
	return []Reply{{Document: &Document{Path: path, Name: export.FileName, Cleanup: cleanup}}}
}

func (c *Controller) exportChat(ctx context.Context, log *slog.Logger) []Reply {
	blocks, err := c.archive.ExportChat(ctx)
	switch {
	case errors.Is(err, archive.ErrNothingToExport):
		return []Reply{text(msgNothingToExport)}
	case err != nil:
		log.Error("export chat", "err", err)
		return []Reply{text(msgInternalError)}
	}
	replies := make([]Reply, 0, len(blocks))
	for _, b := range blocks {
		replies = append(replies, text(b))
	}
	return replies
}
