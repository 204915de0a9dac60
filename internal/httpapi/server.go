// Package httpapi exposes the stored vacancy set over HTTP.
//
// Routes:
//
//	GET /health                → liveness
//	GET /vacancies             → stored vacancies as JSON, in insertion order
//	GET /vacancies/export.csv  → the same set as a CSV download
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lxstatmose/edu-practice-parser/internal/archive"
	"github.com/lxstatmose/edu-practice-parser/internal/export"
	"github.com/lxstatmose/edu-practice-parser/internal/model"
)

// Version is reported by /health.
const Version = "1.0.0"

// ─── Handler ─────────────────────────────────────────────────────────────────

// Handler holds shared dependencies.
type Handler struct {
	archive *archive.Adapter
	log     *slog.Logger
}

func NewHandler(a *archive.Adapter, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{archive: a, log: logger}
}

// Router builds the gin engine with every route mounted.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	_ = r.SetTrustedProxies(nil)

	r.GET("/health", h.health)
	r.GET("/vacancies", h.listVacancies)
	r.GET("/vacancies/export.csv", h.exportCSV)
	return r
}

// ─── Response types ──────────────────────────────────────────────────────────

// VacancyList is the JSON shape of GET /vacancies.
type VacancyList struct {
	Count     int             `json:"count"`
	Vacancies []model.Vacancy `json:"vacancies"`
}

// ─── Individual handlers ─────────────────────────────────────────────────────

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "vacancy-bot",
		"version": Version,
	})
}

func (h *Handler) listVacancies(c *gin.Context) {
	all, err := h.archive.FetchAll(c.Request.Context())
	if err != nil {
		h.log.Error("list vacancies", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if all == nil {
		all = []model.Vacancy{}
	}
	c.JSON(http.StatusOK, VacancyList{Count: len(all), Vacancies: all})
}

func (h *Handler) exportCSV(c *gin.Context) {
	all, err := h.archive.FetchAll(c.Request.Context())
	if err != nil {
		h.log.Error("export vacancies", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}
	if len(all) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": archive.ErrNothingToExport.Error()})
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	c.Status(http.StatusOK)
	if err := export.WriteCSV(c.Writer, all); err != nil {
		h.log.Error("write csv", "err", err)
	}
}

// ─── Server ──────────────────────────────────────────────────────────────────

// Server runs the router until Shutdown.
type Server struct {
	srv *http.Server
}

func NewServer(port string, h *Handler) *Server {
	return &Server{srv: &http.Server{
		Addr:         ":" + port,
		Handler:      h.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}}
}

// ListenAndServe blocks until the server stops. A graceful Shutdown is not
// reported as an error.
func (s *Server) ListenAndServe() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
