// Package server assembles the card editor web application on Echo.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/pthm/cardforge"
	webecho "github.com/pthm/cardforge/adapters/echo"
	"github.com/pthm/cardforge/editor"
	"github.com/pthm/cardforge/generation"
	"github.com/pthm/cardforge/web"
)

// Deps are the collaborators the server is built from.
type Deps struct {
	Secret    []byte
	Logger    *zap.Logger
	Cards     editor.CardStore
	Generator *generation.Service
}

// Server is the assembled application.
type Server struct {
	echo   *echo.Echo
	cards  editor.CardStore
	editor *editor.Editor
	logger *zap.Logger
}

// New builds the Echo application.
func New(d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	reg := web.NewRegistry(d.Secret, web.WithLogger(logger))
	ed := editor.New(d.Cards, d.Generator)
	reg.Add(ed)
	webecho.Mount(e, reg)

	s := &Server{echo: e, cards: d.Cards, editor: ed, logger: logger}
	e.GET("/", s.handleIndex)
	e.POST("/cards", s.handleCreate)
	e.GET("/cards/:id", s.handleCard)
	e.GET("/api/cards/:id/fingerprint", s.handleFingerprint)
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleIndex(c echo.Context) error {
	return webecho.Render(c, editor.Page("Cardforge", indexView()))
}

// handleCreate creates an empty card with one component and redirects to it.
func (s *Server) handleCreate(c echo.Context) error {
	card := cardforge.Card{
		ID:         uuid.NewString(),
		Components: cardforge.AddComponent(nil),
		Idea:       strings.TrimSpace(c.FormValue("idea")),
	}
	s.cards.Put(card)
	s.logger.Info("card created", zap.String("card", card.ID))
	return c.Redirect(http.StatusSeeOther, "/cards/"+card.ID)
}

func (s *Server) handleCard(c echo.Context) error {
	id := c.Param("id")
	view, err := s.editor.View(c.Request().Context(), id)
	if web.IsNotFound(err) {
		return echo.NewHTTPError(http.StatusNotFound, "card not found")
	}
	if err != nil {
		return err
	}
	return webecho.Render(c, editor.Page("Card "+id, view))
}

type fingerprintResponse struct {
	Card        string `json:"card"`
	Fingerprint string `json:"fingerprint"`
}

// handleFingerprint lets other instances compare content keys without
// fetching the card.
func (s *Server) handleFingerprint(c echo.Context) error {
	card, ok := s.cards.Get(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "card not found")
	}
	return c.JSON(http.StatusOK, fingerprintResponse{Card: card.ID, Fingerprint: card.Fingerprint()})
}

func indexView() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<main><h1>Cardforge</h1>`+
			`<form method="post" action="/cards"><label>Card idea <input name="idea"></label>`+
			`<button type="submit">New card</button></form></main>`)
		return err
	})
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Debug("request", fields...)
			return nil
		},
	})
}
