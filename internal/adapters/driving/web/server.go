// Package web exposes the library over HTTP for the browser reader.
package web

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/foliolabs/folio/internal/core/ports/driving"
)

// Server is the HTTP driving adapter.
type Server struct {
	echo       *echo.Echo
	library    driving.LibraryService
	highlights driving.HighlightService
	chat       driving.ChatService
	search     driving.SearchService
}

// NewServer creates the HTTP server and registers all routes.
func NewServer(
	library driving.LibraryService,
	highlights driving.HighlightService,
	chat driving.ChatService,
	search driving.SearchService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		echo:       e,
		library:    library,
		highlights: highlights,
		chat:       chat,
		search:     search,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/health", s.health)

	api := s.echo.Group("/api")

	api.GET("/books", s.listBooks)
	api.POST("/books", s.uploadBook)
	api.GET("/books/:id", s.getBook)
	api.DELETE("/books/:id", s.deleteBook)
	api.GET("/books/:id/file", s.downloadPayload)
	api.GET("/books/:id/pages/:page", s.getPage)
	api.PUT("/books/:id/position", s.setPosition)
	api.POST("/books/:id/bookmarks/:page", s.toggleBookmark)
	api.PUT("/books/:id/color", s.setColor)

	api.GET("/books/:id/highlights", s.listHighlights)
	api.POST("/books/:id/highlights", s.createHighlight)
	api.GET("/books/:id/highlights/export", s.exportHighlights)
	api.DELETE("/highlights/:id", s.deleteHighlight)

	api.GET("/books/:id/chat", s.chatHistory)
	api.POST("/books/:id/chat", s.chatAsk)

	api.GET("/search", s.searchLibrary)
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
