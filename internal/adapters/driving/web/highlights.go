package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foliolabs/folio/internal/core/domain"
)

func (s *Server) listHighlights(c echo.Context) error {
	highlights, err := s.highlights.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}

	dtos := make([]highlightDTO, 0, len(highlights))
	for i := range highlights {
		dtos = append(dtos, toHighlightDTO(&highlights[i]))
	}
	return c.JSON(http.StatusOK, dtos)
}

type createHighlightRequest struct {
	Page  int    `json:"page"`
	Text  string `json:"text"`
	Color string `json:"color"`
	Note  string `json:"note"`
}

func (s *Server) createHighlight(c echo.Context) error {
	var req createHighlightRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}

	h, err := s.highlights.Create(
		c.Request().Context(),
		c.Param("id"), req.Page, req.Text,
		domain.HighlightColor(req.Color), req.Note,
	)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, toHighlightDTO(h))
}

func (s *Server) deleteHighlight(c echo.Context) error {
	if err := s.highlights.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) exportHighlights(c echo.Context) error {
	out, err := s.highlights.Export(c.Request().Context(), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="highlights.txt"`)
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(out))
}
