package web

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/foliolabs/folio/internal/core/domain"
)

func (s *Server) listBooks(c echo.Context) error {
	books, err := s.library.List(c.Request().Context())
	if err != nil {
		return jsonError(c, err)
	}

	dtos := make([]bookDTO, 0, len(books))
	for i := range books {
		dtos = append(dtos, toBookDTO(&books[i]))
	}
	return c.JSON(http.StatusOK, dtos)
}

// uploadBook ingests a multipart upload under the "file" field.
func (s *Server) uploadBook(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing file field"})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return jsonError(c, err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return jsonError(c, err)
	}

	book, err := s.library.Import(c.Request().Context(), fileHeader.Filename, content, nil)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusCreated, toBookDTO(book))
}

func (s *Server) getBook(c echo.Context) error {
	book, err := s.library.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, toBookDTO(book))
}

func (s *Server) deleteBook(c echo.Context) error {
	if err := s.library.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// downloadPayload streams the original binary (PDF bytes).
func (s *Server) downloadPayload(c echo.Context) error {
	book, err := s.library.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}

	data, err := s.library.Payload(c.Request().Context(), book.ID)
	if err != nil {
		return jsonError(c, err)
	}

	contentType := "application/octet-stream"
	if book.FileType == domain.FileTypePDF {
		contentType = "application/pdf"
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+book.FileName+`"`)
	return c.Blob(http.StatusOK, contentType, data)
}

func (s *Server) getPage(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid page number"})
	}

	ctx := c.Request().Context()
	id := c.Param("id")

	text, err := s.library.Page(ctx, id, page)
	if err != nil {
		return jsonError(c, err)
	}

	lines, err := s.highlights.RenderPage(ctx, id, page)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, toPageDTO(page, text, lines))
}

type positionRequest struct {
	Page int `json:"page"`
}

func (s *Server) setPosition(c echo.Context) error {
	var req positionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}

	book, err := s.library.GoToPage(c.Request().Context(), c.Param("id"), req.Page)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, toBookDTO(book))
}

func (s *Server) toggleBookmark(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid page number"})
	}

	marked, err := s.library.ToggleBookmark(c.Request().Context(), c.Param("id"), page)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"page": page, "bookmarked": marked})
}

type colorRequest struct {
	Color string `json:"color"`
}

func (s *Server) setColor(c echo.Context) error {
	var req colorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}

	if err := s.library.SetColor(c.Request().Context(), c.Param("id"), req.Color); err != nil {
		return jsonError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) searchLibrary(c echo.Context) error {
	limit := 10
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	results, err := s.search.Search(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return jsonError(c, err)
	}

	dtos := make([]searchResultDTO, 0, len(results))
	for _, r := range results {
		dtos = append(dtos, searchResultDTO{
			BookID:    r.BookID,
			Title:     r.Title,
			Page:      r.Page,
			Score:     r.Score,
			Fragments: r.Fragments,
		})
	}
	return c.JSON(http.StatusOK, dtos)
}
