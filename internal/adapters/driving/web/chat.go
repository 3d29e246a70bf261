package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *Server) chatHistory(c echo.Context) error {
	history, err := s.chat.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return jsonError(c, err)
	}

	dtos := make([]chatMessageDTO, 0, len(history))
	for i := range history {
		dtos = append(dtos, toChatMessageDTO(&history[i]))
	}
	return c.JSON(http.StatusOK, dtos)
}

type askRequest struct {
	Question string `json:"question"`
}

func (s *Server) chatAsk(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}

	reply, err := s.chat.Ask(c.Request().Context(), c.Param("id"), req.Question)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, toChatMessageDTO(reply))
}
