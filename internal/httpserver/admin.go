package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/antonskv/shop_backend/internal/admin"
)

func unknownResource(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{
		"error": "Неизвестный ресурс", "code": "NOT_FOUND",
	})
}

func (s *Server) handleAdminList(c echo.Context) error {
	res, ok := admin.Lookup(c.Param("resource"))
	if !ok {
		return unknownResource(c)
	}

	rows, err := s.Admin.List(c.Request().Context(), res)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

func (s *Server) handleAdminGet(c echo.Context) error {
	res, ok := admin.Lookup(c.Param("resource"))
	if !ok {
		return unknownResource(c)
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return badRequest(c, "INVALID_ID", "id должен быть целым числом больше 0")
	}

	row, err := s.Admin.Get(c.Request().Context(), res, uint(id))
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, row)
}

func (s *Server) handleAdminCreate(c echo.Context) error {
	res, ok := admin.Lookup(c.Param("resource"))
	if !ok {
		return unknownResource(c)
	}

	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		return bindErr(c)
	}

	row, err := s.Admin.Create(c.Request().Context(), res, payload)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusCreated, row)
}

func (s *Server) handleAdminUpdate(c echo.Context) error {
	res, ok := admin.Lookup(c.Param("resource"))
	if !ok {
		return unknownResource(c)
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return badRequest(c, "INVALID_ID", "id должен быть целым числом больше 0")
	}

	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		return bindErr(c)
	}

	row, err := s.Admin.Update(c.Request().Context(), res, uint(id), payload)
	if err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, row)
}

func (s *Server) handleAdminDelete(c echo.Context) error {
	res, ok := admin.Lookup(c.Param("resource"))
	if !ok {
		return unknownResource(c)
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return badRequest(c, "INVALID_ID", "id должен быть целым числом больше 0")
	}

	if err := s.Admin.Delete(c.Request().Context(), res, uint(id)); err != nil {
		return writeErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Запись удалена"})
}
