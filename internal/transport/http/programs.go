package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"psycenter/internal/transport/http/dto"
	"psycenter/internal/transport/http/dto/response"
)

// ListPrograms godoc
// @Summary Список программ
// @Tags programs
// @Produce json
// @Success 200 {array} models.Program
// @Router /api/programs [get]
func (r *Routers) ListPrograms(c echo.Context) error {
	const op = "http.routers.ListPrograms"
	log := r.log.With(slog.String("op", op))

	programs, err := r.Programs.ListPrograms(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, programs)
}

// GetProgram godoc
// @Summary Программа по id
// @Tags programs
// @Produce json
// @Param id path string true "ID программы"
// @Success 200 {object} models.Program
// @Failure 404 {object} response.ErrorResponse
// @Router /api/programs/{id} [get]
func (r *Routers) GetProgram(c echo.Context) error {
	const op = "http.routers.GetProgram"
	log := r.log.With(slog.String("op", op), slog.String("program_id", c.Param("id")))

	program, err := r.Programs.GetProgram(c.Request().Context(), c.Param("id"))
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, program)
}

// CreateProgram godoc
// @Summary Создание программы
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProgramRequest true "Программа"
// @Success 200 {object} models.Program
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/programs [post]
func (r *Routers) CreateProgram(c echo.Context) error {
	const op = "http.routers.CreateProgram"
	log := r.log.With(slog.String("op", op))

	var req dto.ProgramRequest
	if ok, err := r.bind(c, log, &req); !ok {
		return err
	}

	program, err := r.Programs.CreateProgram(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, program)
}

// UpdateProgram godoc
// @Summary Обновление программы
// @Tags programs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID программы"
// @Param request body dto.ProgramRequest true "Программа"
// @Success 200 {object} models.Program
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/programs/{id} [put]
func (r *Routers) UpdateProgram(c echo.Context) error {
	const op = "http.routers.UpdateProgram"
	log := r.log.With(slog.String("op", op), slog.String("program_id", c.Param("id")))

	var req dto.ProgramRequest
	if ok, err := r.bind(c, log, &req); !ok {
		return err
	}

	program, err := r.Programs.UpdateProgram(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, program)
}

// DeleteProgram godoc
// @Summary Удаление программы
// @Tags programs
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID программы"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse
// @Router /api/programs/{id} [delete]
func (r *Routers) DeleteProgram(c echo.Context) error {
	const op = "http.routers.DeleteProgram"
	log := r.log.With(slog.String("op", op), slog.String("program_id", c.Param("id")))

	if err := r.Programs.DeleteProgram(c.Request().Context(), c.Param("id")); err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success", Message: "Program deleted"})
}
