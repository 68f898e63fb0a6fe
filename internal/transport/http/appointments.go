package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"psycenter/internal/domain/models"
	"psycenter/internal/lib/logger/sl"
	"psycenter/internal/transport/http/dto"
)

// CreateAppointment godoc
// @Summary Запись на консультацию
// @Description Программа должна существовать, иначе 404.
// @Tags appointments
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Заявка"
// @Success 200 {object} models.Appointment
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Программа не найдена"
// @Router /api/appointments [post]
func (r *Routers) CreateAppointment(c echo.Context) error {
	const op = "http.routers.CreateAppointment"
	log := r.log.With(slog.String("op", op))

	var req dto.CreateAppointmentRequest
	if ok, err := r.bind(c, log, &req); !ok {
		return err
	}

	appointment, err := r.Appointment.CreateAppointment(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, appointment)
}

// ListAppointments godoc
// @Summary Все заявки
// @Tags appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Appointment
// @Failure 401 {object} response.ErrorResponse
// @Router /api/appointments [get]
func (r *Routers) ListAppointments(c echo.Context) error {
	const op = "http.routers.ListAppointments"
	log := r.log.With(slog.String("op", op))

	list, err := r.Appointment.ListAppointments(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, list)
}

// UpdateAppointmentStatus godoc
// @Summary Смена статуса заявки
// @Description Статус берётся из тела запроса или из параметра status.
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заявки"
// @Param request body dto.UpdateAppointmentStatusRequest false "Новый статус"
// @Param status query string false "Новый статус" Enums(pending, confirmed, completed, cancelled)
// @Success 200 {object} models.Appointment
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/appointments/{id}/status [put]
func (r *Routers) UpdateAppointmentStatus(c echo.Context) error {
	const op = "http.routers.UpdateAppointmentStatus"
	log := r.log.With(slog.String("op", op), slog.String("appointment_id", c.Param("id")))

	var req dto.UpdateAppointmentStatusRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("failed to bind status", sl.Err(err))
	}
	if req.Status == "" {
		req.Status = models.AppointmentStatus(c.QueryParam("status"))
	}

	if ok, err := r.validate(c, log, &req); !ok {
		return err
	}

	appointment, err := r.Appointment.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, appointment)
}
