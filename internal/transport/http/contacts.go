package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"psycenter/internal/transport/http/dto"
)

// CreateContact godoc
// @Summary Сообщение с формы обратной связи
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Сообщение"
// @Success 200 {object} models.Contact
// @Failure 400 {object} response.ErrorResponse
// @Router /api/contacts [post]
func (r *Routers) CreateContact(c echo.Context) error {
	const op = "http.routers.CreateContact"
	log := r.log.With(slog.String("op", op))

	var req dto.CreateContactRequest
	if ok, err := r.bind(c, log, &req); !ok {
		return err
	}

	contact, err := r.Contacts.CreateContact(c.Request().Context(), req)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, contact)
}

// ListContacts godoc
// @Summary Все сообщения
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Contact
// @Failure 401 {object} response.ErrorResponse
// @Router /api/contacts [get]
func (r *Routers) ListContacts(c echo.Context) error {
	const op = "http.routers.ListContacts"
	log := r.log.With(slog.String("op", op))

	list, err := r.Contacts.ListContacts(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, list)
}
