package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"psycenter/internal/transport/http/dto"
)

// Subscribe godoc
// @Summary Подписка на рассылку
// @Description Повторная подписка того же адреса возвращает 400.
// @Tags newsletter
// @Accept json
// @Produce json
// @Param request body dto.SubscribeRequest true "Email"
// @Success 200 {object} models.NewsletterSubscription
// @Failure 400 {object} response.ErrorResponse
// @Router /api/newsletter [post]
func (r *Routers) Subscribe(c echo.Context) error {
	const op = "http.routers.Subscribe"
	log := r.log.With(slog.String("op", op))

	var req dto.SubscribeRequest
	if ok, err := r.bind(c, log, &req); !ok {
		return err
	}

	sub, err := r.Newsletter.Subscribe(c.Request().Context(), req.Email)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, sub)
}

// ListSubscriptions godoc
// @Summary Подписчики рассылки
// @Tags newsletter
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.NewsletterSubscription
// @Failure 401 {object} response.ErrorResponse
// @Router /api/newsletter [get]
func (r *Routers) ListSubscriptions(c echo.Context) error {
	const op = "http.routers.ListSubscriptions"
	log := r.log.With(slog.String("op", op))

	subs, err := r.Newsletter.ListSubscriptions(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, subs)
}

// Broadcast godoc
// @Summary Рассылка письма всем подписчикам
// @Description Ошибки отдельных адресов попадают в отчёт и не прерывают рассылку.
// @Tags newsletter
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BroadcastRequest true "Письмо"
// @Success 200 {object} models.BroadcastReport
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Нет подписчиков"
// @Router /api/newsletter/send [post]
func (r *Routers) Broadcast(c echo.Context) error {
	const op = "http.routers.Broadcast"
	log := r.log.With(slog.String("op", op))

	var req dto.BroadcastRequest
	if ok, err := r.bind(c, log, &req); !ok {
		return err
	}

	report, err := r.Newsletter.Broadcast(c.Request().Context(), req.Subject, req.HTMLContent)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, report)
}
