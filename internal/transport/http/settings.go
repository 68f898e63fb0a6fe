package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"psycenter/internal/transport/http/dto"
)

// GetSettings godoc
// @Summary Настройки сайта
// @Description До первого сохранения возвращаются значения по умолчанию.
// @Tags settings
// @Produce json
// @Success 200 {object} models.SiteSettings
// @Router /api/settings [get]
func (r *Routers) GetSettings(c echo.Context) error {
	const op = "http.routers.GetSettings"
	log := r.log.With(slog.String("op", op))

	settings, err := r.Settings.GetSettings(c.Request().Context())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary Изменение настроек сайта
// @Description Меняются только переданные поля.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateSettingsRequest true "Поля для изменения"
// @Success 200 {object} models.SiteSettings
// @Failure 400 {object} response.ErrorResponse
// @Router /api/settings [put]
func (r *Routers) UpdateSettings(c echo.Context) error {
	const op = "http.routers.UpdateSettings"
	log := r.log.With(slog.String("op", op))

	var req dto.UpdateSettingsRequest
	if ok, err := r.bind(c, log, &req); !ok {
		return err
	}

	settings, err := r.Settings.UpdateSettings(c.Request().Context(), req.Patch())
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, settings)
}
