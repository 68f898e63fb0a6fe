package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"psycenter/internal/transport/http/dto/request"
	"psycenter/internal/transport/http/dto/response"
)

// Login godoc
// @Summary Вход администратора
// @Description Проверяет логин и пароль администратора и выдаёт JWT.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Данные для входа"
// @Success 200 {object} response.LoginResponse
// @Failure 400 {object} response.ErrorResponse "Неверный формат запроса"
// @Failure 401 {object} response.ErrorResponse "Неверные учётные данные"
// @Router /api/admin/login [post]
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest
	if ok, err := r.bind(c, log, &req); !ok {
		return err
	}

	token, err := r.Auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return r.fail(c, log, err)
	}

	return c.JSON(http.StatusOK, response.LoginResponse{
		AccessToken: token.Token,
		TokenType:   token.Type,
		Username:    token.Username,
	})
}

// VerifyToken godoc
// @Summary Проверка токена администратора
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.VerifyResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /api/admin/verify [get]
func (r *Routers) VerifyToken(c echo.Context) error {
	username, _ := c.Get(AdminContextKey).(string)
	if username == "" {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	return c.JSON(http.StatusOK, response.VerifyResponse{Valid: true, Username: username})
}
