package handler

import (
	"errors"
	"net/http"

	"app/internal/repository"
	auth "app/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

// 管理コンソールとパートナーポータルのログイン。
// surfaceごとに別のusecase（別secretのissuer）を持つ。
type AuthHandler struct {
	adminLogin   *auth.AdminLoginUsecase
	partnerLogin *auth.PartnerLoginUsecase
}

func NewAuthHandler(adminLogin *auth.AdminLoginUsecase, partnerLogin *auth.PartnerLoginUsecase) *AuthHandler {
	return &AuthHandler{adminLogin: adminLogin, partnerLogin: partnerLogin}
}

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PartnerLoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/admin/auth/login", h.adminLoginHandler)
	e.POST("/partner-portal/auth/login", h.partnerLoginHandler)
}

// 認証必須の/admin配下に生えるぶん
func (h *AuthHandler) RegisterAdminRoutes(g *echo.Group) {
	g.POST("/auth/logout-all", h.adminLogoutAllHandler)
}

func (h *AuthHandler) adminLoginHandler(c echo.Context) error {
	var req AdminLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.adminLogin.Execute(c.Request().Context(), auth.AdminLoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) partnerLoginHandler(c echo.Context) error {
	var req PartnerLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.partnerLogin.Execute(c.Request().Context(), auth.PartnerLoginInput{
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// token_versionを上げて自分の発行済みトークンを全部無効化する
func (h *AuthHandler) adminLogoutAllHandler(c echo.Context) error {
	adminID, ok := getAuthIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.adminLogin.LogoutAll(c.Request().Context(), adminID); err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return writeAuthError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "logged out"})
}

// auth usecaseのエラーをHTTPへ変換
func writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	case errors.Is(err, auth.ErrAccountInactive):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "account inactive"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
