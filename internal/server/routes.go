package server

import (
	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, cfg config.Config, adminRepo repository.AdminUserRepository, h Handlers) {
	//ログインだけ認証なし
	h.Auth.RegisterRoutes(e)

	// ★ /admin 配下は全部「JWT必須 + token_version一致 + ADMIN限定」
	admin := e.Group(
		"/admin",
		middleware.AuthJWT(cfg.AdminJWTSecret),
		middleware.TokenVersionGuard(adminRepo),
		middleware.AdminRoleGuard(),
	)
	h.Auth.RegisterAdminRoutes(admin)
	h.AdminOrder.RegisterRoutes(admin)
	h.AdminPartner.RegisterRoutes(admin)
	h.AdminUser.RegisterRoutes(admin)
	h.Dashboard.RegisterRoutes(admin)
	h.AuditLog.RegisterRoutes(admin)

	// /partner-portal 配下は「JWT必須（別secret） + PARTNER限定」
	portal := e.Group(
		"/partner-portal",
		middleware.AuthJWT(cfg.PartnerJWTSecret),
		middleware.PartnerRoleGuard(),
	)
	h.Portal.RegisterRoutes(portal)
}
