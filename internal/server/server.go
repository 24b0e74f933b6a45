package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/middleware"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 各surfaceのハンドラをまとめて受け取る
type Handlers struct {
	Auth         *handler.AuthHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminPartner *handler.AdminPartnerHandler
	AdminUser    *handler.AdminUserHandler
	Dashboard    *handler.DashboardHandler
	AuditLog     *handler.AuditLogHandler
	Portal       *handler.PortalHandler
}

func Start(cfg config.Config, log *zap.Logger, adminRepo repository.AdminUserRepository, h Handlers) error {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLogger(log))

	RegisterRoutes(e, cfg, adminRepo, h)

	addr := cfg.Port
	if addr == "" || addr[0] != ':' {
		addr = ":" + addr
	}

	return e.Start(addr)
}
