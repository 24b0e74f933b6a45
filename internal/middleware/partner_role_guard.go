package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleがPARTNERかどうかを確認します。

func PartnerRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxAuthRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//PARTNERだけ許可
			if role != "PARTNER" {
				return c.JSON(http.StatusForbidden, errorJSON("partner only"))
			}

			return next(c)
		}
	}
}
