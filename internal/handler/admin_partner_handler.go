package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminPartnerHandler struct {
	uc *usecase.PartnerUsecase
}

func NewAdminPartnerHandler(uc *usecase.PartnerUsecase) *AdminPartnerHandler {
	return &AdminPartnerHandler{uc: uc}
}

type EnrollPartnerRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Password      string `json:"password"`
	VehicleType   string `json:"vehicleType"`
	VehicleNumber string `json:"vehicleNumber"`
}

type SetPartnerActiveRequest struct {
	Active bool `json:"active"`
}

type PartnerListResponse struct {
	Partners []usecase.PartnerOutput `json:"partners"`
}

func (h *AdminPartnerHandler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/partners", h.list)
	admin.POST("/partners", h.enroll)
	admin.POST("/partners/:id/verify", h.verify)
	admin.PATCH("/partners/:id/active", h.setActive)
}

// online/activeは省略可。割り当て候補の取得は online=true&active=true で呼ぶ
func (h *AdminPartnerHandler) list(c echo.Context) error {
	var online *bool
	if v := c.QueryParam("online"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid online"})
		}
		online = &b
	}

	var active *bool
	if v := c.QueryParam("active"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid active"})
		}
		active = &b
	}

	outs, err := h.uc.List(c.Request().Context(), online, active)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, PartnerListResponse{Partners: outs})
}

func (h *AdminPartnerHandler) enroll(c echo.Context) error {
	var req EnrollPartnerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getAuthIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, uerr := h.uc.Enroll(c.Request().Context(), adminID, usecase.EnrollPartnerInput{
		Name:          req.Name,
		Phone:         req.Phone,
		Password:      req.Password,
		VehicleType:   req.VehicleType,
		VehicleNumber: req.VehicleNumber,
	})
	if uerr != nil {
		return writeError(c, uerr)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AdminPartnerHandler) verify(c echo.Context) error {
	partnerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	adminID, ok := getAuthIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, uerr := h.uc.Verify(c.Request().Context(), adminID, partnerID)
	if uerr != nil {
		return writeError(c, uerr)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminPartnerHandler) setActive(c echo.Context) error {
	partnerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req SetPartnerActiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	adminID, ok := getAuthIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, uerr := h.uc.SetActive(c.Request().Context(), adminID, partnerID, req.Active)
	if uerr != nil {
		return writeError(c, uerr)
	}

	return c.JSON(http.StatusOK, out)
}
