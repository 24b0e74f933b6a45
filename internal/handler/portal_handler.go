package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 配達パートナーポータル。subはパートナーID。
type PortalHandler struct {
	uc *usecase.PortalUsecase
}

func NewPortalHandler(uc *usecase.PortalUsecase) *PortalHandler {
	return &PortalHandler{uc: uc}
}

type SetDutyRequest struct {
	Online bool `json:"online"`
}

type PortalDeliverRequest struct {
	PaymentType string `json:"payment_type"`
}

type PortalOrderListResponse struct {
	Orders []usecase.OrderOutput `json:"orders"`
}

// portalグループ（JWT+PARTNERガード済み）にぶら下げる
func (h *PortalHandler) RegisterRoutes(portal *echo.Group) {
	portal.GET("/orders", h.myOrders)
	portal.POST("/duty", h.setDuty)
	portal.POST("/orders/:id/deliver", h.deliver)
}

func (h *PortalHandler) myOrders(c echo.Context) error {
	partnerID, ok := getAuthIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	outs, err := h.uc.MyOrders(c.Request().Context(), partnerID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, PortalOrderListResponse{Orders: outs})
}

func (h *PortalHandler) setDuty(c echo.Context) error {
	var req SetDutyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	partnerID, ok := getAuthIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.SetDuty(c.Request().Context(), partnerID, req.Online)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *PortalHandler) deliver(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req PortalDeliverRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	partnerID, ok := getAuthIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, uerr := h.uc.Deliver(c.Request().Context(), partnerID, orderID, usecase.PortalDeliverInput{
		PaymentType: req.PaymentType,
	})
	if uerr != nil {
		return writeError(c, uerr)
	}

	return c.JSON(http.StatusOK, out)
}
