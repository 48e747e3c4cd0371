package settings

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/doctorconnect/clinic/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/settings/profile", h.GetProfile)
	api.PUT("/settings/profile", h.PutProfile)
	api.GET("/settings/appearance", h.GetAppearance)
	api.PUT("/settings/appearance", h.PutAppearance)
	api.GET("/settings/appearance/style", h.GetStyle)
}

func (h *Handler) GetProfile(c echo.Context) error {
	uid := auth.UserIDFromContext(c.Request().Context())
	p, err := h.svc.Profile(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load profile")
	}
	if p == nil {
		return echo.NewHTTPError(http.StatusNotFound, "profile not configured")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) PutProfile(c echo.Context) error {
	var p Profile
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.UserID = auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.SaveProfile(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) GetAppearance(c echo.Context) error {
	uid := auth.UserIDFromContext(c.Request().Context())
	a, err := h.svc.Appearance(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load appearance")
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) PutAppearance(c echo.Context) error {
	var a Appearance
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.UserID = auth.UserIDFromContext(c.Request().Context())
	if err := h.svc.SaveAppearance(c.Request().Context(), &a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) GetStyle(c echo.Context) error {
	uid := auth.UserIDFromContext(c.Request().Context())
	return c.JSON(http.StatusOK, h.svc.Style(c.Request().Context(), uid))
}
