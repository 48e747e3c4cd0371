// Package dashboard aggregates the headline numbers for the landing view.
package dashboard

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/doctorconnect/clinic/internal/platform/auth"
)

type Stats struct {
	TotalPatients      int     `json:"total_patients"`
	TotalAppointments  int     `json:"total_appointments"`
	TodaysAppointments int     `json:"todays_appointments"`
	MonthlyRevenue     float64 `json:"monthly_revenue"`
}

// Repository answers the four aggregate queries in one call. Monthly revenue
// is the sum of invoices paid in the month containing now.
type Repository interface {
	Stats(ctx context.Context, userID string, now time.Time) (*Stats, error)
}

type Service struct {
	stats Repository
	now   func() time.Time
}

func NewService(stats Repository) *Service {
	return &Service{stats: stats, now: time.Now}
}

func (s *Service) Stats(ctx context.Context, userID string) (*Stats, error) {
	return s.stats.Stats(ctx, userID, s.now())
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard/stats", h.Stats)
}

func (h *Handler) Stats(c echo.Context) error {
	uid := auth.UserIDFromContext(c.Request().Context())
	stats, err := h.svc.Stats(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load stats")
	}
	return c.JSON(http.StatusOK, stats)
}
