package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/doctorconnect/clinic/internal/config"
	"github.com/doctorconnect/clinic/internal/domain/appointment"
	"github.com/doctorconnect/clinic/internal/domain/billing"
	"github.com/doctorconnect/clinic/internal/domain/call"
	"github.com/doctorconnect/clinic/internal/domain/dashboard"
	"github.com/doctorconnect/clinic/internal/domain/patient"
	"github.com/doctorconnect/clinic/internal/domain/prescription"
	"github.com/doctorconnect/clinic/internal/domain/settings"
	"github.com/doctorconnect/clinic/internal/domain/teleconsult"
	"github.com/doctorconnect/clinic/internal/platform/auth"
	"github.com/doctorconnect/clinic/internal/platform/db"
	"github.com/doctorconnect/clinic/internal/platform/middleware"
	"github.com/doctorconnect/clinic/internal/platform/notification"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "DoctorConnect clinic API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the clinic API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, db.PoolConfig{
				URL:      cfg.DatabaseURL,
				MaxConns: cfg.DBMaxConns,
				MinConns: cfg.DBMinConns,
			})
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, db.PoolConfig{
				URL:      cfg.DatabaseURL,
				MaxConns: cfg.DBMaxConns,
				MinConns: cfg.DBMinConns,
			})
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rollback last migration (not supported)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("WARNING: migrate down is destructive and not supported by the built-in runner.")
			return nil
		},
	})

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, db.PoolConfig{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
			SigningKey: []byte(cfg.AuthSigningKey),
		}))
	}

	apiV1 := e.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))

	// Outbound email. Without an API key, reminders fail with a clear error
	// instead of silently dropping mail.
	var mailer notification.EmailSender
	if cfg.ResendAPIKey != "" {
		mailer = notification.NewRetryingSender(
			notification.NewResendClient(cfg.ResendAPIKey, cfg.ResendFrom))
	} else {
		logger.Warn().Msg("RESEND_API_KEY not set, reminder emails disabled")
	}

	// Services
	settingsSvc := settings.NewService(settings.NewRepoPG(pool))
	patientSvc := patient.NewService(patient.NewRepoPG(pool))
	billingSvc := billing.NewService(billing.NewRepoPG(pool),
		&invoiceRenderSource{settings: settingsSvc})
	prescriptionSvc := prescription.NewService(prescription.NewRepoPG(pool),
		&prescriptionRenderSource{settings: settingsSvc})
	appointmentSvc := appointment.NewService(appointment.NewRepoPG(pool),
		&patientContactSource{patients: patientSvc},
		&clinicNameSource{settings: settingsSvc}, mailer)
	callSvc := call.NewService(call.NewRepoPG(pool))
	teleconsultSvc := teleconsult.NewService(teleconsult.NewRepoPG(pool), cfg.MeetingBaseURL)
	dashboardSvc := dashboard.NewService(dashboard.NewRepoPG(pool))

	// Routes
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)
	billing.NewHandler(billingSvc).RegisterRoutes(apiV1)
	prescription.NewHandler(prescriptionSvc).RegisterRoutes(apiV1)
	appointment.NewHandler(appointmentSvc).RegisterRoutes(apiV1)
	call.NewHandler(callSvc).RegisterRoutes(apiV1)
	teleconsult.NewHandler(teleconsultSvc).RegisterRoutes(apiV1)
	settings.NewHandler(settingsSvc).RegisterRoutes(apiV1)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(apiV1)

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// invoiceRenderSource feeds the invoice renderer from the settings domain.
// A user who never customized the theme keeps the renderer's own default
// accent rather than inheriting the UI default.
type invoiceRenderSource struct {
	settings *settings.Service
}

func (s *invoiceRenderSource) RenderOptions(ctx context.Context, userID string) billing.RenderOptions {
	var opts billing.RenderOptions
	if p, err := s.settings.Profile(ctx, userID); err == nil && p != nil {
		opts.Doctor = billing.DoctorInfo{
			Name:    p.DoctorName,
			Clinic:  p.ClinicName,
			Address: p.Address,
			Phone:   p.Phone,
			Email:   p.Email,
		}
	}
	if a, err := s.settings.StoredAppearance(ctx, userID); err == nil && a != nil {
		opts.Accent = settings.ApplyTheme(*a).Accent
	}
	return opts
}

// prescriptionRenderSource feeds the prescription renderer from the settings
// domain. The renderer prints "Dr. {name}" itself.
type prescriptionRenderSource struct {
	settings *settings.Service
}

func (s *prescriptionRenderSource) RenderOptions(ctx context.Context, userID string) prescription.RenderOptions {
	var opts prescription.RenderOptions
	if p, err := s.settings.Profile(ctx, userID); err == nil && p != nil {
		opts.DoctorName = strings.TrimPrefix(p.DoctorName, "Dr. ")
		opts.Clinic = p.ClinicName
	}
	return opts
}

// patientContactSource adapts the patient service to the appointment
// domain's reminder lookup, avoiding a direct import between the two.
type patientContactSource struct {
	patients *patient.Service
}

func (s *patientContactSource) ContactInfo(ctx context.Context, userID string, id uuid.UUID) (string, string, error) {
	p, err := s.patients.Get(ctx, userID, id)
	if err != nil {
		return "", "", err
	}
	email := ""
	if p.Email != nil {
		email = *p.Email
	}
	return p.FullName, email, nil
}

type clinicNameSource struct {
	settings *settings.Service
}

func (s *clinicNameSource) ClinicName(ctx context.Context, userID string) string {
	p, err := s.settings.Profile(ctx, userID)
	if err != nil || p == nil {
		return ""
	}
	return p.ClinicName
}
