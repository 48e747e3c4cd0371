package settings

import (
	"context"
	"fmt"
)

type Service struct {
	store Repository
}

func NewService(store Repository) *Service {
	return &Service{store: store}
}

// Profile returns the stored profile, or nil when the user never saved one.
// Renderers treat nil as "use the built-in letterhead".
func (s *Service) Profile(ctx context.Context, userID string) (*Profile, error) {
	return s.store.GetProfile(ctx, userID)
}

func (s *Service) SaveProfile(ctx context.Context, p *Profile) error {
	if p.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if p.DoctorName == "" {
		return fmt.Errorf("doctor_name is required")
	}
	if p.ClinicName == "" {
		return fmt.Errorf("clinic_name is required")
	}
	return s.store.UpsertProfile(ctx, p)
}

// StoredAppearance returns the saved configuration, or nil when the user
// never customized the theme. Renderers use this to tell "default by choice"
// apart from "never configured".
func (s *Service) StoredAppearance(ctx context.Context, userID string) (*Appearance, error) {
	return s.store.GetAppearance(ctx, userID)
}

// Appearance returns the stored configuration, falling back to defaults when
// none exists.
func (s *Service) Appearance(ctx context.Context, userID string) (Appearance, error) {
	a, err := s.store.GetAppearance(ctx, userID)
	if err != nil {
		return Appearance{}, err
	}
	if a == nil {
		return DefaultAppearance(), nil
	}
	return *a, nil
}

func (s *Service) SaveAppearance(ctx context.Context, a *Appearance) error {
	if a.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if !validThemeModes[a.ThemeMode] {
		return fmt.Errorf("invalid theme_mode %q", a.ThemeMode)
	}
	if _, err := ParseHexColor(a.PrimaryColor); err != nil {
		return err
	}
	return s.store.UpsertAppearance(ctx, a)
}

// Style resolves the user's appearance into a StyleScope. Storage errors
// degrade to the default scope rather than failing a render.
func (s *Service) Style(ctx context.Context, userID string) StyleScope {
	a, err := s.Appearance(ctx, userID)
	if err != nil {
		return ApplyTheme(DefaultAppearance())
	}
	return ApplyTheme(a)
}
