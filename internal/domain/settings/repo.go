package settings

import "context"

// Repository stores one profile row and one appearance row per user. Get
// methods return (nil, nil) when no row exists; callers substitute defaults.
type Repository interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpsertProfile(ctx context.Context, p *Profile) error
	GetAppearance(ctx context.Context, userID string) (*Appearance, error)
	UpsertAppearance(ctx context.Context, a *Appearance) error
}
