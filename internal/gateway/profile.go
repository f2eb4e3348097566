package gateway

import (
	"context"
	"errors"

	"edigivault/internal/utils"
	"edigivault/pkg/types"
)

// EnsureProfile makes sure a profile row exists for the authenticated user,
// creating one on first sign-in and folding in any newly supplied fields on
// later calls.
func (g *Gateway) EnsureProfile(ctx context.Context, userID, phone, name string, registrationType types.RegistrationType) (*types.Profile, error) {
	existing, err := g.profiles.ProfileByID(ctx, userID)

	var notFound *types.NotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return nil, err
	}

	if existing != nil && err == nil {
		changed := false
		if phone != "" && utils.Deref(existing.Phone) != phone {
			existing.Phone = utils.StringPtr(phone)
			changed = true
		}
		if name != "" && utils.Deref(existing.Name) != name {
			existing.Name = utils.StringPtr(name)
			changed = true
		}
		if registrationType != "" && utils.Deref(existing.RegistrationType) != string(registrationType) {
			existing.RegistrationType = utils.StringPtr(string(registrationType))
			changed = true
		}
		if changed {
			if err := g.profiles.UpdateProfile(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	profile := &types.Profile{
		ID:       userID,
		Role:     "user",
		UserType: "customer",
	}
	if phone != "" {
		profile.Phone = utils.StringPtr(phone)
	}
	if name != "" {
		profile.Name = utils.StringPtr(name)
	}
	if registrationType != "" {
		profile.RegistrationType = utils.StringPtr(string(registrationType))
	}

	if err := g.profiles.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	g.logger.WithField("user_id", userID).Info("profile created")

	return profile, nil
}

func (g *Gateway) Profile(ctx context.Context, userID string) (*types.Profile, error) {
	return g.profiles.ProfileByID(ctx, userID)
}
