package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleVerifier validates Google-issued ID tokens for first login.
type GoogleVerifier struct {
	Audience string
}

func (v *GoogleVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	payload, err := idtoken.Validate(ctx, token, v.Audience)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	id := Identity{UID: payload.Subject}
	if s, ok := payload.Claims["email"].(string); ok {
		id.Email = s
	}
	if s, ok := payload.Claims["name"].(string); ok {
		id.Name = s
	}
	return id, nil
}
