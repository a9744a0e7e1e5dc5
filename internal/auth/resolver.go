// Package auth resolves Authorization headers into authenticated identities.
package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
	"ripple/internal/token"

	"github.com/google/uuid"
)

// SchemePrefix is the credential scheme expected in the Authorization header.
const SchemePrefix = "Bearer "

// ErrUnauthorized is the uniform rejection for every credential problem:
// malformed header, bad signature, expired token, or a subject that no
// longer exists. Callers cannot tell which check failed, so neither can an
// attacker probing the endpoint. The specific reason goes to the debug log.
var ErrUnauthorized error = models.NewUnauthorizedError("Authentication required")

// Identity is an authenticated principal, derived fresh from a verified
// token on every request and discarded at request end.
type Identity struct {
	UserID uuid.UUID
}

// Resolver validates bearer credentials against the token codec and the
// user store. All dependencies are injected; nothing is read from ambient
// globals, so tests can swap in their own key, store, and clock.
type Resolver struct {
	codec *token.Codec
	users repository.UserRepository
	now   func() time.Time
}

// NewResolver returns a Resolver using the wall clock.
func NewResolver(codec *token.Codec, users repository.UserRepository) *Resolver {
	return &Resolver{codec: codec, users: users, now: time.Now}
}

// Required resolves a credential that must be present. An absent header is
// rejected immediately.
func (r *Resolver) Required(ctx context.Context, header string) (Identity, error) {
	if header == "" {
		return Identity{}, r.reject(ctx, "missing", "Authorization header absent")
	}
	return r.resolve(ctx, header)
}

// Optional resolves a credential that may be absent. The result is a
// three-way outcome: (identity, true, nil) for a valid credential,
// (zero, false, nil) for no credential at all, and an error when a
// credential was supplied but failed validation. A malformed-but-present
// header is never collapsed into "anonymous"; that distinction is the
// whole point of this entry point.
func (r *Resolver) Optional(ctx context.Context, header string) (Identity, bool, error) {
	if header == "" {
		return Identity{}, false, nil
	}
	identity, err := r.resolve(ctx, header)
	if err != nil {
		return Identity{}, false, err
	}
	return identity, true, nil
}

// resolve runs the shared validation pipeline, short-circuiting on the
// first failure.
func (r *Resolver) resolve(ctx context.Context, header string) (Identity, error) {
	if !strings.HasPrefix(header, SchemePrefix) {
		return Identity{}, r.reject(ctx, "scheme", "Authorization header did not start with Bearer")
	}

	claims, err := r.codec.Verify(header[len(SchemePrefix):])
	if err != nil {
		return Identity{}, r.reject(ctx, "token", "token verification failed")
	}

	// Expiry is checked here against the current wall clock, not inside the
	// codec at parse time.
	if !claims.ExpiresAt.After(r.now()) {
		return Identity{}, r.reject(ctx, "expired", "token expired")
	}

	// Tokens are stateless and cannot be revoked before expiry; rejecting
	// subjects whose user row is gone is the only revocation mechanism a
	// stateless design has.
	exists, err := r.users.ExistsByID(ctx, claims.UserID)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "user existence check failed",
			slog.String("error", err.Error()))
		return Identity{}, r.reject(ctx, "lookup", "user lookup failed")
	}
	if !exists {
		return Identity{}, r.reject(ctx, "unknown_user", "token subject no longer exists")
	}

	return Identity{UserID: claims.UserID}, nil
}

func (r *Resolver) reject(ctx context.Context, stage, reason string) error {
	observability.AuthRejections.WithLabelValues(stage).Inc()
	middleware.Logger.DebugContext(ctx, "credential rejected", slog.String("reason", reason))
	return ErrUnauthorized
}
