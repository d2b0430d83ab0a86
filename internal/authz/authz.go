// Package authz decides whether a caller may reach a protected route.
package authz

import (
	"context"
	"strings"

	"stagestyle/internal/models"
	"stagestyle/internal/repositories"

	"github.com/pkg/errors"
)

type Outcome int

const (
	Unauthenticated Outcome = iota
	Forbidden
	Authorized
)

func (o Outcome) String() string {
	switch o {
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case Authorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Decision is the result of one guard step.
type Decision struct {
	Outcome   Outcome
	SubjectID string
	Message   string
	// Detail carries the identity provider's explanation of a rejected token.
	Detail string
	// Rejected is set when a well formed token was refused by the identity provider.
	Rejected bool
}

func (d Decision) Allowed() bool { return d.Outcome == Authorized }

// TokenVerifier checks a bearer token and returns its subject identifier.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// RoleLookup loads the stored account of a subject.
type RoleLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

const (
	MessageMissingToken  = "Access denied. No valid token was provided."
	MessageInvalidToken  = "Invalid or expired token."
	MessageNotRegistered = "User is not registered."
)

type Guard struct {
	verifier TokenVerifier
	users    RoleLookup
}

func NewGuard(verifier TokenVerifier, users RoleLookup) *Guard {
	return &Guard{verifier: verifier, users: users}
}

// Authenticate verifies the credential in an Authorization header value.
func (g *Guard) Authenticate(ctx context.Context, header string) Decision {
	token, ok := BearerToken(header)
	if !ok {
		return Decision{Outcome: Unauthenticated, Message: MessageMissingToken}
	}
	subjectID, err := g.verifier.VerifyToken(ctx, token)
	if err != nil {
		return Decision{
			Outcome:  Unauthenticated,
			Message:  MessageInvalidToken,
			Detail:   err.Error(),
			Rejected: true,
		}
	}
	return Decision{Outcome: Authorized, SubjectID: subjectID}
}

// Authorize checks the stored role of subjectID against allowed.
// A storage failure is returned as an error rather than a decision.
func (g *Guard) Authorize(ctx context.Context, subjectID string, allowed []string) (Decision, error) {
	user, err := g.users.GetByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Decision{Outcome: Forbidden, SubjectID: subjectID, Message: MessageNotRegistered}, nil
		}
		return Decision{}, errors.Wrapf(err, "failed to load account %s", subjectID)
	}

	role := user.EffectiveRole()
	for _, r := range allowed {
		if r == role {
			return Decision{Outcome: Authorized, SubjectID: subjectID}, nil
		}
	}
	return Decision{
		Outcome:   Forbidden,
		SubjectID: subjectID,
		Message:   "Access denied. Required role: " + strings.Join(allowed, ", "),
	}, nil
}

// BearerToken extracts the token from a "Bearer <token>" header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
