package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"iwms-citizen.backend/internal/domain/entities"
	domainerrors "iwms-citizen.backend/internal/domain/errors"
	"iwms-citizen.backend/internal/domain/repositories"
	"iwms-citizen.backend/pkg/logger"
	"iwms-citizen.backend/pkg/redis"
	"iwms-citizen.backend/pkg/token"
)

// AccountUsecase resolves citizen identity for the login and verify endpoints.
// Both share the same matching semantics (phone OR contact_no, active-or-unset
// only) and never lock rows; no mutation follows the lookup.
type AccountUsecase struct {
	citizenRepo repositories.CitizenRepository
	tokens      token.Generator
	sessions    SessionRecorder
	sessionTTL  time.Duration
}

// NewAccountUsecase creates a new account usecase. sessions may be nil.
func NewAccountUsecase(
	citizenRepo repositories.CitizenRepository,
	tokens token.Generator,
	sessions SessionRecorder,
	sessionTTL time.Duration,
) *AccountUsecase {
	return &AccountUsecase{
		citizenRepo: citizenRepo,
		tokens:      tokens,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
	}
}

// Resolve looks up an active-matchable profile by phone or contact number and
// mints a fresh session token on success. Returns ErrNotFound when no profile
// matches; the caller decides whether that is an error (login) or a new-user
// signal (verify). An empty phone is a validation error.
func (u *AccountUsecase) Resolve(ctx context.Context, phone string) (*entities.AccountLookupResult, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, domainerrors.NewValidationError("phone")
	}

	citizen, err := u.citizenRepo.FindActiveByContact(ctx, phone)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		logger.Error(ctx, "Citizen lookup failed", zap.Error(err), zap.String("phone", phone))
		return nil, err
	}

	tok, err := u.tokens.Next()
	if err != nil {
		return nil, err
	}
	u.recordSession(ctx, tok, citizen.CustomerID)

	return &entities.AccountLookupResult{
		CustomerID:   citizen.CustomerID,
		OwnerName:    citizen.OwnerName,
		PropertyName: citizen.PropertyName,
		Token:        tok,
	}, nil
}

func (u *AccountUsecase) recordSession(ctx context.Context, tok, customerID string) {
	if u.sessions == nil {
		return
	}
	data := &redis.SessionData{CustomerID: customerID, Role: entities.CitizenRole}
	if err := u.sessions.Save(ctx, tok, data, u.sessionTTL); err != nil {
		logger.Warn(ctx, "Failed to record session", zap.Error(err))
	}
}
