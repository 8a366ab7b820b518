package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"iwms-citizen.backend/internal/domain/entities"
	domainerrors "iwms-citizen.backend/internal/domain/errors"
	"iwms-citizen.backend/internal/domain/repositories"
	"iwms-citizen.backend/pkg/logger"
	"iwms-citizen.backend/pkg/metrics"
	"iwms-citizen.backend/pkg/redis"
	"iwms-citizen.backend/pkg/token"
)

// SessionRecorder records issued tokens for later correlation. Recording is
// best-effort: a failure never fails the request that minted the token.
type SessionRecorder interface {
	Save(ctx context.Context, token string, data *redis.SessionData, expiration time.Duration) error
}

// requiredFields is the validation order; messages name the wire field
var requiredFields = []struct {
	name  string
	value func(*entities.RegisterCitizenInput) string
}{
	{"phone", func(i *entities.RegisterCitizenInput) string { return i.Phone }},
	{"owner_name", func(i *entities.RegisterCitizenInput) string { return i.OwnerName }},
	{"contact_no", func(i *entities.RegisterCitizenInput) string { return i.ContactNo }},
	{"building_no", func(i *entities.RegisterCitizenInput) string { return i.BuildingNo }},
	{"street", func(i *entities.RegisterCitizenInput) string { return i.Street }},
	{"area", func(i *entities.RegisterCitizenInput) string { return i.Area }},
	{"pincode", func(i *entities.RegisterCitizenInput) string { return i.Pincode }},
	{"city", func(i *entities.RegisterCitizenInput) string { return i.City }},
	{"district", func(i *entities.RegisterCitizenInput) string { return i.District }},
	{"state", func(i *entities.RegisterCitizenInput) string { return i.State }},
	{"zone", func(i *entities.RegisterCitizenInput) string { return i.Zone }},
	{"ward", func(i *entities.RegisterCitizenInput) string { return i.Ward }},
	{"property_name", func(i *entities.RegisterCitizenInput) string { return i.PropertyName }},
}

// RegistrationUsecase orchestrates citizen registration: lookup-or-create
// under a row lock, with bounded identifier allocation on the create path.
type RegistrationUsecase struct {
	citizenRepo repositories.CitizenRepository
	uow         repositories.UnitOfWork
	allocator   *CustomerIDAllocator
	tokens      token.Generator
	sessions    SessionRecorder
	sessionTTL  time.Duration
	newUniqueID func() (string, error)
}

// NewRegistrationUsecase creates a new registration usecase. sessions may be
// nil, in which case issued tokens are not recorded.
func NewRegistrationUsecase(
	citizenRepo repositories.CitizenRepository,
	uow repositories.UnitOfWork,
	allocator *CustomerIDAllocator,
	tokens token.Generator,
	sessions SessionRecorder,
	sessionTTL time.Duration,
) *RegistrationUsecase {
	return &RegistrationUsecase{
		citizenRepo: citizenRepo,
		uow:         uow,
		allocator:   allocator,
		tokens:      tokens,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
		newUniqueID: token.NewUniqueID,
	}
}

// ValidateRegisterInput trims every field and reports the first missing one,
// in wire order. Returns the trimmed copy on success.
func ValidateRegisterInput(input *entities.RegisterCitizenInput) (*entities.RegisterCitizenInput, error) {
	trimmed := &entities.RegisterCitizenInput{
		Phone:        strings.TrimSpace(input.Phone),
		OwnerName:    strings.TrimSpace(input.OwnerName),
		ContactNo:    strings.TrimSpace(input.ContactNo),
		BuildingNo:   strings.TrimSpace(input.BuildingNo),
		Street:       strings.TrimSpace(input.Street),
		Area:         strings.TrimSpace(input.Area),
		Pincode:      strings.TrimSpace(input.Pincode),
		City:         strings.TrimSpace(input.City),
		District:     strings.TrimSpace(input.District),
		State:        strings.TrimSpace(input.State),
		Zone:         strings.TrimSpace(input.Zone),
		Ward:         strings.TrimSpace(input.Ward),
		PropertyName: strings.TrimSpace(input.PropertyName),
	}
	for _, f := range requiredFields {
		if f.value(trimmed) == "" {
			return nil, domainerrors.NewValidationError(f.name)
		}
	}
	return trimmed, nil
}

// Register resolves a registration request: validation first (no transaction
// opened on failure), then lock-lookup inside a transaction, then either a
// full-field update of the existing row or an insert with a freshly allocated
// customer id. Update and insert are mutually exclusive and atomic with the
// lock acquisition; every error path rolls back.
func (u *RegistrationUsecase) Register(ctx context.Context, input *entities.RegisterCitizenInput) (*entities.RegistrationResult, error) {
	sanitized, err := ValidateRegisterInput(input)
	if err != nil {
		return nil, err
	}
	if sanitized.ContactNo == "" {
		sanitized.ContactNo = sanitized.Phone
	}

	result := &entities.RegistrationResult{OwnerName: sanitized.OwnerName}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		existing, err := u.citizenRepo.FindForUpdateByContact(txCtx, sanitized.Phone, sanitized.ContactNo)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return err
		}

		if existing != nil {
			// Update branch: overwrite, reactivate, keep the customer id.
			if err := u.citizenRepo.Update(txCtx, existing.ID, citizenFromInput(sanitized)); err != nil {
				return err
			}
			result.CustomerID = existing.CustomerID
			result.Created = false
			return nil
		}

		customerID, err := u.allocator.Allocate(txCtx, u.citizenRepo)
		if err != nil {
			return err
		}
		uniqueID, err := u.newUniqueID()
		if err != nil {
			return err
		}

		citizen := citizenFromInput(sanitized)
		citizen.CustomerID = customerID
		citizen.UniqueID = uniqueID
		citizen.IsActive = null.BoolFrom(true)
		if err := u.citizenRepo.Insert(txCtx, citizen); err != nil {
			return err
		}
		result.CustomerID = customerID
		result.Created = true
		return nil
	})
	if err != nil {
		metrics.ObserveRegistration(metrics.OutcomeFailed)
		logger.Error(ctx, "Citizen registration failed",
			zap.Error(err),
			zap.String("phone", sanitized.Phone),
		)
		return nil, err
	}

	tok, err := u.tokens.Next()
	if err != nil {
		metrics.ObserveRegistration(metrics.OutcomeFailed)
		return nil, err
	}
	result.Token = tok
	u.recordSession(ctx, tok, result.CustomerID)

	if result.Created {
		metrics.ObserveRegistration(metrics.OutcomeCreated)
	} else {
		metrics.ObserveRegistration(metrics.OutcomeUpdated)
	}
	return result, nil
}

func (u *RegistrationUsecase) recordSession(ctx context.Context, tok, customerID string) {
	if u.sessions == nil {
		return
	}
	data := &redis.SessionData{CustomerID: customerID, Role: entities.CitizenRole}
	if err := u.sessions.Save(ctx, tok, data, u.sessionTTL); err != nil {
		logger.Warn(ctx, "Failed to record session", zap.Error(err))
	}
}

func citizenFromInput(input *entities.RegisterCitizenInput) *entities.Citizen {
	return &entities.Citizen{
		Phone:        input.Phone,
		ContactNo:    input.ContactNo,
		OwnerName:    input.OwnerName,
		BuildingNo:   input.BuildingNo,
		Street:       input.Street,
		Area:         input.Area,
		Pincode:      input.Pincode,
		City:         input.City,
		District:     input.District,
		State:        input.State,
		Zone:         input.Zone,
		Ward:         input.Ward,
		PropertyName: input.PropertyName,
	}
}
