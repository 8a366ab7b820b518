package repositories

import (
	"context"

	"iwms-citizen.backend/internal/domain/entities"
)

// CitizenRepository defines citizen profile data operations.
// All methods honor a transaction injected into the context by UnitOfWork.
type CitizenRepository interface {
	// FindActiveByContact matches phone OR contact_no against the given value,
	// restricted to profiles whose is_active is true or unset. No lock taken.
	FindActiveByContact(ctx context.Context, phone string) (*entities.Citizen, error)

	// FindForUpdateByContact matches contact_no OR phone regardless of is_active
	// and holds a row lock until the surrounding transaction ends. Registration
	// must see deactivated rows too, so a re-registration reactivates instead of
	// duplicating. The predicate returns at most one row; if phone and contact_no
	// each match a different profile, which one wins is unspecified.
	FindForUpdateByContact(ctx context.Context, phone, contactNo string) (*entities.Citizen, error)

	// Insert creates a new profile row. Returns ErrAlreadyExists if the store
	// rejects it on a uniqueness constraint.
	Insert(ctx context.Context, citizen *entities.Citizen) error

	// Update overwrites all profile fields of the row with the given id,
	// sets is_active to true and bumps updated_at.
	Update(ctx context.Context, id uint, citizen *entities.Citizen) error

	// ExistsCustomerID reports whether a customer id is already taken
	ExistsCustomerID(ctx context.Context, customerID string) (bool, error)
}
