package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/volatiletech/null/v8"
	"iwms-citizen.backend/internal/domain/entities"
	domainerrors "iwms-citizen.backend/internal/domain/errors"
	"iwms-citizen.backend/internal/infrastructure/models"
)

// CitizenRepository implements citizen profile data operations
type CitizenRepository struct {
	db *gorm.DB
}

// NewCitizenRepository creates a new citizen repository
func NewCitizenRepository(db *gorm.DB) *CitizenRepository {
	return &CitizenRepository{db: db}
}

// FindActiveByContact gets a profile matching phone OR contact_no, restricted
// to profiles whose is_active is true or unset. Used by login/verify; no lock.
func (r *CitizenRepository) FindActiveByContact(ctx context.Context, phone string) (*entities.Citizen, error) {
	var m models.CitizenProfile
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("(phone = ? OR contact_no = ?) AND (is_active IS NULL OR is_active = ?)", phone, phone, true).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// FindForUpdateByContact gets a profile matching contact_no OR phone regardless
// of is_active, holding a row lock until the surrounding transaction ends. The
// lock is the sole serialization point for concurrent registrations of the same
// contact pair. The predicate returns at most one row; if phone and contact_no
// each match a different profile the store picks one.
func (r *CitizenRepository) FindForUpdateByContact(ctx context.Context, phone, contactNo string) (*entities.Citizen, error) {
	tx := GetDB(ctx, r.db).WithContext(ctx)
	// SQLite has no SELECT ... FOR UPDATE; its single writer already serializes.
	if tx.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var m models.CitizenProfile
	err := tx.Where("contact_no = ? OR phone = ?", contactNo, phone).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Insert creates a new profile row
func (r *CitizenRepository) Insert(ctx context.Context, citizen *entities.Citizen) error {
	m := r.toModel(citizen)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	citizen.ID = m.ID
	citizen.CreatedAt = m.CreatedAt
	citizen.UpdatedAt = m.UpdatedAt
	return nil
}

// Update overwrites all profile fields of the row with the given id,
// reactivates it and bumps updated_at. The customer_id is never touched.
func (r *CitizenRepository) Update(ctx context.Context, id uint, citizen *entities.Citizen) error {
	updates := map[string]interface{}{
		"owner_name":    citizen.OwnerName,
		"phone":         citizen.Phone,
		"contact_no":    citizen.ContactNo,
		"building_no":   citizen.BuildingNo,
		"street":        citizen.Street,
		"area":          citizen.Area,
		"pincode":       citizen.Pincode,
		"city":          citizen.City,
		"district":      citizen.District,
		"state":         citizen.State,
		"zone":          citizen.Zone,
		"ward":          citizen.Ward,
		"property_name": citizen.PropertyName,
		"is_active":     true,
		"updated_at":    time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.CitizenProfile{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ExistsCustomerID reports whether a customer id is already taken. No lock;
// the unique index on customer_id backstops the race window before Insert.
func (r *CitizenRepository) ExistsCustomerID(ctx context.Context, customerID string) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.CitizenProfile{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CitizenRepository) toEntity(m *models.CitizenProfile) *entities.Citizen {
	return &entities.Citizen{
		ID:           m.ID,
		UniqueID:     m.UniqueID,
		CustomerID:   m.CustomerID,
		Phone:        m.Phone,
		ContactNo:    m.ContactNo,
		OwnerName:    m.OwnerName,
		BuildingNo:   m.BuildingNo,
		Street:       m.Street,
		Area:         m.Area,
		Pincode:      m.Pincode,
		City:         m.City,
		District:     m.District,
		State:        m.State,
		Zone:         m.Zone,
		Ward:         m.Ward,
		PropertyName: m.PropertyName,
		IsActive:     null.BoolFromPtr(m.IsActive),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (r *CitizenRepository) toModel(e *entities.Citizen) *models.CitizenProfile {
	return &models.CitizenProfile{
		ID:           e.ID,
		UniqueID:     e.UniqueID,
		CustomerID:   e.CustomerID,
		Phone:        e.Phone,
		ContactNo:    e.ContactNo,
		OwnerName:    e.OwnerName,
		BuildingNo:   e.BuildingNo,
		Street:       e.Street,
		Area:         e.Area,
		Pincode:      e.Pincode,
		City:         e.City,
		District:     e.District,
		State:        e.State,
		Zone:         e.Zone,
		Ward:         e.Ward,
		PropertyName: e.PropertyName,
		IsActive:     e.IsActive.Ptr(),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}
