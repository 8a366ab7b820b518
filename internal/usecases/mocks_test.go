package usecases

import (
	"context"
	"fmt"
	"testing"
	"time"

	"iwms-citizen.backend/internal/domain/entities"
	domainerrors "iwms-citizen.backend/internal/domain/errors"
	"iwms-citizen.backend/pkg/logger"
	"iwms-citizen.backend/pkg/redis"
)

func TestMain(m *testing.M) {
	logger.Init("development")
	m.Run()
}

// citizenRepoStub is an in-memory CitizenRepository with error injection
type citizenRepoStub struct {
	rows   []*entities.Citizen
	nextID uint

	insertErr        error
	updateErr        error
	findForUpdateErr error
	existsErr        error
	existsCalls      int
	takenCustomerIDs map[string]bool
}

func newCitizenRepoStub() *citizenRepoStub {
	return &citizenRepoStub{takenCustomerIDs: map[string]bool{}}
}

func (s *citizenRepoStub) FindActiveByContact(_ context.Context, phone string) (*entities.Citizen, error) {
	for _, c := range s.rows {
		if (c.Phone == phone || c.ContactNo == phone) && (!c.IsActive.Valid || c.IsActive.Bool) {
			return c, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *citizenRepoStub) FindForUpdateByContact(_ context.Context, phone, contactNo string) (*entities.Citizen, error) {
	if s.findForUpdateErr != nil {
		return nil, s.findForUpdateErr
	}
	for _, c := range s.rows {
		if c.ContactNo == contactNo || c.Phone == phone {
			return c, nil
		}
	}
	return nil, domainerrors.ErrNotFound
}

func (s *citizenRepoStub) Insert(_ context.Context, citizen *entities.Citizen) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	if s.takenCustomerIDs[citizen.CustomerID] {
		return domainerrors.ErrAlreadyExists
	}
	s.nextID++
	citizen.ID = s.nextID
	citizen.CreatedAt = time.Now()
	citizen.UpdatedAt = citizen.CreatedAt
	s.rows = append(s.rows, citizen)
	s.takenCustomerIDs[citizen.CustomerID] = true
	return nil
}

func (s *citizenRepoStub) Update(_ context.Context, id uint, citizen *entities.Citizen) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	for _, c := range s.rows {
		if c.ID == id {
			keepID, keepUnique, keepCustomer := c.ID, c.UniqueID, c.CustomerID
			*c = *citizen
			c.ID, c.UniqueID, c.CustomerID = keepID, keepUnique, keepCustomer
			c.IsActive.SetValid(true)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return domainerrors.ErrNotFound
}

func (s *citizenRepoStub) ExistsCustomerID(_ context.Context, customerID string) (bool, error) {
	s.existsCalls++
	if s.existsErr != nil {
		return false, s.existsErr
	}
	return s.takenCustomerIDs[customerID], nil
}

// uowStub runs the function directly; rollback is the caller discarding state
type uowStub struct {
	doErr error
	calls int
}

func (u *uowStub) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	u.calls++
	if u.doErr != nil {
		return u.doErr
	}
	return fn(ctx)
}

// tokenStub mints deterministic tokens
type tokenStub struct {
	n   int
	err error
}

func (t *tokenStub) Next() (string, error) {
	if t.err != nil {
		return "", t.err
	}
	t.n++
	return fmt.Sprintf("tok-%04d", t.n), nil
}

// sessionRecorderStub captures recorded sessions
type sessionRecorderStub struct {
	saved map[string]*redis.SessionData
	err   error
}

func newSessionRecorderStub() *sessionRecorderStub {
	return &sessionRecorderStub{saved: map[string]*redis.SessionData{}}
}

func (s *sessionRecorderStub) Save(_ context.Context, token string, data *redis.SessionData, _ time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.saved[token] = data
	return nil
}

func validRegisterInput(phone string) *entities.RegisterCitizenInput {
	return &entities.RegisterCitizenInput{
		Phone:        phone,
		OwnerName:    "Asha Rao",
		ContactNo:    phone,
		BuildingNo:   "12B",
		Street:       "MG Road",
		Area:         "Indiranagar",
		Pincode:      "560038",
		City:         "Bengaluru",
		District:     "Bengaluru Urban",
		State:        "Karnataka",
		Zone:         "East",
		Ward:         "W-80",
		PropertyName: "Rao Residence",
	}
}
