package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"iwms-citizen.backend/internal/domain/entities"
	domainerrors "iwms-citizen.backend/internal/domain/errors"
)

func seedCitizen(repo *citizenRepoStub, customerID, phone, contactNo string, isActive null.Bool) {
	repo.nextID++
	repo.rows = append(repo.rows, &entities.Citizen{
		ID:           repo.nextID,
		CustomerID:   customerID,
		UniqueID:     "CUS-" + customerID[len(customerID)-8:],
		Phone:        phone,
		ContactNo:    contactNo,
		OwnerName:    "Asha Rao",
		PropertyName: "Rao Residence",
		IsActive:     isActive,
	})
	repo.takenCustomerIDs[customerID] = true
}

func TestAccountResolve_Found(t *testing.T) {
	repo := newCitizenRepoStub()
	seedCitizen(repo, "CUS-2609-000001", "9000000001", "9111111111", null.BoolFrom(true))
	sessions := newSessionRecorderStub()
	u := NewAccountUsecase(repo, &tokenStub{}, sessions, time.Hour)

	res, err := u.Resolve(context.Background(), "9000000001")
	require.NoError(t, err)
	require.Equal(t, "CUS-2609-000001", res.CustomerID)
	require.Equal(t, "Asha Rao", res.OwnerName)
	require.Equal(t, "Rao Residence", res.PropertyName)
	require.NotEmpty(t, res.Token)

	sess, ok := sessions.saved[res.Token]
	require.True(t, ok)
	require.Equal(t, "citizen", sess.Role)
}

func TestAccountResolve_MatchingSymmetry(t *testing.T) {
	repo := newCitizenRepoStub()
	seedCitizen(repo, "CUS-2609-000002", "555", "777", null.BoolFrom(true))
	u := NewAccountUsecase(repo, &tokenStub{}, nil, time.Hour)
	ctx := context.Background()

	byPhone, err := u.Resolve(ctx, "555")
	require.NoError(t, err)
	byContact, err := u.Resolve(ctx, "777")
	require.NoError(t, err)
	require.Equal(t, byPhone.CustomerID, byContact.CustomerID)
}

func TestAccountResolve_UnsetIsActiveResolvable(t *testing.T) {
	repo := newCitizenRepoStub()
	seedCitizen(repo, "CUS-2609-000003", "9000000003", "9000000003", null.Bool{})
	u := NewAccountUsecase(repo, &tokenStub{}, nil, time.Hour)

	res, err := u.Resolve(context.Background(), "9000000003")
	require.NoError(t, err)
	require.Equal(t, "CUS-2609-000003", res.CustomerID)
}

func TestAccountResolve_DeactivatedNotFound(t *testing.T) {
	repo := newCitizenRepoStub()
	seedCitizen(repo, "CUS-2609-000004", "9000000004", "9000000004", null.BoolFrom(false))
	u := NewAccountUsecase(repo, &tokenStub{}, nil, time.Hour)

	_, err := u.Resolve(context.Background(), "9000000004")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAccountResolve_NotRegistered(t *testing.T) {
	repo := newCitizenRepoStub()
	u := NewAccountUsecase(repo, &tokenStub{}, nil, time.Hour)

	_, err := u.Resolve(context.Background(), "0000000000")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAccountResolve_BlankPhoneIsValidationError(t *testing.T) {
	repo := newCitizenRepoStub()
	u := NewAccountUsecase(repo, &tokenStub{}, nil, time.Hour)

	_, err := u.Resolve(context.Background(), "   ")
	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "phone", verr.Field)
}

func TestAccountResolve_TokenErrorPropagates(t *testing.T) {
	repo := newCitizenRepoStub()
	seedCitizen(repo, "CUS-2609-000005", "9000000005", "9000000005", null.BoolFrom(true))
	u := NewAccountUsecase(repo, &tokenStub{err: errors.New("no entropy")}, nil, time.Hour)

	_, err := u.Resolve(context.Background(), "9000000005")
	require.ErrorContains(t, err, "no entropy")
}

func TestAccountResolve_SessionFailureBestEffort(t *testing.T) {
	repo := newCitizenRepoStub()
	seedCitizen(repo, "CUS-2609-000006", "9000000006", "9000000006", null.BoolFrom(true))
	sessions := newSessionRecorderStub()
	sessions.err = errors.New("redis down")
	u := NewAccountUsecase(repo, &tokenStub{}, sessions, time.Hour)

	res, err := u.Resolve(context.Background(), "9000000006")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
}
