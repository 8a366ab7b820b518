package usecases

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	domainerrors "iwms-citizen.backend/internal/domain/errors"
)

const (
	customerIDPrefix = "CUS"

	// allocationAttempts bounds the collision retry loop. The cap also caps
	// how long the registration row lock is held.
	allocationAttempts = 5

	// 6-digit suffix gives a 1e6 address space per month
	customerIDSuffixSpace = 1000000
)

// CustomerIDChecker is the slice of the store the allocator needs
type CustomerIDChecker interface {
	ExistsCustomerID(ctx context.Context, customerID string) (bool, error)
}

// CustomerIDAllocator produces candidate customer identifiers of the form
// CUS-YYMM-NNNNNN and checks them against the store before use.
type CustomerIDAllocator struct {
	now  func() time.Time
	rand func(max int64) (int64, error)
}

// NewCustomerIDAllocator creates an allocator backed by crypto/rand
func NewCustomerIDAllocator() *CustomerIDAllocator {
	return &CustomerIDAllocator{
		now:  time.Now,
		rand: cryptoRandInt,
	}
}

// Allocate returns a customer id not currently in use, or ErrAllocationFailed
// after the attempt bound is exhausted. The final reservation happens at
// insert time via the store's unique index; this check only keeps the
// collision probability negligible.
func (a *CustomerIDAllocator) Allocate(ctx context.Context, store CustomerIDChecker) (string, error) {
	for attempt := 0; attempt < allocationAttempts; attempt++ {
		n, err := a.rand(customerIDSuffixSpace)
		if err != nil {
			return "", err
		}
		candidate := fmt.Sprintf("%s-%s-%06d", customerIDPrefix, a.now().Format("0601"), n)

		exists, err := store.ExistsCustomerID(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", domainerrors.ErrAllocationFailed
}

func cryptoRandInt(max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}
