package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// CitizenRole is the role reported for every citizen account
const CitizenRole = "citizen"

// Citizen represents a citizen profile entity.
// IsActive is tri-state: unset and true are both resolvable by login/verify,
// false means the profile was explicitly deactivated.
type Citizen struct {
	ID           uint      `json:"-"`
	UniqueID     string    `json:"-"`
	CustomerID   string    `json:"customerId"`
	Phone        string    `json:"phone"`
	ContactNo    string    `json:"contactNo"`
	OwnerName    string    `json:"ownerName"`
	BuildingNo   string    `json:"buildingNo"`
	Street       string    `json:"street"`
	Area         string    `json:"area"`
	Pincode      string    `json:"pincode"`
	City         string    `json:"city"`
	District     string    `json:"district"`
	State        string    `json:"state"`
	Zone         string    `json:"zone"`
	Ward         string    `json:"ward"`
	PropertyName string    `json:"propertyName"`
	IsActive     null.Bool `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterCitizenInput represents input for citizen registration.
// All fields are required; values are trimmed before validation.
type RegisterCitizenInput struct {
	Phone        string `json:"phone" form:"phone"`
	OwnerName    string `json:"owner_name" form:"owner_name"`
	ContactNo    string `json:"contact_no" form:"contact_no"`
	BuildingNo   string `json:"building_no" form:"building_no"`
	Street       string `json:"street" form:"street"`
	Area         string `json:"area" form:"area"`
	Pincode      string `json:"pincode" form:"pincode"`
	City         string `json:"city" form:"city"`
	District     string `json:"district" form:"district"`
	State        string `json:"state" form:"state"`
	Zone         string `json:"zone" form:"zone"`
	Ward         string `json:"ward" form:"ward"`
	PropertyName string `json:"property_name" form:"property_name"`
}

// LoginInput represents input for the login and verify endpoints
type LoginInput struct {
	Phone string `json:"phone" form:"phone"`
}

// RegistrationResult is the outcome of a successful registration
type RegistrationResult struct {
	CustomerID string
	OwnerName  string
	Created    bool
	Token      string
}

// AccountLookupResult is the outcome of a successful login/verify lookup
type AccountLookupResult struct {
	CustomerID   string
	OwnerName    string
	PropertyName string
	Token        string
}
