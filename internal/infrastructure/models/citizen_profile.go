package models

import (
	"time"
)

// CitizenProfile mirrors the citizen_profiles table of the IWMS database.
// customer_id and unique_id are unique; the duplicate-key path on insert is
// what surfaces concurrent allocation races.
type CitizenProfile struct {
	ID           uint    `gorm:"primaryKey;autoIncrement"`
	UniqueID     string  `gorm:"type:varchar(32);uniqueIndex;not null"`
	CustomerID   string  `gorm:"type:varchar(32);uniqueIndex;not null"`
	Phone        string  `gorm:"type:varchar(20);not null;index"`
	ContactNo    string  `gorm:"type:varchar(20);not null;index"`
	OwnerName    string  `gorm:"type:varchar(255);not null"`
	BuildingNo   string  `gorm:"type:varchar(50);not null"`
	Street       string  `gorm:"type:varchar(255);not null"`
	Area         string  `gorm:"type:varchar(255);not null"`
	Pincode      string  `gorm:"type:varchar(10);not null"`
	City         string  `gorm:"type:varchar(100);not null"`
	District     string  `gorm:"type:varchar(100);not null"`
	State        string  `gorm:"type:varchar(100);not null"`
	Zone         string  `gorm:"type:varchar(50);not null"`
	Ward         string  `gorm:"type:varchar(50);not null"`
	PropertyName string  `gorm:"type:varchar(255);not null"`
	IsActive     *bool   `gorm:"type:boolean"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for CitizenProfile
func (CitizenProfile) TableName() string {
	return "citizen_profiles"
}
