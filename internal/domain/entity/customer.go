package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopcart/pos-api/internal/domain/enum"
)

// Customer represents a loyalty customer, keyed by mobile number.
// The point balance only changes through invoice accrual; identity
// capture never touches it.
type Customer struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Mobile    string         `gorm:"size:10;uniqueIndex;not null" json:"mobile"`
	DOB       *string        `gorm:"size:10" json:"dob,omitempty"`
	Email     *string        `gorm:"size:255" json:"email,omitempty"`
	Points    int            `gorm:"not null;default:0" json:"points"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Invoices []Invoice `gorm:"foreignKey:CustomerID" json:"-"`
}

// Tier returns the reward tier derived from the current point balance.
func (c *Customer) Tier() enum.RewardTier {
	return enum.TierForPoints(c.Points)
}

// EmailOrEmpty returns the stored email or "" when absent.
func (c *Customer) EmailOrEmpty() string {
	if c.Email == nil {
		return ""
	}
	return *c.Email
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
