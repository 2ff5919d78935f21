package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"`
	OIDCID       string    `gorm:"index" json:"-"` // OpenID Connect subject, empty for local accounts

	EmailNotifications     bool `gorm:"default:true" json:"email_notifications"`
	MarketingNotifications bool `gorm:"default:false" json:"marketing_notifications"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Addresses []UserAddress `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	Avatars   []UserAvatar  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"avatars,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

type UserAddress struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_addresses_user_default;not null" json:"user_id"`
	Type      string    `gorm:"default:home" json:"type"` // home, work, other
	IsDefault bool      `gorm:"index:idx_addresses_user_default;default:false" json:"is_default"`

	FullName     string `gorm:"not null" json:"full_name"`
	Company      string `json:"company,omitempty"`
	AddressLine1 string `gorm:"not null" json:"address_line_1"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	City         string `gorm:"not null" json:"city"`
	State        string `gorm:"not null" json:"state"`
	PostalCode   string `gorm:"not null" json:"postal_code"`
	Country      string `gorm:"not null" json:"country"`
	PhoneNumber  string `json:"phone_number,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *UserAddress) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Snapshot returns the address as an order-embeddable copy, detached from
// the live row.
func (a *UserAddress) Snapshot() Address {
	return Address{
		FullName:     a.FullName,
		Company:      a.Company,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
		PhoneNumber:  a.PhoneNumber,
	}
}

type UserAvatar struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Name         string    `gorm:"not null" json:"name"`
	AvatarData   string    `json:"avatar_data"`
	Measurements string    `json:"measurements"`
	IsDefault    bool      `gorm:"default:false" json:"is_default"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (av *UserAvatar) BeforeCreate(tx *gorm.DB) error {
	if av.ID == uuid.Nil {
		av.ID = uuid.New()
	}
	return nil
}

// Address is the frozen address embedded on orders, stored as a JSON column.
type Address struct {
	FullName     string `json:"full_name"`
	Company      string `json:"company,omitempty"`
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
	PhoneNumber  string `json:"phone_number,omitempty"`
}

func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Address) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = Address{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}
}
