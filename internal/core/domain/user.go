package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/SscSPs/banking_backoffice/internal/apperrors"
	"github.com/google/uuid"
)

// Name is a person's given and family name.
type Name struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// NewName validates both name parts.
func NewName(given, family string) (Name, error) {
	g, err := requireText("given name", given, 100)
	if err != nil {
		return Name{}, err
	}
	f, err := requireText("family name", family, 100)
	if err != nil {
		return Name{}, err
	}
	return Name{Given: g, Family: f}, nil
}

// Full returns "Given Family".
func (n Name) Full() string {
	return n.Given + " " + n.Family
}

// Address is a postal address. Region is optional.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Region     string `json:"region,omitempty"`
}

// NewAddress validates the required address lines.
func NewAddress(street, city, postalCode, country, region string) (Address, error) {
	var (
		a   Address
		err error
	)
	if a.Street, err = requireText("street", street, 200); err != nil {
		return Address{}, err
	}
	if a.City, err = requireText("city", city, 100); err != nil {
		return Address{}, err
	}
	if a.PostalCode, err = requireText("postal code", postalCode, 20); err != nil {
		return Address{}, err
	}
	if a.Country, err = requireText("country", country, 100); err != nil {
		return Address{}, err
	}
	a.Country = strings.ToUpper(a.Country)
	if a.Region, err = optionalText("region", region, 100); err != nil {
		return Address{}, err
	}
	return a, nil
}

// EmailType classifies an email address.
type EmailType string

const (
	EmailPrimary  EmailType = "PRIMARY"
	EmailWork     EmailType = "WORK"
	EmailPersonal EmailType = "PERSONAL"
)

// ParseEmailType normalizes and validates an email type name.
func ParseEmailType(s string) (EmailType, error) {
	t := EmailType(strings.ToUpper(strings.TrimSpace(s)))
	switch t {
	case EmailPrimary, EmailWork, EmailPersonal:
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown email type %q", apperrors.ErrValidation, s)
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email is a normalized (lowercase) email address with its type.
type Email struct {
	Address string    `json:"address"`
	Type    EmailType `json:"type"`
}

// NewEmail validates address syntax and lowercases it.
func NewEmail(address string, emailType EmailType) (Email, error) {
	address = strings.TrimSpace(address)
	switch {
	case address == "":
		return Email{}, fmt.Errorf("%w: email address is required", apperrors.ErrValidation)
	case len(address) > 254:
		return Email{}, fmt.Errorf("%w: email address must be at most 254 characters", apperrors.ErrValidation)
	case strings.Count(address, "@") != 1:
		return Email{}, fmt.Errorf("%w: email address must contain exactly one '@'", apperrors.ErrValidation)
	}
	if local := address[:strings.Index(address, "@")]; len(local) > 64 {
		return Email{}, fmt.Errorf("%w: email local part must be at most 64 characters", apperrors.ErrValidation)
	}
	if !emailPattern.MatchString(address) {
		return Email{}, fmt.Errorf("%w: %q is not a valid email address", apperrors.ErrValidation, address)
	}
	if _, err := ParseEmailType(string(emailType)); err != nil {
		return Email{}, err
	}
	return Email{Address: strings.ToLower(address), Type: emailType}, nil
}

// UserEmail is an email owned by a user.
type UserEmail struct {
	EmailID   string    `json:"emailID"`
	UserID    string    `json:"userID"`
	Email     Email     `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserAddress is an address owned by a user.
type UserAddress struct {
	AddressID string    `json:"addressID"`
	UserID    string    `json:"userID"`
	Address   Address   `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

// User is a customer record.
type User struct {
	UserID        string        `json:"userID"`
	Name          Name          `json:"name"`
	DateOfBirth   time.Time     `json:"dateOfBirth"`
	Emails        []UserEmail   `json:"emails"`
	Addresses     []UserAddress `json:"addresses"`
	CreatedAt     time.Time     `json:"createdAt"`
	LastUpdatedAt time.Time     `json:"lastUpdatedAt"`
}

// NewUser creates a user with its primary email.
func NewUser(name Name, dateOfBirth time.Time, primaryEmail string) (*User, error) {
	now := time.Now().UTC()
	if dateOfBirth.IsZero() || dateOfBirth.After(now) {
		return nil, fmt.Errorf("%w: date of birth must be in the past", apperrors.ErrValidation)
	}
	email, err := NewEmail(primaryEmail, EmailPrimary)
	if err != nil {
		return nil, err
	}
	u := &User{
		UserID:        uuid.NewString(),
		Name:          name,
		DateOfBirth:   dateOfBirth.UTC(),
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if _, err := u.AddEmail(email); err != nil {
		return nil, err
	}
	return u, nil
}

// Rename replaces the user's name.
func (u *User) Rename(name Name) {
	u.Name = name
	u.LastUpdatedAt = time.Now().UTC()
}

// AddEmail attaches an email; the same address cannot be registered twice on one user.
func (u *User) AddEmail(email Email) (UserEmail, error) {
	for _, e := range u.Emails {
		if e.Email.Address == email.Address {
			return UserEmail{}, fmt.Errorf("%w: email %s is already registered", apperrors.ErrConflict, email.Address)
		}
	}
	ue := UserEmail{EmailID: uuid.NewString(), UserID: u.UserID, Email: email, CreatedAt: time.Now().UTC()}
	u.Emails = append(u.Emails, ue)
	return ue, nil
}

// RemoveEmail detaches an email by id.
func (u *User) RemoveEmail(emailID string) error {
	for i, e := range u.Emails {
		if e.EmailID == emailID {
			u.Emails = append(u.Emails[:i], u.Emails[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: email %s not found for user %s", apperrors.ErrGone, emailID, u.UserID)
}

// AddAddress attaches an address.
func (u *User) AddAddress(address Address) UserAddress {
	ua := UserAddress{AddressID: uuid.NewString(), UserID: u.UserID, Address: address, CreatedAt: time.Now().UTC()}
	u.Addresses = append(u.Addresses, ua)
	return ua
}

// RemoveAddress detaches an address by id.
func (u *User) RemoveAddress(addressID string) error {
	for i, a := range u.Addresses {
		if a.AddressID == addressID {
			u.Addresses = append(u.Addresses[:i], u.Addresses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: address %s not found for user %s", apperrors.ErrGone, addressID, u.UserID)
}
