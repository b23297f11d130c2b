package dto

import (
	"time"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
)

// NameRequest carries a person's name.
type NameRequest struct {
	Given  string `json:"given" binding:"required,max=100"`
	Family string `json:"family" binding:"required,max=100"`
}

// CreateUserRequest defines the data needed to register a user.
// DateOfBirth uses the YYYY-MM-DD layout.
type CreateUserRequest struct {
	Name        NameRequest `json:"name" binding:"required"`
	DateOfBirth string      `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	Email       string      `json:"email" binding:"required,max=254"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name *NameRequest `json:"name"` // Only name is updatable for now
}

// AddEmailRequest adds an email to a user.
type AddEmailRequest struct {
	Address string `json:"address" binding:"required,max=254"`
	Type    string `json:"type" binding:"required,oneof=PRIMARY WORK PERSONAL"`
}

// AddAddressRequest adds a postal address to a user.
type AddAddressRequest struct {
	Street     string `json:"street" binding:"required,max=200"`
	City       string `json:"city" binding:"required,max=100"`
	PostalCode string `json:"postalCode" binding:"required,max=20"`
	Country    string `json:"country" binding:"required,max=100"`
	Region     string `json:"region" binding:"max=100"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// EmailResponse defines the data returned for a user email.
type EmailResponse struct {
	EmailID   string           `json:"emailID"`
	Address   string           `json:"address"`
	Type      domain.EmailType `json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
}

// AddressResponse defines the data returned for a user address.
type AddressResponse struct {
	AddressID  string    `json:"addressID"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	PostalCode string    `json:"postalCode"`
	Country    string    `json:"country"`
	Region     string    `json:"region,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID        string            `json:"userID"`
	Name          domain.Name       `json:"name"`
	DateOfBirth   string            `json:"dateOfBirth"`
	Emails        []EmailResponse   `json:"emails"`
	Addresses     []AddressResponse `json:"addresses"`
	CreatedAt     time.Time         `json:"createdAt"`
	LastUpdatedAt time.Time         `json:"lastUpdatedAt"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToEmailResponse converts a domain.UserEmail to its DTO.
func ToEmailResponse(e domain.UserEmail) EmailResponse {
	return EmailResponse{EmailID: e.EmailID, Address: e.Email.Address, Type: e.Email.Type, CreatedAt: e.CreatedAt}
}

// ToAddressResponse converts a domain.UserAddress to its DTO.
func ToAddressResponse(a domain.UserAddress) AddressResponse {
	return AddressResponse{
		AddressID:  a.AddressID,
		Street:     a.Address.Street,
		City:       a.Address.City,
		PostalCode: a.Address.PostalCode,
		Country:    a.Address.Country,
		Region:     a.Address.Region,
		CreatedAt:  a.CreatedAt,
	}
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	res := UserResponse{
		UserID:        u.UserID,
		Name:          u.Name,
		DateOfBirth:   u.DateOfBirth.Format(time.DateOnly),
		Emails:        make([]EmailResponse, len(u.Emails)),
		Addresses:     make([]AddressResponse, len(u.Addresses)),
		CreatedAt:     u.CreatedAt,
		LastUpdatedAt: u.LastUpdatedAt,
	}
	for i, e := range u.Emails {
		res.Emails[i] = ToEmailResponse(e)
	}
	for i, a := range u.Addresses {
		res.Addresses[i] = ToAddressResponse(a)
	}
	return res
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
