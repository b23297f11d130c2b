package mapping

import (
	"database/sql"

	"github.com/SscSPs/banking_backoffice/internal/core/domain"
	"github.com/SscSPs/banking_backoffice/internal/models"
)

// ToModelUser converts a domain User to its row
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:      d.UserID,
		GivenName:   d.Name.Given,
		FamilyName:  d.Name.Family,
		DateOfBirth: d.DateOfBirth,
		AuditFields: ToModelAuditFields(d.CreatedAt, d.LastUpdatedAt),
	}
}

// ToModelUserEmail converts a domain UserEmail to its row
func ToModelUserEmail(d domain.UserEmail) models.UserEmail {
	return models.UserEmail{
		EmailID:   d.EmailID,
		UserID:    d.UserID,
		Address:   d.Email.Address,
		EmailType: string(d.Email.Type),
		CreatedAt: d.CreatedAt,
	}
}

// ToModelUserAddress converts a domain UserAddress to its row
func ToModelUserAddress(d domain.UserAddress) models.UserAddress {
	return models.UserAddress{
		AddressID:  d.AddressID,
		UserID:     d.UserID,
		Street:     d.Address.Street,
		City:       d.Address.City,
		PostalCode: d.Address.PostalCode,
		Country:    d.Address.Country,
		Region:     sql.NullString{String: d.Address.Region, Valid: d.Address.Region != ""},
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainUser converts a user row and its child rows to the domain aggregate
func ToDomainUser(m models.User, emails []models.UserEmail, addresses []models.UserAddress) domain.User {
	d := domain.User{
		UserID:        m.UserID,
		Name:          domain.Name{Given: m.GivenName, Family: m.FamilyName},
		DateOfBirth:   m.DateOfBirth,
		Emails:        make([]domain.UserEmail, len(emails)),
		Addresses:     make([]domain.UserAddress, len(addresses)),
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
	for i, e := range emails {
		d.Emails[i] = domain.UserEmail{
			EmailID:   e.EmailID,
			UserID:    e.UserID,
			Email:     domain.Email{Address: e.Address, Type: domain.EmailType(e.EmailType)},
			CreatedAt: e.CreatedAt,
		}
	}
	for i, a := range addresses {
		d.Addresses[i] = domain.UserAddress{
			AddressID: a.AddressID,
			UserID:    a.UserID,
			Address: domain.Address{
				Street:     a.Street,
				City:       a.City,
				PostalCode: a.PostalCode,
				Country:    a.Country,
				Region:     a.Region.String,
			},
			CreatedAt: a.CreatedAt,
		}
	}
	return d
}
