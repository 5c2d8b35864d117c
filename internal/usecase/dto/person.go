package dto

import "github.com/address-verification/internal/domain"

type PersonListRequest struct {
	Search string `query:"search"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

type PersonListResponse struct {
	Persons    []*domain.Person `json:"persons"`
	Pagination Pagination       `json:"pagination"`
}

type CreatePersonRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Province     string `json:"province"`
	District     string `json:"district"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
	BuildingNo   string `json:"buildingNo"`
	ApartmentNo  string `json:"apartmentNo"`
	PostalCode   string `json:"postalCode"`
	FullAddress  string `json:"fullAddress"`
}

// UpdatePersonRequest is a partial field map; only known person fields are
// applied.
type UpdatePersonRequest map[string]interface{}
