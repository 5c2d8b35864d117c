package dto

import "github.com/address-verification/internal/domain"

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type ChangeListRequest struct {
	Status string `json:"status" query:"status"`
	Page   int    `json:"page" query:"page"`
	Limit  int    `json:"limit" query:"limit"`
}

type ChangeListResponse struct {
	Changes    []*domain.ChangeRequest `json:"changes"`
	Pagination Pagination              `json:"pagination"`
}

type ApproveRequest struct {
	// AddToSystem asks for the manually entered neighborhood to be
	// registered into the address cache alongside the approval.
	AddToSystem bool `json:"addToSystem"`
}

type ChangeActionResponse struct {
	Message string                `json:"message"`
	Change  *domain.ChangeRequest `json:"change"`
}

type PendingCountResponse struct {
	Count int `json:"count"`
}
