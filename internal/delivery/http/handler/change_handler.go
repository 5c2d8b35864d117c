package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/address-verification/internal/pkg/errors"
	"github.com/address-verification/internal/pkg/utils"
	"github.com/address-verification/internal/usecase"
	"github.com/address-verification/internal/usecase/dto"
)

// ChangeHandler serves the admin change-request workflow.
type ChangeHandler struct {
	reviewUC *usecase.ReviewUseCase
	logger   *zap.Logger
}

func NewChangeHandler(reviewUC *usecase.ReviewUseCase, logger *zap.Logger) *ChangeHandler {
	return &ChangeHandler{
		reviewUC: reviewUC,
		logger:   logger,
	}
}

// List godoc
// @Summary Değişiklik talepleri
// @Description Talepleri duruma göre filtreleyerek sayfalı listeler.
// @Tags Changes
// @Produce json
// @Param status query string false "pending, approved, rejected veya all" default(pending)
// @Param page query int false "Sayfa" default(1)
// @Param limit query int false "Sayfa boyutu" default(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.ChangeListResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/changes [get]
func (h *ChangeHandler) List(c *fiber.Ctx) error {
	req := dto.ChangeListRequest{
		Status: c.Query("status", "pending"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 20),
	}

	result, err := h.reviewUC.List(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Pagination.Total,
		Page:  result.Pagination.Page,
		Limit: result.Pagination.Limit,
		Pages: result.Pagination.Pages,
	})
}

// PendingCount godoc
// @Summary Bekleyen talep sayısı
// @Tags Changes
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.PendingCountResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/changes/pending-count [get]
func (h *ChangeHandler) PendingCount(c *fiber.Ctx) error {
	count, err := h.reviewUC.PendingCount(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.PendingCountResponse{Count: count}, nil)
}

// Approve godoc
// @Summary Talebi onayla
// @Description Talebi uygular: yeni kayıt oluşturur veya mevcut kişiyi günceller.
// @Tags Changes
// @Accept json
// @Produce json
// @Param id path string true "Talep kimliği"
// @Param request body dto.ApproveRequest false "Onay seçenekleri"
// @Success 200 {object} utils.SuccessResponse{data=dto.ChangeActionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/changes/{id}/approve [post]
func (h *ChangeHandler) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var req dto.ApproveRequest
	// Body is optional; addToSystem defaults to false.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest)
		}
	}

	change, err := h.reviewUC.Approve(c.Context(), id, req.AddToSystem)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.ChangeActionResponse{
		Message: "Değişiklik onaylandı",
		Change:  change,
	}, nil)
}

// Reject godoc
// @Summary Talebi reddet
// @Tags Changes
// @Produce json
// @Param id path string true "Talep kimliği"
// @Success 200 {object} utils.SuccessResponse{data=dto.ChangeActionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/changes/{id}/reject [post]
func (h *ChangeHandler) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	change, err := h.reviewUC.Reject(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.ChangeActionResponse{
		Message: "Değişiklik reddedildi",
		Change:  change,
	}, nil)
}
