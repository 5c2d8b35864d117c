package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/address-verification/internal/pkg/errors"
	"github.com/address-verification/internal/pkg/utils"
	"github.com/address-verification/internal/pkg/validator"
	"github.com/address-verification/internal/usecase"
	"github.com/address-verification/internal/usecase/dto"
)

// PublicHandler serves the anonymous form endpoints: lookup by reference
// code, submission and click tracking.
type PublicHandler struct {
	submissionUC *usecase.SubmissionUseCase
	logger       *zap.Logger
}

func NewPublicHandler(submissionUC *usecase.SubmissionUseCase, logger *zap.Logger) *PublicHandler {
	return &PublicHandler{
		submissionUC: submissionUC,
		logger:       logger,
	}
}

// Lookup godoc
// @Summary Kod ile kayıt görüntüleme
// @Description Referans kodu ile kişi kaydını döner. Bekleyen değişiklik varsa güncel hali gösterilir.
// @Tags Public
// @Produce json
// @Param code path string true "Referans kodu"
// @Success 200 {object} utils.SuccessResponse{data=dto.LookupResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/public/{code} [get]
func (h *PublicHandler) Lookup(c *fiber.Ctx) error {
	result, err := h.submissionUC.Lookup(c.Context(), c.Params("code"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// Submit godoc
// @Summary Form gönderimi
// @Description Mevcut kod için değişiklik talebi, kod yoksa yeni kayıt talebi oluşturur.
// @Tags Public
// @Accept json
// @Produce json
// @Param request body dto.SubmitRequest true "Form verisi"
// @Success 200 {object} utils.SuccessResponse{data=dto.SubmitResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/public/submit [post]
func (h *PublicHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.submissionUC.Submit(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// TrackClick godoc
// @Summary Arama butonu tıklaması
// @Description Kayda ait arama butonu tıklamasını kaydeder.
// @Tags Public
// @Produce json
// @Param code path string true "Referans kodu"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/public/track-click/{code} [post]
func (h *PublicHandler) TrackClick(c *fiber.Ctx) error {
	if err := h.submissionUC.TrackClick(c.Context(), c.Params("code")); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"tracked": true}, nil)
}
