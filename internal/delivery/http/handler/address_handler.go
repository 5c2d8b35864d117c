package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/address-verification/internal/pkg/utils"
	"github.com/address-verification/internal/usecase"
)

// AddressHandler serves the cascading address pickers and the manual sync
// trigger.
type AddressHandler struct {
	resolverUC *usecase.ResolverUseCase
	logger     *zap.Logger
}

func NewAddressHandler(resolverUC *usecase.ResolverUseCase, logger *zap.Logger) *AddressHandler {
	return &AddressHandler{
		resolverUC: resolverUC,
		logger:     logger,
	}
}

// Provinces godoc
// @Summary İl listesi
// @Description Tüm illeri Türkçe alfabetik sırayla döner.
// @Tags Addresses
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.AddressOption}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/addresses/provinces [get]
func (h *AddressHandler) Provinces(c *fiber.Ctx) error {
	options, err := h.resolverUC.Provinces(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, options, &utils.Meta{Total: len(options)})
}

// Districts godoc
// @Summary İlçe listesi
// @Description Bir ile ait ilçeleri döner; gerekirse dış kaynaktan doldurur.
// @Tags Addresses
// @Produce json
// @Param provinceId path string true "İl kimliği"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.AddressOption}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/addresses/districts/{provinceId} [get]
func (h *AddressHandler) Districts(c *fiber.Ctx) error {
	options, err := h.resolverUC.Districts(c.Context(), c.Params("provinceId"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, options, &utils.Meta{Total: len(options)})
}

// Neighborhoods godoc
// @Summary Mahalle listesi
// @Description Bir ilçeye ait mahalleleri döner; köyler de listeye dahildir.
// @Tags Addresses
// @Produce json
// @Param districtId path string true "İlçe kimliği"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.AddressOption}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/addresses/neighborhoods/{districtId} [get]
func (h *AddressHandler) Neighborhoods(c *fiber.Ctx) error {
	options, err := h.resolverUC.Neighborhoods(c.Context(), c.Params("districtId"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, options, &utils.Meta{Total: len(options)})
}

// Sync godoc
// @Summary Tam adres senkronizasyonu
// @Description Hiyerarşinin tamamını arka planda yenilemek üzere işi kuyruğa alır.
// @Tags Addresses
// @Produce json
// @Success 202 {object} utils.SuccessResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/addresses/sync [post]
func (h *AddressHandler) Sync(c *fiber.Ctx) error {
	if err := h.resolverUC.EnqueueFullSync(c.Context(), c.IP()); err != nil {
		return utils.SendError(c, err)
	}
	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, fiber.Map{
		"message": "Adres senkronizasyonu başlatıldı",
		"status":  "started",
	}, nil)
}
