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

// DefinitionHandler serves the admin address-definition maintenance.
type DefinitionHandler struct {
	definitionUC *usecase.DefinitionUseCase
	logger       *zap.Logger
}

func NewDefinitionHandler(definitionUC *usecase.DefinitionUseCase, logger *zap.Logger) *DefinitionHandler {
	return &DefinitionHandler{
		definitionUC: definitionUC,
		logger:       logger,
	}
}

// List godoc
// @Summary Adres tanımları
// @Description Bir seviyedeki kayıtları üst kayıt ve isim filtresiyle listeler.
// @Tags Definitions
// @Produce json
// @Param type query string true "province, district, neighborhood veya street"
// @Param parentId query string false "Üst kayıt kimliği"
// @Param search query string false "İsim filtresi"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.DefinitionItem}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/definitions/list [get]
func (h *DefinitionHandler) List(c *fiber.Ctx) error {
	req := dto.DefinitionListRequest{
		Type:     c.Query("type"),
		ParentID: c.Query("parentId"),
		Search:   c.Query("search"),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	items, err := h.definitionUC.List(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, items, &utils.Meta{Total: len(items)})
}

// Add godoc
// @Summary Adres tanımı ekle
// @Description Seçilen seviyeye özel kayıt ekler; il dışındaki seviyeler üst kayıt ister.
// @Tags Definitions
// @Accept json
// @Produce json
// @Param request body dto.AddDefinitionRequest true "Tanım verisi"
// @Success 201 {object} utils.SuccessResponse{data=domain.GeoNode}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/definitions/add [post]
func (h *DefinitionHandler) Add(c *fiber.Ctx) error {
	var req dto.AddDefinitionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	node, err := h.definitionUC.Add(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, node, nil)
}

// Delete godoc
// @Summary Adres tanımı sil
// @Description Alt kaydı olmayan tanımı siler; alt kayıt varsa reddeder.
// @Tags Definitions
// @Produce json
// @Param placeId path string true "Kayıt kimliği"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/definitions/{placeId} [delete]
func (h *DefinitionHandler) Delete(c *fiber.Ctx) error {
	if err := h.definitionUC.Delete(c.Context(), c.Params("placeId")); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
