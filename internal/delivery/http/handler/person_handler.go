package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/address-verification/internal/pkg/errors"
	"github.com/address-verification/internal/pkg/utils"
	"github.com/address-verification/internal/pkg/validator"
	"github.com/address-verification/internal/usecase"
	"github.com/address-verification/internal/usecase/dto"
)

// PersonHandler serves the admin person directory CRUD.
type PersonHandler struct {
	personUC *usecase.PersonUseCase
	logger   *zap.Logger
}

func NewPersonHandler(personUC *usecase.PersonUseCase, logger *zap.Logger) *PersonHandler {
	return &PersonHandler{
		personUC: personUC,
		logger:   logger,
	}
}

// List godoc
// @Summary Kişi listesi
// @Description Kişileri arama terimiyle filtreleyerek sayfalı listeler.
// @Tags Persons
// @Produce json
// @Param search query string false "Ad, soyad, telefon, e-posta veya kod"
// @Param page query int false "Sayfa" default(1)
// @Param limit query int false "Sayfa boyutu" default(20)
// @Success 200 {object} utils.SuccessResponse{data=dto.PersonListResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/persons [get]
func (h *PersonHandler) List(c *fiber.Ctx) error {
	req := dto.PersonListRequest{
		Search: c.Query("search"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 20),
	}

	result, err := h.personUC.List(c.Context(), &req)
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

// Get godoc
// @Summary Kişi detayı
// @Tags Persons
// @Produce json
// @Param id path string true "Kişi kimliği"
// @Success 200 {object} utils.SuccessResponse{data=domain.Person}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/persons/{id} [get]
func (h *PersonHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	person, err := h.personUC.Get(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, person, nil)
}

// Create godoc
// @Summary Kişi oluştur
// @Description Yeni kişi kaydı oluşturur ve referans kodu üretir.
// @Tags Persons
// @Accept json
// @Produce json
// @Param request body dto.CreatePersonRequest true "Kişi verisi"
// @Success 201 {object} utils.SuccessResponse{data=domain.Person}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/persons [post]
func (h *PersonHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePersonRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	person, err := h.personUC.Create(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}
	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, person, nil)
}

// Update godoc
// @Summary Kişi güncelle
// @Description Gönderilen alanları kısmi olarak günceller.
// @Tags Persons
// @Accept json
// @Produce json
// @Param id path string true "Kişi kimliği"
// @Param request body dto.UpdatePersonRequest true "Güncellenecek alanlar"
// @Success 200 {object} utils.SuccessResponse{data=domain.Person}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/persons/{id} [put]
func (h *PersonHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	var fields dto.UpdatePersonRequest
	if err := c.BodyParser(&fields); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	person, err := h.personUC.Update(c.Context(), id, fields)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, person, nil)
}

// Delete godoc
// @Summary Kişi sil
// @Tags Persons
// @Produce json
// @Param id path string true "Kişi kimliği"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/persons/{id} [delete]
func (h *PersonHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := h.personUC.Delete(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"deleted": true}, nil)
}
