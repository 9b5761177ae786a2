package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
)

// CustomerHandler serves customer records, pipeline moves and notes.
type CustomerHandler struct {
	uc *crm.CustomerUseCase
}

// NewCustomerHandler builds the handler.
func NewCustomerHandler(uc *crm.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      List customers
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        stages   query  string  false  "comma separated stages, e.g. Lead,Booking"
// @Param        pending  query  bool    false  "only customers idle longer than the follow-up threshold"
// @Param        created  query  string  false  "all|today|yesterday|week|month"
// @Param        sort     query  string  false  "name|phone|location|businessType|dailyProduction|stage|lastContacted|createdAt|stageChangedAt"
// @Param        dir      query  string  false  "asc|desc"
// @Success      200  {object}  dto.DataResponse[dto.CustomerResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var q dto.CustomerListQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.List(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse[dto.CustomerResponse]{Data: list, Total: len(list)})
}

// Create godoc
// @Summary      Register a customer
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "customer"
// @Success      201  {object}  dto.CustomerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := bindAndValidate(c, &in); err != nil {
		return handleBindError(c, err)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Edit customer details
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "customer id"
// @Param        body  body  dto.UpdateCustomerRequest  true  "details"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := bindAndValidate(c, &in); err != nil {
		return handleBindError(c, err)
	}
	out, err := h.uc.UpdateDetails(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeStage godoc
// @Summary      Move a customer to another pipeline stage
// @Description  Any stage may move to any other. Moving to the current stage changes nothing.
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "customer id"
// @Param        body  body  dto.ChangeStageRequest  true  "target stage"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/stage [put]
func (h *CustomerHandler) ChangeStage(c *fiber.Ctx) error {
	var in dto.ChangeStageRequest
	if err := bindAndValidate(c, &in); err != nil {
		return handleBindError(c, err)
	}
	out, err := h.uc.ChangeStage(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddNote godoc
// @Summary      Record an interaction note
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "customer id"
// @Param        body  body  dto.AddNoteRequest  true  "note"
// @Success      201  {object}  dto.CustomerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/notes [post]
func (h *CustomerHandler) AddNote(c *fiber.Ctx) error {
	var in dto.AddNoteRequest
	if err := bindAndValidate(c, &in); err != nil {
		return handleBindError(c, err)
	}
	out, err := h.uc.AddNote(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
