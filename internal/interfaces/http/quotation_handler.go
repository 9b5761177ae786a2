package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pipeline-crm/internal/application/crm"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
)

// QuotationHandler serves quotation editing, confirmation and PDF download.
type QuotationHandler struct {
	uc *crm.QuotationUseCase
}

// NewQuotationHandler builds the handler.
func NewQuotationHandler(uc *crm.QuotationUseCase) *QuotationHandler {
	return &QuotationHandler{uc: uc}
}

// NextNumber GET /api/quotations/next-number
func (h *QuotationHandler) NextNumber(c *fiber.Ctx) error {
	return c.JSON(h.uc.NextNumber())
}

// List GET /api/customers/:id/quotations
func (h *QuotationHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DataResponse[dto.QuotationResponse]{Data: list, Total: len(list)})
}

// Create godoc
// @Summary      Add a quotation
// @Description  Net amount is sub-total plus 9% CGST and 9% SGST. An empty number gets an advisory one.
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "customer id"
// @Param        body  body  dto.SaveQuotationRequest  true  "quotation"
// @Success      201  {object}  dto.QuotationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/quotations [post]
func (h *QuotationHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveQuotationRequest
	if err := bindAndValidate(c, &in); err != nil {
		return handleBindError(c, err)
	}
	out, err := h.uc.Save(c.Context(), c.Params("id"), "", in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Edit a quotation
// @Description  Accepted quotations are settled and answer 409.
// @Tags         quotations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "customer id"
// @Param        qid   path  string                    true  "quotation id"
// @Param        body  body  dto.SaveQuotationRequest  true  "quotation"
// @Success      200  {object}  dto.QuotationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/quotations/{qid} [put]
func (h *QuotationHandler) Update(c *fiber.Ctx) error {
	var in dto.SaveQuotationRequest
	if err := bindAndValidate(c, &in); err != nil {
		return handleBindError(c, err)
	}
	out, err := h.uc.Save(c.Context(), c.Params("id"), c.Params("qid"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Confirm godoc
// @Summary      Confirm an order
// @Description  Accepts the quotation and moves the customer to Booking. Repeating it changes nothing.
// @Tags         quotations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "customer id"
// @Param        qid  path  string  true  "quotation id"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/quotations/{qid}/confirm [post]
func (h *QuotationHandler) Confirm(c *fiber.Ctx) error {
	out, err := h.uc.Confirm(c.Context(), c.Params("id"), c.Params("qid"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF GET /api/customers/:id/quotations/:qid/pdf
func (h *QuotationHandler) PDF(c *fiber.Ctx) error {
	doc, filename, err := h.uc.RenderPDF(c.Context(), c.Params("id"), c.Params("qid"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	setAttachment(c, filename)
	return c.Send(doc)
}
