package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pipeline-crm/internal/application/usecase"
)

// AIHandler serves drafted follow-up messages.
type AIHandler struct {
	uc *usecase.AIUseCase
}

// NewAIHandler builds the handler.
func NewAIHandler(uc *usecase.AIUseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// SuggestFollowUp godoc
// @Summary      Draft a follow-up message
// @Description  Asks the configured language model for a short message based on the customer's
// @Description  stage and notes. Provider failures answer 200 with the fixed fallback text and
// @Description  fallback=true. Internal timeout of 10 s.
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "customer id"
// @Success      200  {object}  dto.FollowUpSuggestionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/follow-up-suggestion [post]
func (h *AIHandler) SuggestFollowUp(c *fiber.Ctx) error {
	out, err := h.uc.SuggestFollowUp(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
