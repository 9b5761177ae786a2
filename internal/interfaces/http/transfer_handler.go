package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pipeline-crm/internal/application/dto"
	"github.com/jhoicas/pipeline-crm/internal/application/transfer"
)

// maxImportBytes caps the uploaded spreadsheet size.
const maxImportBytes = 5 << 20

// TransferHandler serves bulk import and list export.
type TransferHandler struct {
	uc *transfer.UseCase
}

// NewTransferHandler builds the handler.
func NewTransferHandler(uc *transfer.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Import godoc
// @Summary      Bulk import customers
// @Description  Multipart field "file" with a .csv or .xlsx sheet. Required headers: name, phone,
// @Description  location, businessType, dailyProduction, stage. Any bad row rejects the whole file.
// @Tags         transfer
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "spreadsheet"
// @Success      201  {object}  dto.ImportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/import [post]
func (h *TransferHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "multipart field 'file' is required"})
	}
	if fh.Size > maxImportBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "TOO_LARGE", Message: "file exceeds 5 MB"})
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, fmt.Errorf("open upload: %w", err))
	}
	defer f.Close()

	out, err := h.uc.Import(c.Context(), fh.Filename, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Export godoc
// @Summary      Export the customer list
// @Description  Accepts the same filters as GET /api/customers.
// @Tags         transfer
// @Security     Bearer
// @Produce      octet-stream
// @Param        format  query  string  false  "csv|xlsx|pdf (default csv)"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/export [get]
func (h *TransferHandler) Export(c *fiber.Ctx) error {
	format, err := transfer.ParseExportFormat(c.Query("format"))
	if err != nil {
		return writeError(c, err)
	}
	var q dto.CustomerListQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Export(c.Context(), format, q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	setAttachment(c, out.Filename)
	return c.Send(out.Body)
}
