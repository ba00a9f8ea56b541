package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/billmint/billmint-api/internal/application/billing"
	"github.com/billmint/billmint-api/internal/application/dto"
	"github.com/billmint/billmint-api/internal/domain"
)

// BillHandler handles the draft billing session, bill history and invoice
// exports (protected). Draft routes operate on the caller's own draft, keyed
// by the authenticated user id.
type BillHandler struct {
	drafts  *billing.DraftManager
	bills   *billing.BillUseCase
	invoice *billing.InvoiceUseCase
}

// NewBillHandler builds the handler.
func NewBillHandler(drafts *billing.DraftManager, bills *billing.BillUseCase, invoice *billing.InvoiceUseCase) *BillHandler {
	return &BillHandler{drafts: drafts, bills: bills, invoice: invoice}
}

// draftError maps draft session errors to HTTP responses.
func draftError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNoDraft):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_DRAFT", Message: "no active draft; start one first"})
	case errors.Is(err, domain.ErrDraftExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DRAFT_EXISTS", Message: "a draft with items already exists; finalize or discard it first"})
	case errors.Is(err, domain.ErrEmptyDraft):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "EMPTY_DRAFT", Message: "draft has no items"})
	case errors.Is(err, domain.ErrFinalizeInFlight):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "FINALIZE_IN_FLIGHT", Message: "draft is being finalized"})
	case errors.Is(err, domain.ErrItemIndexOutOfRange):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "ITEM_NOT_FOUND", Message: "item index out of range"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "referenced resource not found"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// ── Draft session ─────────────────────────────────────────────────────────────

// InitDraft godoc
// @Summary      Start a new draft bill
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitBillRequest  true  "customer_id"
// @Success      201   {object}  dto.BillResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/billing/draft [post]
func (h *BillHandler) InitDraft(c *fiber.Ctx) error {
	var in dto.InitBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.CustomerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "customer_id is required"})
	}
	out, err := h.drafts.InitNewBill(GetUserID(c), in.CustomerID)
	if err != nil {
		return draftError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetDraft godoc
// @Summary      Get the caller's active draft
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/draft [get]
func (h *BillHandler) GetDraft(c *fiber.Ctx) error {
	out, err := h.drafts.GetDraft(GetUserID(c))
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Add an item to the draft
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BillItemRequest  true  "Item data"
// @Success      200   {object}  dto.BillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/billing/draft/items [post]
func (h *BillHandler) AddItem(c *fiber.Ctx) error {
	var in dto.BillItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.drafts.AddItem(GetUserID(c), in)
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem godoc
// @Summary      Replace a draft item by position
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        index  path  int  true  "Zero-based item index"
// @Param        body   body  dto.BillItemRequest  true  "Item data"
// @Success      200    {object}  dto.BillResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/billing/draft/items/{index} [put]
func (h *BillHandler) UpdateItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil || index < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "index must be a non-negative integer"})
	}
	var in dto.BillItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.drafts.UpdateItem(GetUserID(c), index, in)
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Remove a draft item by position
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Param        index  path  int  true  "Zero-based item index"
// @Success      200    {object}  dto.BillResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/billing/draft/items/{index} [delete]
func (h *BillHandler) RemoveItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil || index < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "index must be a non-negative integer"})
	}
	out, err := h.drafts.RemoveItem(GetUserID(c), index)
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(out)
}

// SetDiscount godoc
// @Summary      Set or clear the bill-level discount
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BillDiscountRequest  true  "Discount"
// @Success      200   {object}  dto.BillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/billing/draft/discount [put]
func (h *BillHandler) SetDiscount(c *fiber.Ctx) error {
	var in dto.BillDiscountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.drafts.SetBillDiscount(GetUserID(c), in)
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(out)
}

// Finalize godoc
// @Summary      Finalize the draft and persist the bill
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FinalizeBillRequest  true  "note, payment_mode"
// @Success      201   {object}  dto.BillResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/billing/draft/finalize [post]
func (h *BillHandler) Finalize(c *fiber.Ctx) error {
	var in dto.FinalizeBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.drafts.Finalize(c.Context(), GetUserID(c), in)
	if err != nil {
		return draftError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DiscardDraft godoc
// @Summary      Discard the caller's draft
// @Tags         billing
// @Security     Bearer
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/draft [delete]
func (h *BillHandler) DiscardDraft(c *fiber.Ctx) error {
	if err := h.drafts.Discard(GetUserID(c)); err != nil {
		return draftError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── History ───────────────────────────────────────────────────────────────────

// List godoc
// @Summary      List finalized bills, newest first
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.BillResponse
// @Router       /api/bills [get]
func (h *BillHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.bills.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get a finalized bill
// @Tags         bills
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Bill ID"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [get]
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	out, err := h.bills.GetByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bill not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a bill from history
// @Tags         bills
// @Security     Bearer
// @Param        id  path  string  true  "Bill ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id} [delete]
func (h *BillHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	if err := h.bills.Delete(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bill not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Exports ───────────────────────────────────────────────────────────────────

// DownloadPDF godoc
// @Summary      Render the Tax Invoice PDF for a bill
// @Tags         bills
// @Security     Bearer
// @Produce      application/pdf
// @Param        id    path   string  true   "Bill ID"
// @Param        mode  query  string  false  "download (default) or inline"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/pdf [get]
func (h *BillHandler) DownloadPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	pdfBytes, filename, err := h.invoice.DownloadInvoicePDF(c.Context(), id)
	if err != nil {
		return exportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, disposition(c.Query("mode"), filename))
	return c.Send(pdfBytes)
}

// DownloadXML godoc
// @Summary      Export a bill as XML
// @Tags         bills
// @Security     Bearer
// @Produce      application/xml
// @Param        id    path   string  true   "Bill ID"
// @Param        mode  query  string  false  "download (default) or inline"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/xml [get]
func (h *BillHandler) DownloadXML(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id is required"})
	}
	xmlBytes, filename, err := h.invoice.DownloadInvoiceXML(id)
	if err != nil {
		return exportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	c.Set(fiber.HeaderContentDisposition, disposition(c.Query("mode"), filename))
	return c.Send(xmlBytes)
}

func exportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "bill not found"})
	}
	if errors.Is(err, domain.ErrRenderInput) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "RENDER_INPUT", Message: "bill or issuer profile is incomplete"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// disposition picks attachment vs inline delivery; anything but "inline"
// means download.
func disposition(mode, filename string) string {
	kind := "attachment"
	if mode == "inline" {
		kind = "inline"
	}
	return fmt.Sprintf(`%s; filename="%s"`, kind, filename)
}
