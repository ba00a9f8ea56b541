package billing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billmint/billmint-api/internal/application/dto"
	"github.com/billmint/billmint-api/internal/domain"
	domainbilling "github.com/billmint/billmint-api/internal/domain/billing"
	"github.com/billmint/billmint-api/internal/domain/entity"
	"github.com/billmint/billmint-api/internal/domain/repository"
)

// DraftManager owns the in-progress draft bills, at most one per user.
// Every mutation replaces the item list and recomputes all derived totals from
// scratch through the calculator; there are no incremental accumulators to
// drift. Drafts live in memory only; nothing is persisted until Finalize.
type DraftManager struct {
	mu     sync.Mutex
	drafts map[string]*draftState

	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	txRunner     BillingTxRunner
	numberPrefix string
}

type draftState struct {
	bill       *entity.Bill
	finalizing bool // one finalize in flight per draft
}

// NewDraftManager builds the manager.
func NewDraftManager(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	txRunner BillingTxRunner,
	numberPrefix string,
) *DraftManager {
	if numberPrefix == "" {
		numberPrefix = "INV"
	}
	return &DraftManager{
		drafts:       make(map[string]*draftState),
		customerRepo: customerRepo,
		productRepo:  productRepo,
		txRunner:     txRunner,
		numberPrefix: numberPrefix,
	}
}

// InitNewBill starts a draft for the user with a customer snapshot, a fresh
// identity and a generated bill number. An existing draft that still has items
// is never discarded silently (the caller must discard first); an empty draft
// is simply replaced.
func (m *DraftManager) InitNewBill(userID, customerID string) (*dto.BillResponse, error) {
	if userID == "" || customerID == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := m.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if st, ok := m.drafts[userID]; ok && len(st.bill.Items) > 0 {
		return nil, domain.ErrDraftExists
	}

	now := time.Now()
	bill := &entity.Bill{
		ID:         uuid.New().String(),
		BillNumber: fmt.Sprintf("%s-%d", m.numberPrefix, now.Unix()),
		Customer:   *customer, // owned snapshot
		CreatedAt:  now,
	}
	m.drafts[userID] = &draftState{bill: bill}
	return toBillResponse(bill), nil
}

// GetDraft returns the user's current draft.
func (m *DraftManager) GetDraft(userID string) (*dto.BillResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.drafts[userID]
	if !ok {
		return nil, domain.ErrNoDraft
	}
	return toBillResponse(st.bill), nil
}

// AddItem appends an item to the draft. The product data is captured as an
// owned snapshot; when the request carries no unit price, the catalog price at
// add time is captured instead.
func (m *DraftManager) AddItem(userID string, in dto.BillItemRequest) (*dto.BillResponse, error) {
	item, err := m.buildItem(in)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.drafts[userID]
	if !ok {
		return nil, domain.ErrNoDraft
	}
	if st.finalizing {
		return nil, domain.ErrFinalizeInFlight
	}
	st.bill.Items = append(st.bill.Items, item)
	recompute(st.bill)
	return toBillResponse(st.bill), nil
}

// UpdateItem replaces the item at index. An out-of-range index is a caller
// precondition violation, rejected as invalid input.
func (m *DraftManager) UpdateItem(userID string, index int, in dto.BillItemRequest) (*dto.BillResponse, error) {
	item, err := m.buildItem(in)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.drafts[userID]
	if !ok {
		return nil, domain.ErrNoDraft
	}
	if st.finalizing {
		return nil, domain.ErrFinalizeInFlight
	}
	if index < 0 || index >= len(st.bill.Items) {
		return nil, domain.ErrItemIndexOutOfRange
	}
	st.bill.Items[index] = item
	recompute(st.bill)
	return toBillResponse(st.bill), nil
}

// RemoveItem deletes the item at index.
func (m *DraftManager) RemoveItem(userID string, index int) (*dto.BillResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.drafts[userID]
	if !ok {
		return nil, domain.ErrNoDraft
	}
	if st.finalizing {
		return nil, domain.ErrFinalizeInFlight
	}
	if index < 0 || index >= len(st.bill.Items) {
		return nil, domain.ErrItemIndexOutOfRange
	}
	st.bill.Items = append(st.bill.Items[:index], st.bill.Items[index+1:]...)
	recompute(st.bill)
	return toBillResponse(st.bill), nil
}

// SetBillDiscount updates the bill-level discount parameters and recomputes
// totals. Items are untouched.
func (m *DraftManager) SetBillDiscount(userID string, in dto.BillDiscountRequest) (*dto.BillResponse, error) {
	if err := validateDiscount(in.DiscountType, in.DiscountValue); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.drafts[userID]
	if !ok {
		return nil, domain.ErrNoDraft
	}
	if st.finalizing {
		return nil, domain.ErrFinalizeInFlight
	}
	st.bill.BillDiscountType = in.DiscountType
	st.bill.BillDiscountValue = in.DiscountValue
	recompute(st.bill)
	return toBillResponse(st.bill), nil
}

// Finalize validates the draft, persists the bill atomically and clears the
// draft. On any failure (empty draft, invalid item, persistence error) the
// draft is retained unchanged so the user can fix and retry. Only one finalize
// may be in flight per draft; a concurrent attempt gets ErrFinalizeInFlight.
func (m *DraftManager) Finalize(ctx context.Context, userID string, in dto.FinalizeBillRequest) (*dto.BillResponse, error) {
	m.mu.Lock()
	st, ok := m.drafts[userID]
	if !ok {
		m.mu.Unlock()
		return nil, domain.ErrNoDraft
	}
	if st.finalizing {
		m.mu.Unlock()
		return nil, domain.ErrFinalizeInFlight
	}
	if len(st.bill.Items) == 0 {
		m.mu.Unlock()
		return nil, domain.ErrEmptyDraft
	}
	for _, item := range st.bill.Items {
		if err := validateStoredItem(item); err != nil {
			m.mu.Unlock()
			return nil, err
		}
	}

	paymentMode := in.PaymentMode
	switch paymentMode {
	case "":
		paymentMode = entity.PaymentCash
	case entity.PaymentCash, entity.PaymentOnline, entity.PaymentCard:
	default:
		m.mu.Unlock()
		return nil, domain.ErrInvalidInput
	}

	// The request's note, payment mode and timestamp land on a copy; a failed
	// persist must leave the draft exactly as it was.
	st.finalizing = true
	bill := *st.bill
	bill.Items = append([]entity.BillItem(nil), st.bill.Items...)
	bill.Note = in.Note
	bill.PaymentMode = paymentMode
	bill.CreatedAt = time.Now()
	recompute(&bill)
	m.mu.Unlock()

	// Persistence runs outside the manager lock; the finalizing flag keeps the
	// draft locked against concurrent mutation and double submission.
	err := m.txRunner.RunBilling(ctx, func(billRepo repository.BillRepository) error {
		return billRepo.Create(&bill)
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	st.finalizing = false
	if err != nil {
		// Draft retained for retry; the persistence message surfaces verbatim.
		return nil, fmt.Errorf("persist bill: %w", err)
	}
	delete(m.drafts, userID)
	return toBillResponse(&bill), nil
}

// Discard drops the user's draft. A draft with zero items is always safe to
// dispose; for non-empty drafts the caller is expected to have confirmed.
func (m *DraftManager) Discard(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.drafts[userID]
	if !ok {
		return domain.ErrNoDraft
	}
	if st.finalizing {
		return domain.ErrFinalizeInFlight
	}
	delete(m.drafts, userID)
	return nil
}

// buildItem validates the request and captures the product snapshot plus
// derived amounts. Validation happens here, before the calculator: the
// calculator assumes validated inputs.
func (m *DraftManager) buildItem(in dto.BillItemRequest) (entity.BillItem, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return entity.BillItem{}, domain.ErrInvalidInput
	}
	if err := validateDiscount(in.DiscountType, in.DiscountValue); err != nil {
		return entity.BillItem{}, err
	}
	product, err := m.productRepo.GetByID(in.ProductID)
	if err != nil {
		return entity.BillItem{}, fmt.Errorf("load product: %w", err)
	}
	if product == nil {
		return entity.BillItem{}, domain.ErrNotFound
	}

	unitPrice := in.UnitPrice
	if unitPrice.IsZero() {
		unitPrice = product.UnitPrice
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return entity.BillItem{}, domain.ErrInvalidInput
	}

	return domainbilling.ComputeItem(entity.BillItem{
		ProductID:     product.ID,
		ProductName:   product.Name,
		ProductCode:   product.Code,
		Quantity:      in.Quantity,
		UnitPrice:     unitPrice,
		DiscountType:  in.DiscountType,
		DiscountValue: in.DiscountValue,
	}), nil
}

func validateDiscount(discountType string, value decimal.Decimal) error {
	if value.IsNegative() {
		return domain.ErrInvalidInput
	}
	switch discountType {
	case "":
		// No discount. The calculator ignores values without a type, so
		// accepting one here would silently drop it.
		if value.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case entity.DiscountFixed:
	case entity.DiscountPercentage:
		if value.GreaterThan(decimal.NewFromInt(100)) {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

// validateStoredItem is the structural check finalize runs over every item.
func validateStoredItem(item entity.BillItem) error {
	if item.ProductID == "" || item.Quantity <= 0 || item.UnitPrice.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}

func recompute(bill *entity.Bill) {
	totals := domainbilling.BillTotals(bill.Items, bill.BillDiscountType, bill.BillDiscountValue)
	bill.Subtotal = totals.Subtotal
	bill.TotalDiscount = totals.TotalDiscount
	bill.Total = totals.Total
}

func toBillResponse(bill *entity.Bill) *dto.BillResponse {
	items := make([]dto.BillItemResponse, 0, len(bill.Items))
	for _, it := range bill.Items {
		items = append(items, dto.BillItemResponse{
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			ProductCode:    it.ProductCode,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			DiscountType:   it.DiscountType,
			DiscountValue:  it.DiscountValue,
			Subtotal:       it.Subtotal,
			DiscountAmount: it.DiscountAmount,
			Total:          it.Total,
		})
	}
	return &dto.BillResponse{
		ID:         bill.ID,
		BillNumber: bill.BillNumber,
		Customer: dto.CustomerResponse{
			ID:        bill.Customer.ID,
			Name:      bill.Customer.Name,
			Phone:     bill.Customer.Phone,
			Email:     bill.Customer.Email,
			Address:   bill.Customer.Address,
			GSTIN:     bill.Customer.GSTIN,
			CreatedAt: bill.Customer.CreatedAt,
		},
		Items:             items,
		BillDiscountType:  bill.BillDiscountType,
		BillDiscountValue: bill.BillDiscountValue,
		Subtotal:          bill.Subtotal,
		TotalDiscount:     bill.TotalDiscount,
		Total:             bill.Total,
		Note:              bill.Note,
		PaymentMode:       bill.PaymentMode,
		CreatedAt:         bill.CreatedAt,
	}
}
