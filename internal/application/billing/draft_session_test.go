package billing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billmint/billmint-api/internal/application/dto"
	"github.com/billmint/billmint-api/internal/domain"
	"github.com/billmint/billmint-api/internal/domain/entity"
	"github.com/billmint/billmint-api/internal/domain/repository"
)

// ── Fakes ─────────────────────────────────────────────────────────────────────

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (f *fakeCustomerRepo) Create(c *entity.Customer) error { f.customers[c.ID] = c; return nil }
func (f *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return f.customers[id], nil
}
func (f *fakeCustomerRepo) GetByPhone(string) (*entity.Customer, error) { return nil, nil }
func (f *fakeCustomerRepo) List(int, int) ([]*entity.Customer, error)   { return nil, nil }
func (f *fakeCustomerRepo) Update(*entity.Customer) error               { return nil }
func (f *fakeCustomerRepo) Delete(string) error                         { return nil }

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.products[id], nil
}
func (f *fakeProductRepo) GetByCode(string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) List(int, int) ([]*entity.Product, error)  { return nil, nil }
func (f *fakeProductRepo) Update(*entity.Product) error              { return nil }
func (f *fakeProductRepo) Delete(string) error                       { return nil }

// fakeBillRepo records created bills.
type fakeBillRepo struct {
	created    []*entity.Bill
	failCreate error
}

func (f *fakeBillRepo) Create(b *entity.Bill) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	f.created = append(f.created, b)
	return nil
}
func (f *fakeBillRepo) GetByID(string) (*entity.Bill, error)  { return nil, nil }
func (f *fakeBillRepo) List(int, int) ([]*entity.Bill, error) { return nil, nil }
func (f *fakeBillRepo) Delete(string) error                   { return nil }

// fakeTxRunner hands the callback the fake bill repo. When gate is non-nil,
// entered is closed on entry and the callback blocks until gate is closed,
// which lets tests observe the in-flight window.
type fakeTxRunner struct {
	repo    *fakeBillRepo
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeTxRunner) RunBilling(_ context.Context, fn func(repository.BillRepository) error) error {
	if f.gate != nil {
		close(f.entered)
		<-f.gate
	}
	return fn(f.repo)
}

func newTestManager() (*DraftManager, *fakeBillRepo) {
	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"c-1": {ID: "c-1", Name: "Ravi Kumar", Phone: "9123456789"},
	}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p-1": {ID: "p-1", Name: "Copper Wire 2.5mm", Code: "CW-25", UnitPrice: decimal.NewFromInt(100)},
		"p-2": {ID: "p-2", Name: "Switch Board", Code: "SB-01", UnitPrice: decimal.NewFromInt(80)},
	}}
	billRepo := &fakeBillRepo{}
	return NewDraftManager(customers, products, &fakeTxRunner{repo: billRepo}, "INV"), billRepo
}

// ── Init / Get / Discard ─────────────────────────────────────────────────────

func TestInitNewBill(t *testing.T) {
	m, _ := newTestManager()

	out, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.True(t, strings.HasPrefix(out.BillNumber, "INV-"))
	assert.Equal(t, "Ravi Kumar", out.Customer.Name)
	assert.Empty(t, out.Items)
	assert.True(t, out.Total.IsZero())
}

func TestInitNewBillUnknownCustomer(t *testing.T) {
	m, _ := newTestManager()

	_, err := m.InitNewBill("u-1", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInitNewBillReplacesEmptyDraft(t *testing.T) {
	m, _ := newTestManager()

	first, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)
	second, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestInitNewBillRejectedWhileItemsExist(t *testing.T) {
	m, _ := newTestManager()

	_, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)
	_, err = m.AddItem("u-1", dto.BillItemRequest{ProductID: "p-1", Quantity: 1})
	require.NoError(t, err)

	_, err = m.InitNewBill("u-1", "c-1")
	assert.ErrorIs(t, err, domain.ErrDraftExists)
}

func TestGetDraftWithoutInit(t *testing.T) {
	m, _ := newTestManager()

	_, err := m.GetDraft("u-1")
	assert.ErrorIs(t, err, domain.ErrNoDraft)
}

func TestDiscard(t *testing.T) {
	m, _ := newTestManager()

	assert.ErrorIs(t, m.Discard("u-1"), domain.ErrNoDraft)

	_, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)
	require.NoError(t, m.Discard("u-1"))

	_, err = m.GetDraft("u-1")
	assert.ErrorIs(t, err, domain.ErrNoDraft)
}

// ── Item mutations ────────────────────────────────────────────────────────────

func TestAddItemComputesTotals(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)

	out, err := m.AddItem("u-1", dto.BillItemRequest{
		ProductID:     "p-1",
		Quantity:      3,
		UnitPrice:     decimal.NewFromInt(100),
		DiscountType:  entity.DiscountFixed,
		DiscountValue: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.True(t, out.Items[0].Subtotal.Equal(decimal.NewFromInt(300)))
	assert.True(t, out.Items[0].DiscountAmount.Equal(decimal.NewFromInt(50)))
	assert.True(t, out.Items[0].Total.Equal(decimal.NewFromInt(250)))
	assert.True(t, out.Subtotal.Equal(decimal.NewFromInt(300)))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(250)))
}

func TestAddItemCapturesCatalogPrice(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)

	out, err := m.AddItem("u-1", dto.BillItemRequest{ProductID: "p-2", Quantity: 2})
	require.NoError(t, err)
	assert.True(t, out.Items[0].UnitPrice.Equal(decimal.NewFromInt(80)))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(160)))
	assert.Equal(t, "Switch Board", out.Items[0].ProductName)
}

func TestAddItemValidation(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   dto.BillItemRequest
		want error
	}{
		{"missing product id", dto.BillItemRequest{Quantity: 1}, domain.ErrInvalidInput},
		{"zero quantity", dto.BillItemRequest{ProductID: "p-1"}, domain.ErrInvalidInput},
		{"unknown product", dto.BillItemRequest{ProductID: "nope", Quantity: 1}, domain.ErrNotFound},
		{"negative discount", dto.BillItemRequest{
			ProductID: "p-1", Quantity: 1, DiscountValue: decimal.NewFromInt(-5),
		}, domain.ErrInvalidInput},
		{"percentage above 100", dto.BillItemRequest{
			ProductID: "p-1", Quantity: 1,
			DiscountType: entity.DiscountPercentage, DiscountValue: decimal.NewFromInt(101),
		}, domain.ErrInvalidInput},
		{"unknown discount type", dto.BillItemRequest{
			ProductID: "p-1", Quantity: 1,
			DiscountType: "coupon", DiscountValue: decimal.NewFromInt(1),
		}, domain.ErrInvalidInput},
		{"value without discount type", dto.BillItemRequest{
			ProductID: "p-1", Quantity: 1, DiscountValue: decimal.NewFromInt(25),
		}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.AddItem("u-1", tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateAndRemoveItemIndexBounds(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)
	_, err = m.AddItem("u-1", dto.BillItemRequest{ProductID: "p-1", Quantity: 1})
	require.NoError(t, err)

	_, err = m.UpdateItem("u-1", 1, dto.BillItemRequest{ProductID: "p-1", Quantity: 2})
	assert.ErrorIs(t, err, domain.ErrItemIndexOutOfRange)

	_, err = m.RemoveItem("u-1", 1)
	assert.ErrorIs(t, err, domain.ErrItemIndexOutOfRange)

	out, err := m.RemoveItem("u-1", 0)
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.True(t, out.Total.IsZero())
}

func TestUpdateItemRecomputes(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)
	_, err = m.AddItem("u-1", dto.BillItemRequest{ProductID: "p-1", Quantity: 1})
	require.NoError(t, err)

	out, err := m.UpdateItem("u-1", 0, dto.BillItemRequest{ProductID: "p-1", Quantity: 5})
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(500)))
}

func TestSetBillDiscount(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)
	_, err = m.AddItem("u-1", dto.BillItemRequest{
		ProductID: "p-1", Quantity: 3,
		DiscountType: entity.DiscountFixed, DiscountValue: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	// 10% off the 250 base: 25 more discount, 225 payable.
	out, err := m.SetBillDiscount("u-1", dto.BillDiscountRequest{
		DiscountType:  entity.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.True(t, out.TotalDiscount.Equal(decimal.NewFromInt(75)))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(225)))

	// Clearing the discount restores item-only totals.
	out, err = m.SetBillDiscount("u-1", dto.BillDiscountRequest{})
	require.NoError(t, err)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(250)))

	// A value without a type would be silently ignored by the calculator.
	_, err = m.SetBillDiscount("u-1", dto.BillDiscountRequest{DiscountValue: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Finalize ─────────────────────────────────────────────────────────────────

func TestFinalizePersistsAndClearsDraft(t *testing.T) {
	m, billRepo := newTestManager()
	_, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)
	_, err = m.AddItem("u-1", dto.BillItemRequest{ProductID: "p-1", Quantity: 2})
	require.NoError(t, err)

	out, err := m.Finalize(context.Background(), "u-1", dto.FinalizeBillRequest{Note: "weekly order"})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCash, out.PaymentMode) // default
	assert.Equal(t, "weekly order", out.Note)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(200)))

	require.Len(t, billRepo.created, 1)
	assert.Equal(t, out.ID, billRepo.created[0].ID)

	_, err = m.GetDraft("u-1")
	assert.ErrorIs(t, err, domain.ErrNoDraft)
}

func TestFinalizeEmptyDraft(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)

	_, err = m.Finalize(context.Background(), "u-1", dto.FinalizeBillRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyDraft)
}

func TestFinalizeInvalidPaymentMode(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)
	_, err = m.AddItem("u-1", dto.BillItemRequest{ProductID: "p-1", Quantity: 1})
	require.NoError(t, err)

	_, err = m.Finalize(context.Background(), "u-1", dto.FinalizeBillRequest{PaymentMode: "BARTER"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFinalizeFailureRetainsDraft(t *testing.T) {
	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"c-1": {ID: "c-1", Name: "Ravi Kumar", Phone: "9123456789"},
	}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p-1": {ID: "p-1", Name: "Copper Wire 2.5mm", Code: "CW-25", UnitPrice: decimal.NewFromInt(100)},
	}}
	billRepo := &fakeBillRepo{failCreate: errors.New("connection reset")}
	m := NewDraftManager(customers, products, &fakeTxRunner{repo: billRepo}, "INV")

	_, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)
	_, err = m.AddItem("u-1", dto.BillItemRequest{ProductID: "p-1", Quantity: 1})
	require.NoError(t, err)

	before, err := m.GetDraft("u-1")
	require.NoError(t, err)

	_, err = m.Finalize(context.Background(), "u-1", dto.FinalizeBillRequest{
		Note:        "rush order",
		PaymentMode: entity.PaymentOnline,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")

	// Draft survives for retry, items intact; nothing from the failed
	// request sticks to it.
	out, err := m.GetDraft("u-1")
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Empty(t, out.Note)
	assert.Empty(t, out.PaymentMode)
	assert.True(t, out.CreatedAt.Equal(before.CreatedAt))

	billRepo.failCreate = nil
	final, err := m.Finalize(context.Background(), "u-1", dto.FinalizeBillRequest{Note: "rush order"})
	require.NoError(t, err)
	assert.Equal(t, "rush order", final.Note)
	assert.Len(t, billRepo.created, 1)
}

func TestFinalizeInFlightBlocksMutations(t *testing.T) {
	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"c-1": {ID: "c-1", Name: "Ravi Kumar", Phone: "9123456789"},
	}}
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"p-1": {ID: "p-1", Name: "Copper Wire 2.5mm", Code: "CW-25", UnitPrice: decimal.NewFromInt(100)},
	}}
	billRepo := &fakeBillRepo{}
	runner := &fakeTxRunner{
		repo:    billRepo,
		gate:    make(chan struct{}),
		entered: make(chan struct{}),
	}
	m := NewDraftManager(customers, products, runner, "INV")

	_, err := m.InitNewBill("u-1", "c-1")
	require.NoError(t, err)
	_, err = m.AddItem("u-1", dto.BillItemRequest{ProductID: "p-1", Quantity: 1})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := m.Finalize(context.Background(), "u-1", dto.FinalizeBillRequest{})
		done <- err
	}()
	<-runner.entered // persistence is now in flight

	_, err = m.AddItem("u-1", dto.BillItemRequest{ProductID: "p-1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrFinalizeInFlight)
	_, err = m.Finalize(context.Background(), "u-1", dto.FinalizeBillRequest{})
	assert.ErrorIs(t, err, domain.ErrFinalizeInFlight)
	assert.ErrorIs(t, m.Discard("u-1"), domain.ErrFinalizeInFlight)

	close(runner.gate)
	require.NoError(t, <-done)
	assert.Len(t, billRepo.created, 1)
}
