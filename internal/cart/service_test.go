package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/packfinderz-pos/pkg/db/models"
	"github.com/angelmondragon/packfinderz-pos/pkg/enums"
	pkgerrors "github.com/angelmondragon/packfinderz-pos/pkg/errors"
	"github.com/angelmondragon/packfinderz-pos/pkg/kvstore"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s got %s %v", want, got.String(), msgAndArgs)
}

func intPtr(v int) *int { return &v }

type stubCatalog struct {
	items map[string]types.Item
	err   error
}

func (s *stubCatalog) GetItemByBarcode(_ context.Context, code string) (*types.Item, error) {
	if s.err != nil {
		return nil, s.err
	}
	item, ok := s.items[code]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

type staticSettings struct {
	settings types.Settings
}

func (s *staticSettings) Snapshot() types.Settings { return s.settings }

type staticCashier string

func (c staticCashier) CashierID() string { return string(c) }

type fakeSales struct {
	mu           sync.Mutex
	created      []types.SaleDraft
	sales        map[string]models.Sale
	createErr    error
	finalizeErr  error
	finalizeSeen []string
}

func newFakeSales() *fakeSales {
	return &fakeSales{sales: map[string]models.Sale{}}
}

func (f *fakeSales) CreateSale(_ context.Context, draft types.SaleDraft) (models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.Sale{}, f.createErr
	}
	f.created = append(f.created, draft)
	n := len(f.created)
	sale := models.Sale{
		ID:            fmt.Sprintf("sale-%d", n),
		Number:        strconv.Itoa(100000 + n - 1),
		CashierID:     draft.CashierID,
		Customer:      draft.Customer,
		Lines:         draft.Lines,
		Subtotal:      draft.Totals.Subtotal,
		Tax:           draft.Totals.Tax,
		GrandTotal:    draft.Totals.GrandTotal,
		DiscountTotal: draft.DiscountTotal,
		Payments:      []types.Payment{},
		Status:        enums.SaleStatusOpen,
	}
	f.sales[sale.ID] = sale
	return sale, nil
}

func (f *fakeSales) FinalizeSale(_ context.Context, id string, payments []types.Payment) (models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finalizeSeen = append(f.finalizeSeen, id)
	if f.finalizeErr != nil {
		return models.Sale{}, f.finalizeErr
	}
	sale, ok := f.sales[id]
	if !ok {
		return models.Sale{}, pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
	}
	sale.Payments = payments
	sale.Status = enums.SaleStatusPaid
	f.sales[id] = sale
	return sale, nil
}

type harness struct {
	svc      Service
	catalog  *stubCatalog
	settings *staticSettings
	sales    *fakeSales
	store    *kvstore.Memory
}

func taxIncluded() types.Settings {
	return types.Settings{TaxRate: dec("0.07"), TaxIncluded: true, RoundingStep: decimal.Zero}
}

func newHarness(t *testing.T, settings types.Settings) *harness {
	t.Helper()
	h := &harness{
		catalog: &stubCatalog{items: map[string]types.Item{
			"111": {ID: "i1", SKU: "GTR-001", Name: "Guitar", Price: dec("100"), TaxIncluded: true, StockQty: intPtr(10)},
			"222": {ID: "i2", SKU: "STR-010", Name: "Strings", Price: dec("100"), TaxIncluded: true, StockQty: intPtr(2)},
			"333": {ID: "i3", SKU: "PCK-100", Name: "Pick", Price: dec("20"), TaxIncluded: true},
		}},
		settings: &staticSettings{settings: settings},
		sales:    newFakeSales(),
		store:    kvstore.NewMemory(),
	}
	seq := 0
	svc, err := NewService(context.Background(), ServiceParams{
		Catalog:  h.catalog,
		Settings: h.settings,
		Cashier:  staticCashier("u9"),
		Sales:    h.sales,
		Store:    h.store,
		NewID: func() string {
			seq++
			return fmt.Sprintf("line-%d", seq)
		},
	})
	require.NoError(t, err)
	h.svc = svc
	return h
}

func (h *harness) scan(t *testing.T, code string) {
	t.Helper()
	ok, err := h.svc.AddItemByBarcode(context.Background(), code)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestNewServiceRequiresDeps(t *testing.T) {
	_, err := NewService(context.Background(), ServiceParams{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestAddItemByBarcodeNotFound(t *testing.T) {
	h := newHarness(t, taxIncluded())

	ok, err := h.svc.AddItemByBarcode(context.Background(), "999")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, enums.CartStatusEmpty, h.svc.Status())
	assert.Empty(t, h.svc.State().Lines)
}

func TestAddItemByBarcodeLookupFailure(t *testing.T) {
	h := newHarness(t, taxIncluded())
	h.catalog.err = errors.New("catalog offline")

	ok, err := h.svc.AddItemByBarcode(context.Background(), "111")
	assert.False(t, ok)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
}

func TestAddItemByBarcodeMergesSameSKU(t *testing.T) {
	h := newHarness(t, taxIncluded())
	h.scan(t, "111")
	h.scan(t, "111")

	state := h.svc.State()
	require.Len(t, state.Lines, 1)
	line := state.Lines[0]
	assert.Equal(t, 2, line.Qty)
	assert.Equal(t, "i1", line.ItemID)
	assertDec(t, "200", line.LineTotal)
	assert.Equal(t, 2, state.LineCount)
	assert.Equal(t, enums.CartStatusActive, state.Status)
	assertDec(t, "200", state.Totals.GrandTotal)
}

func TestAddItemByBarcodeDoesNotMergeIntoCustomLine(t *testing.T) {
	h := newHarness(t, taxIncluded())
	h.catalog.items["444"] = types.Item{ID: "i4", SKU: types.CustomItemSKU, Name: "Cushion", Price: dec("30"), TaxIncluded: true}

	h.svc.AddCustomItem("Setup fee", dec("150"))
	h.scan(t, "444")
	h.scan(t, "444")

	lines := h.svc.State().Lines
	require.Len(t, lines, 2)
	assert.Equal(t, types.CustomItemID, lines[0].ItemID)
	assert.Equal(t, 1, lines[0].Qty)
	assert.Equal(t, "i4", lines[1].ItemID)
	assert.Equal(t, 2, lines[1].Qty)
	assertDec(t, "210", h.svc.State().Totals.GrandTotal)
}

func TestAddItemByBarcodeLowStock(t *testing.T) {
	h := newHarness(t, taxIncluded())
	h.scan(t, "111")
	h.scan(t, "222")
	h.scan(t, "333")

	lines := h.svc.State().Lines
	require.Len(t, lines, 3)
	assert.False(t, lines[0].LowStock, "stock 10")
	assert.True(t, lines[1].LowStock, "stock 2")
	assert.True(t, lines[2].LowStock, "absent stock counts as zero")
}

func TestAddCustomItem(t *testing.T) {
	h := newHarness(t, taxIncluded())

	line := h.svc.AddCustomItem(" Setup fee ", dec("150"))
	assert.Equal(t, types.CustomItemID, line.ItemID)
	assert.Equal(t, types.CustomItemSKU, line.SKU)
	assert.Equal(t, "Setup fee", line.Name)
	assert.Equal(t, 1, line.Qty)
	assertDec(t, "150", line.LineTotal)

	negative := h.svc.AddCustomItem("Refund?", dec("-5"))
	assertDec(t, "0", negative.UnitPrice)
	assertDec(t, "150", h.svc.State().Totals.GrandTotal)
}

func TestTaxIncludedTotals(t *testing.T) {
	h := newHarness(t, taxIncluded())
	h.scan(t, "111")
	h.scan(t, "222")

	totals := h.svc.State().Totals
	assertDec(t, "186.92", totals.Subtotal)
	assertDec(t, "13.08", totals.Tax)
	assertDec(t, "200", totals.GrandTotal)
	assert.True(t, totals.Subtotal.Add(totals.Tax).Equal(totals.GrandTotal))
}

func TestTaxExcludedTotalsWithRoundingStep(t *testing.T) {
	h := newHarness(t, types.Settings{TaxRate: dec("0.07"), TaxIncluded: false, RoundingStep: dec("0.25")})
	h.svc.AddCustomItem("Repair", dec("10.10"))

	totals := h.svc.State().Totals
	assertDec(t, "10.10", totals.Subtotal)
	assertDec(t, "0.65", totals.Tax)
	assertDec(t, "10.75", totals.GrandTotal)
}

func TestUpdateQtyClampsAndKeepsDiscount(t *testing.T) {
	h := newHarness(t, taxIncluded())
	h.scan(t, "111")
	id := h.svc.State().Lines[0].ID

	require.True(t, h.svc.UpdateLineDiscount(id, types.Amount(dec("30"))))
	require.True(t, h.svc.UpdateQty(id, 3))
	line := h.svc.State().Lines[0]
	assertDec(t, "30", line.DiscountAmt, "discount amount preserved")
	assertDec(t, "270", line.LineTotal)

	for _, qty := range []int{0, -4} {
		require.True(t, h.svc.UpdateQty(id, qty))
		line = h.svc.State().Lines[0]
		assert.Equal(t, 1, line.Qty)
		assertDec(t, "70", line.LineTotal)
	}

	assert.False(t, h.svc.UpdateQty("missing", 2))
}

func TestUpdateQtyClampsOversizedDiscount(t *testing.T) {
	h := newHarness(t, taxIncluded())
	h.scan(t, "111")
	id := h.svc.State().Lines[0].ID
	require.True(t, h.svc.UpdateQty(id, 3))
	require.True(t, h.svc.UpdateLineDiscount(id, types.Amount(dec("250"))))

	require.True(t, h.svc.UpdateQty(id, 2))
	line := h.svc.State().Lines[0]
	assertDec(t, "200", line.DiscountAmt)
	assertDec(t, "0", line.LineTotal)
}

func TestUpdateLineDiscount(t *testing.T) {
	h := newHarness(t, taxIncluded())
	h.scan(t, "111")
	id := h.svc.State().Lines[0].ID
	require.True(t, h.svc.UpdateQty(id, 2))

	require.True(t, h.svc.UpdateLineDiscount(id, types.Percent(dec("10"))))
	state := h.svc.State()
	assertDec(t, "20", state.Lines[0].DiscountAmt)
	assertDec(t, "180", state.Lines[0].LineTotal)
	assertDec(t, "20", state.DiscountTotal)
	assertDec(t, "180", state.Totals.GrandTotal)

	require.True(t, h.svc.UpdateLineDiscount(id, types.Percent(dec("150"))))
	line := h.svc.State().Lines[0]
	assertDec(t, "200", line.DiscountAmt, "percent above 100 is coerced to 100")
	assertDec(t, "0", line.LineTotal)

	require.True(t, h.svc.UpdateLineDiscount(id, nil))
	line = h.svc.State().Lines[0]
	assertDec(t, "0", line.DiscountAmt)
	assertDec(t, "200", line.LineTotal)

	assert.False(t, h.svc.UpdateLineDiscount("missing", types.Percent(dec("5"))))
}

func TestOrderDiscountIsReallocatedProportionally(t *testing.T) {
	h := newHarness(t, types.Settings{TaxRate: decimal.Zero, TaxIncluded: false})
	h.scan(t, "111")
	h.scan(t, "222")

	h.svc.SetOrderDiscount(types.Percent(dec("10")))
	state := h.svc.State()
	assertDec(t, "180", state.Totals.Subtotal)
	assertDec(t, "180", state.Totals.GrandTotal)
	assertDec(t, "0", state.DiscountTotal, "order discounts never touch line discount amounts")
	for _, l := range state.Lines {
		assertDec(t, "100", l.LineTotal)
		assertDec(t, "0", l.DiscountAmt)
	}
	require.NotNil(t, state.OrderDiscount)
	assert.Equal(t, enums.DiscountKindPercent, state.OrderDiscount.Kind)

	h.svc.SetOrderDiscount(types.Amount(dec("500")))
	assertDec(t, "0", h.svc.State().Totals.GrandTotal, "amount discounts clamp at the sum")

	h.svc.SetOrderDiscount(nil)
	assertDec(t, "200", h.svc.State().Totals.GrandTotal)
}

func TestOrderDiscountWithFreeLines(t *testing.T) {
	h := newHarness(t, taxIncluded())
	h.svc.AddCustomItem("Free sticker", decimal.Zero)
	h.svc.SetOrderDiscount(types.Percent(dec("10")))

	totals := h.svc.State().Totals
	assertDec(t, "0", totals.GrandTotal)
	assertDec(t, "0", totals.Subtotal)
	assertDec(t, "0", totals.Tax)
}

func TestRemoveLineAndClearCart(t *testing.T) {
	h := newHarness(t, taxIncluded())
	h.scan(t, "111")
	h.scan(t, "333")
	h.svc.AttachCustomer(&types.Customer{ID: "c1", Name: "Ann"})
	h.svc.SetOrderDiscount(types.Percent(dec("5")))

	h.svc.RemoveLine("missing")
	assert.Len(t, h.svc.State().Lines, 2)

	first := h.svc.State().Lines[0].ID
	h.svc.RemoveLine(first)
	state := h.svc.State()
	require.Len(t, state.Lines, 1)
	assert.Equal(t, "PCK-100", state.Lines[0].SKU)
	assertDec(t, "19", state.Totals.GrandTotal)

	h.svc.ClearCart()
	state = h.svc.State()
	assert.Empty(t, state.Lines)
	assert.Nil(t, state.Customer)
	assert.Nil(t, state.OrderDiscount)
	assertDec(t, "0", state.Totals.GrandTotal)
	assert.Equal(t, 0, state.LineCount)
	assert.Equal(t, enums.CartStatusEmpty, state.Status)
}

func TestAttachCustomerDoesNotChangeTotals(t *testing.T) {
	h := newHarness(t, taxIncluded())
	h.scan(t, "111")
	before := h.svc.State().Totals

	h.svc.AttachCustomer(&types.Customer{ID: "c1", Name: "Ann"})
	state := h.svc.State()
	require.NotNil(t, state.Customer)
	assert.Equal(t, "Ann", state.Customer.Name)
	assert.True(t, before.GrandTotal.Equal(state.Totals.GrandTotal))
}

func TestRecalculatePicksUpNewSettings(t *testing.T) {
	h := newHarness(t, taxIncluded())
	h.scan(t, "111")

	h.settings.settings = types.Settings{TaxRate: dec("0.07"), TaxIncluded: false}
	h.svc.Recalculate()
	assertDec(t, "107", h.svc.State().Totals.GrandTotal)
}

func TestHoldResumeRoundTrip(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, taxIncluded())
	h.scan(t, "111")
	id := h.svc.State().Lines[0].ID
	require.True(t, h.svc.UpdateLineDiscount(id, types.Amount(dec("5"))))
	h.svc.AttachCustomer(&types.Customer{ID: "c1", Name: "Ann"})
	h.svc.SetOrderDiscount(types.Percent(dec("10")))
	held := h.svc.State()

	require.NoError(t, h.svc.HoldSale(ctx))
	assert.Len(t, h.svc.State().Lines, 1, "holding keeps the working cart")
	has, err := h.svc.HasHeldSale(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	h.svc.ClearCart()

	ok, err := h.svc.ResumeSaleIfAny(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	resumed := h.svc.State()
	require.Len(t, resumed.Lines, 1)
	got := resumed.Lines[0]
	want := held.Lines[0]
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.SKU, got.SKU)
	assert.Equal(t, want.Qty, got.Qty)
	assert.True(t, want.UnitPrice.Equal(got.UnitPrice))
	assert.True(t, want.DiscountAmt.Equal(got.DiscountAmt))
	assert.True(t, want.LineTotal.Equal(got.LineTotal))
	assert.Equal(t, held.Customer, resumed.Customer)
	require.NotNil(t, resumed.OrderDiscount)
	assert.True(t, held.OrderDiscount.Value.Equal(resumed.OrderDiscount.Value))
	assert.True(t, held.Totals.GrandTotal.Equal(resumed.Totals.GrandTotal))

	ok, err = h.svc.ResumeSaleIfAny(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "second resume finds nothing")
	assert.Len(t, h.svc.State().Lines, 1)

	has, err = h.svc.HasHeldSale(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestHoldOverwritesPreviousHold(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, taxIncluded())
	h.scan(t, "111")
	require.NoError(t, h.svc.HoldSale(ctx))

	h.svc.ClearCart()
	h.scan(t, "333")
	require.NoError(t, h.svc.HoldSale(ctx))

	h.svc.ClearCart()
	ok, err := h.svc.ResumeSaleIfAny(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	lines := h.svc.State().Lines
	require.Len(t, lines, 1)
	assert.Equal(t, "PCK-100", lines[0].SKU)
}

func TestCreateSaleDraftAndFinalize(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, taxIncluded())
	h.scan(t, "111")
	h.scan(t, "222")
	id := h.svc.State().Lines[0].ID
	require.True(t, h.svc.UpdateLineDiscount(id, types.Amount(dec("10"))))
	h.svc.AttachCustomer(&types.Customer{ID: "c1", Name: "Ann"})

	payments := []types.Payment{{ID: "p1", Type: enums.PaymentTypeCash, Amount: dec("200")}}
	sale, err := h.svc.CreateSaleDraftAndFinalize(ctx, payments)
	require.NoError(t, err)
	assert.Equal(t, enums.SaleStatusPaid, sale.Status)
	assert.Equal(t, payments, sale.Payments)

	require.Len(t, h.sales.created, 1)
	draft := h.sales.created[0]
	assert.Equal(t, "u9", draft.CashierID)
	require.NotNil(t, draft.Customer)
	assert.Equal(t, "c1", draft.Customer.ID)
	assert.Len(t, draft.Lines, 2)
	assertDec(t, "10", draft.DiscountTotal)
	assertDec(t, "190", draft.Totals.GrandTotal)

	assert.Len(t, h.svc.State().Lines, 2, "checkout does not clear the cart")

	history := h.svc.History()
	require.Len(t, history, 1)
	assert.Equal(t, sale.ID, history[0].ID)

	persisted, found, err := kvstore.GetJSON[[]models.Sale](ctx, h.store, kvstore.KeySaleHistory)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, persisted, 1)
	assert.Equal(t, sale.Number, persisted[0].Number)
}

func TestCreateSaleDraftAndFinalizeFailureLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, taxIncluded())
	h.scan(t, "111")
	before := h.svc.State()

	h.sales.finalizeErr = pkgerrors.New(pkgerrors.CodeNotFound, "sale not found")
	_, err := h.svc.CreateSaleDraftAndFinalize(ctx, nil)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Empty(t, h.svc.History())
	_, err = h.store.Get(ctx, kvstore.KeySaleHistory)
	assert.ErrorIs(t, err, kvstore.ErrNotFound)

	after := h.svc.State()
	assert.Equal(t, len(before.Lines), len(after.Lines))
	assert.True(t, before.Totals.GrandTotal.Equal(after.Totals.GrandTotal))

	h.sales.finalizeErr = nil
	h.sales.createErr = errors.New("db down")
	_, err = h.svc.CreateSaleDraftAndFinalize(ctx, nil)
	require.Error(t, err)
	assert.Empty(t, h.svc.History())
	assert.Len(t, h.sales.finalizeSeen, 1, "finalize is not attempted when create fails")
}

// gatedStore blocks the first sale history write until release is closed.
type gatedStore struct {
	*kvstore.Memory
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) Set(ctx context.Context, key, value string) error {
	if key == kvstore.KeySaleHistory {
		first := false
		g.once.Do(func() { first = true })
		if first {
			close(g.entered)
			<-g.release
		}
	}
	return g.Memory.Set(ctx, key, value)
}

func TestOverlappingCheckoutsKeepEverySaleInStore(t *testing.T) {
	ctx := context.Background()
	store := &gatedStore{
		Memory:  kvstore.NewMemory(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc, err := NewService(ctx, ServiceParams{
		Catalog: &stubCatalog{items: map[string]types.Item{
			"111": {ID: "i1", SKU: "GTR-001", Name: "Guitar", Price: dec("100"), TaxIncluded: true},
		}},
		Settings: &staticSettings{settings: taxIncluded()},
		Cashier:  staticCashier("u1"),
		Sales:    newFakeSales(),
		Store:    store,
	})
	require.NoError(t, err)
	ok, err := svc.AddItemByBarcode(ctx, "111")
	require.NoError(t, err)
	require.True(t, ok)

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.CreateSaleDraftAndFinalize(ctx, nil)
		firstDone <- err
	}()
	<-store.entered

	secondDone := make(chan error, 1)
	go func() {
		_, err := svc.CreateSaleDraftAndFinalize(ctx, nil)
		secondDone <- err
	}()
	// Give the second checkout a chance to finish before the first write lands.
	select {
	case err := <-secondDone:
		secondDone <- err
	case <-time.After(50 * time.Millisecond):
	}
	close(store.release)

	require.NoError(t, <-firstDone)
	require.NoError(t, <-secondDone)
	require.Len(t, svc.History(), 2)

	require.NoError(t, svc.LoadHistory(ctx))
	history := svc.History()
	require.Len(t, history, 2)
	assert.Equal(t, "100000", history[0].Number)
	assert.Equal(t, "100001", history[1].Number)
}

func TestLoadHistoryReplacesMemory(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, taxIncluded())
	h.scan(t, "111")
	_, err := h.svc.CreateSaleDraftAndFinalize(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, kvstore.SetJSON(ctx, h.store, kvstore.KeySaleHistory, []models.Sale{
		{ID: "a", Number: "1"}, {ID: "b", Number: "2"},
	}))
	require.NoError(t, h.svc.LoadHistory(ctx))
	history := h.svc.History()
	require.Len(t, history, 2)
	assert.Equal(t, "b", history[1].ID)

	require.NoError(t, h.store.Delete(ctx, kvstore.KeySaleHistory))
	require.NoError(t, h.svc.LoadHistory(ctx))
	assert.Empty(t, h.svc.History())
}

func TestNewServiceLoadsPersistedHistory(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	require.NoError(t, kvstore.SetJSON(ctx, store, kvstore.KeySaleHistory, []models.Sale{{ID: "a"}}))

	svc, err := NewService(ctx, ServiceParams{
		Catalog:  &stubCatalog{},
		Settings: &staticSettings{settings: taxIncluded()},
		Cashier:  staticCashier("u1"),
		Sales:    newFakeSales(),
		Store:    store,
	})
	require.NoError(t, err)
	assert.Len(t, svc.History(), 1)
}

func TestCoerceQty(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{in: 3, want: 3},
		{in: 2.4, want: 2},
		{in: 2.5, want: 3},
		{in: 0, want: 1},
		{in: -7, want: 1},
		{in: 0.6, want: 1},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, CoerceQty(tc.in), "CoerceQty(%v)", tc.in)
	}
}
