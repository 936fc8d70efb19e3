package cart

import (
	"context"
	"math"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/packfinderz-pos/pkg/db/models"
	"github.com/angelmondragon/packfinderz-pos/pkg/enums"
	pkgerrors "github.com/angelmondragon/packfinderz-pos/pkg/errors"
	"github.com/angelmondragon/packfinderz-pos/pkg/kvstore"
	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
	"github.com/angelmondragon/packfinderz-pos/pkg/metrics"
	"github.com/angelmondragon/packfinderz-pos/pkg/pricing"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

// lowStockThreshold flags lines whose catalog stock is below this count.
const lowStockThreshold = 3

// Service is the working cart of one till.
//
// Every line or discount mutation recalculates the totals before it returns.
// Calls that reach a collaborator (catalog, storage, sale persistence) do so
// outside the cart lock and do not re-check the cart afterwards.
type Service interface {
	AddItemByBarcode(ctx context.Context, code string) (bool, error)
	AddCustomItem(name string, price decimal.Decimal) types.LineItem
	UpdateQty(id string, qty int) bool
	UpdateLineDiscount(id string, d *types.Discount) bool
	SetOrderDiscount(d *types.Discount)
	RemoveLine(id string)
	ClearCart()
	AttachCustomer(c *types.Customer)
	Recalculate()

	HoldSale(ctx context.Context) error
	ResumeSaleIfAny(ctx context.Context) (bool, error)
	HasHeldSale(ctx context.Context) (bool, error)

	CreateSaleDraftAndFinalize(ctx context.Context, payments []types.Payment) (models.Sale, error)
	LoadHistory(ctx context.Context) error
	History() []models.Sale

	State() State
	Status() enums.CartStatus
	DiscountTotal() decimal.Decimal
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Catalog  CatalogLookup
	Settings SettingsProvider
	Cashier  CashierIdentity
	Sales    SalePersistence
	Store    kvstore.Store
	Metrics  *metrics.SaleMetrics
	Logger   *logger.Logger
	NewID    func() string
}

type service struct {
	catalog  CatalogLookup
	settings SettingsProvider
	cashier  CashierIdentity
	sales    SalePersistence
	store    kvstore.Store
	metrics  *metrics.SaleMetrics
	logg     *logger.Logger
	newID    func() string

	historyMu sync.Mutex

	mu            sync.Mutex
	lines         []types.LineItem
	customer      *types.Customer
	orderDiscount *types.Discount
	totals        types.Totals
	lineCount     int
	history       []models.Sale
}

// NewService builds the cart and loads the persisted sale history.
func NewService(ctx context.Context, params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog lookup is required")
	}
	if params.Settings == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "settings provider is required")
	}
	if params.Cashier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cashier identity is required")
	}
	if params.Sales == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale persistence is required")
	}
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	newID := params.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	s := &service{
		catalog:  params.Catalog,
		settings: params.Settings,
		cashier:  params.Cashier,
		sales:    params.Sales,
		store:    params.Store,
		metrics:  params.Metrics,
		logg:     logg,
		newID:    newID,
		lines:    []types.LineItem{},
		history:  []models.Sale{},
	}
	if err := s.LoadHistory(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// CoerceQty turns any requested quantity into a whole number of at least one.
func CoerceQty(qty float64) int {
	if math.IsNaN(qty) || qty < 1 {
		return 1
	}
	if qty > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Round(qty))
}

// AddItemByBarcode adds the scanned item, or bumps the quantity of the line
// already holding its SKU. It reports false when the code matches nothing.
func (s *service) AddItemByBarcode(ctx context.Context, code string) (bool, error) {
	item, err := s.catalog.GetItemByBarcode(ctx, strings.TrimSpace(code))
	if err != nil {
		s.logg.Error(s.logg.WithField(ctx, "code", code), "catalog lookup failed", err)
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup item")
	}
	if item == nil {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexBySKU(item.SKU); idx >= 0 {
		s.setQty(idx, s.lines[idx].Qty+1)
		s.recalc()
		return true, nil
	}

	stock := 0
	if item.StockQty != nil {
		stock = *item.StockQty
	}
	price := nonNegative(item.Price)
	s.lines = append(s.lines, types.LineItem{
		ID:          s.newID(),
		ItemID:      item.ID,
		SKU:         item.SKU,
		Name:        item.Name,
		Qty:         1,
		UnitPrice:   price,
		DiscountAmt: decimal.Zero,
		LineTotal:   price,
		LowStock:    stock < lowStockThreshold,
	})
	s.recalc()
	return true, nil
}

// AddCustomItem appends an ad-hoc line with no catalog reference.
func (s *service) AddCustomItem(name string, price decimal.Decimal) types.LineItem {
	price = nonNegative(price)
	line := types.LineItem{
		ID:          s.newID(),
		ItemID:      types.CustomItemID,
		SKU:         types.CustomItemSKU,
		Name:        strings.TrimSpace(name),
		Qty:         1,
		UnitPrice:   price,
		DiscountAmt: decimal.Zero,
		LineTotal:   price,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	s.recalc()
	return line
}

// UpdateQty sets the quantity of a line, clamped to at least one. The line's
// discount amount is kept as is. It reports false when no line has the id.
func (s *service) UpdateQty(id string, qty int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexByID(id)
	if idx < 0 {
		return false
	}
	if qty < 1 {
		qty = 1
	}
	s.setQty(idx, qty)
	s.recalc()
	return true
}

// UpdateLineDiscount re-derives the line discount from unit price times
// quantity. A nil discount removes it.
func (s *service) UpdateLineDiscount(id string, d *types.Discount) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexByID(id)
	if idx < 0 {
		return false
	}
	line := &s.lines[idx]
	res := pricing.ApplyDiscount(line.Base(), d.Normalized())
	line.DiscountAmt = res.DiscountAmt
	line.LineTotal = res.Amount
	s.recalc()
	return true
}

// SetOrderDiscount sets or, with nil, clears the order-level discount.
func (s *service) SetOrderDiscount(d *types.Discount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderDiscount = d.Normalized()
	s.recalc()
}

// RemoveLine drops the line; unknown ids are ignored.
func (s *service) RemoveLine(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexByID(id); idx >= 0 {
		s.lines = append(s.lines[:idx:idx], s.lines[idx+1:]...)
	}
	s.recalc()
}

// ClearCart empties the working cart. History and the held sale are untouched.
func (s *service) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.metrics.IncEvent(metrics.EventClear)
}

// AttachCustomer sets the buyer; nil detaches. Totals are unaffected.
func (s *service) AttachCustomer(c *types.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customer = c.Clone()
}

// Recalculate refreshes totals, e.g. after the settings changed.
func (s *service) Recalculate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recalc()
}

func (s *service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *service) Status() enums.CartStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// DiscountTotal is the sum of the per-line discount amounts.
func (s *service) DiscountTotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discountTotalLocked()
}

func (s *service) stateLocked() State {
	return State{
		Status:        s.statusLocked(),
		Lines:         types.CloneLines(s.lines),
		Customer:      s.customer.Clone(),
		OrderDiscount: s.orderDiscount.Clone(),
		Totals:        s.totals,
		LineCount:     s.lineCount,
		DiscountTotal: s.discountTotalLocked(),
	}
}

func (s *service) statusLocked() enums.CartStatus {
	if len(s.lines) == 0 {
		return enums.CartStatusEmpty
	}
	return enums.CartStatusActive
}

func (s *service) discountTotalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.DiscountAmt)
	}
	return total
}

// recalc spreads the order discount over the line totals, runs them through
// the totals calculation and settles the result to cents.
func (s *service) recalc() {
	lineTotals := make([]decimal.Decimal, len(s.lines))
	count := 0
	for i, l := range s.lines {
		lineTotals[i] = l.LineTotal
		count += l.Qty
	}

	st := s.settings.Snapshot()
	allocated := pricing.AllocateOrderDiscount(lineTotals, s.orderDiscount)
	s.totals = pricing.Settle(pricing.ComputeTotals(allocated, st.TaxRate, st.TaxIncluded, st.RoundingStep))
	s.lineCount = count
}

func (s *service) reset() {
	s.lines = []types.LineItem{}
	s.customer = nil
	s.orderDiscount = nil
	s.totals = types.Totals{Subtotal: decimal.Zero, Tax: decimal.Zero, GrandTotal: decimal.Zero}
	s.lineCount = 0
}

// setQty keeps the discount amount unless it would exceed the new base.
func (s *service) setQty(idx, qty int) {
	line := &s.lines[idx]
	line.Qty = qty
	base := line.Base()
	if line.DiscountAmt.GreaterThan(base) {
		line.DiscountAmt = base
	}
	line.LineTotal = base.Sub(line.DiscountAmt)
}

func (s *service) indexByID(id string) int {
	for i, l := range s.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (s *service) indexBySKU(sku string) int {
	for i, l := range s.lines {
		if l.ItemID == types.CustomItemID {
			continue
		}
		if l.SKU == sku {
			return i
		}
	}
	return -1
}

func nonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
