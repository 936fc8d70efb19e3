package cart

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/packfinderz-pos/pkg/db/models"
	pkgerrors "github.com/angelmondragon/packfinderz-pos/pkg/errors"
	"github.com/angelmondragon/packfinderz-pos/pkg/kvstore"
	"github.com/angelmondragon/packfinderz-pos/pkg/metrics"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

// HoldSale saves the current cart under the held-sale key, replacing any
// earlier held cart. The working cart is left as is.
func (s *service) HoldSale(ctx context.Context) error {
	s.mu.Lock()
	snapshot := s.stateLocked().Snapshot()
	s.mu.Unlock()

	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeyHeldSale, snapshot); err != nil {
		s.logg.Error(ctx, "hold sale failed", err)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "hold sale")
	}
	s.metrics.IncEvent(metrics.EventHold)
	s.logg.Info(s.logg.WithField(ctx, "lines", len(snapshot.Lines)), "sale held")
	return nil
}

// ResumeSaleIfAny swaps the held cart in. It reports false, changing nothing,
// when no cart is held.
func (s *service) ResumeSaleIfAny(ctx context.Context) (bool, error) {
	snapshot, found, err := kvstore.GetJSON[types.CartSnapshot](ctx, s.store, kvstore.KeyHeldSale)
	if err != nil {
		s.logg.Error(ctx, "load held sale failed", err)
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load held sale")
	}
	if !found {
		return false, nil
	}
	if err := s.store.Delete(ctx, kvstore.KeyHeldSale); err != nil {
		s.logg.Error(ctx, "clear held sale failed", err)
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear held sale")
	}

	s.mu.Lock()
	s.lines = types.CloneLines(snapshot.Lines)
	s.customer = snapshot.Customer
	s.orderDiscount = snapshot.OrderDiscount
	s.recalc()
	s.mu.Unlock()

	s.metrics.IncEvent(metrics.EventResume)
	s.logg.Info(s.logg.WithField(ctx, "lines", len(snapshot.Lines)), "sale resumed")
	return true, nil
}

// HasHeldSale reports whether a held cart is waiting.
func (s *service) HasHeldSale(ctx context.Context) (bool, error) {
	_, err := s.store.Get(ctx, kvstore.KeyHeldSale)
	if errors.Is(err, kvstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check held sale")
	}
	return true, nil
}

// CreateSaleDraftAndFinalize records the current cart as a sale, marks it paid
// with the given payments and appends it to the history. The cart itself is
// not cleared. On any failure before the sale is paid the history is left
// unchanged.
func (s *service) CreateSaleDraftAndFinalize(ctx context.Context, payments []types.Payment) (models.Sale, error) {
	started := time.Now()

	s.mu.Lock()
	state := s.stateLocked()
	s.mu.Unlock()

	draft := types.SaleDraft{
		CashierID:     s.cashier.CashierID(),
		Customer:      state.Customer,
		Lines:         state.Lines,
		Totals:        state.Totals,
		DiscountTotal: state.DiscountTotal,
	}

	created, err := s.sales.CreateSale(ctx, draft)
	if err != nil {
		s.metrics.IncFailure(metrics.StageCreate)
		s.logg.Error(ctx, "create sale failed", err)
		return models.Sale{}, err
	}
	ctx = s.logg.WithSaleID(ctx, created.ID)

	finalized, err := s.sales.FinalizeSale(ctx, created.ID, payments)
	if err != nil {
		s.metrics.IncFailure(metrics.StageFinalize)
		s.logg.Error(ctx, "finalize sale failed", err)
		return models.Sale{}, err
	}

	// historyMu spans the append and the write so an older list never
	// overwrites a newer one in the store.
	s.historyMu.Lock()
	s.mu.Lock()
	history := make([]models.Sale, 0, len(s.history)+1)
	history = append(history, s.history...)
	history = append(history, finalized)
	s.history = history
	s.mu.Unlock()

	// The sale is already paid; the next checkout rewrites the whole list.
	if err := kvstore.SetJSON(ctx, s.store, kvstore.KeySaleHistory, history); err != nil {
		s.metrics.IncFailure(metrics.StageHistory)
		s.logg.Error(ctx, "persist sale history failed", err)
	}
	s.historyMu.Unlock()

	s.metrics.ObserveFinalized(finalized.GrandTotal, time.Since(started))
	s.logg.Info(s.logg.WithField(ctx, "number", finalized.Number), "sale finalized")
	return finalized, nil
}

// LoadHistory replaces the in-memory history with the persisted one.
func (s *service) LoadHistory(ctx context.Context) error {
	s.historyMu.Lock()
	defer s.historyMu.Unlock()

	history, _, err := kvstore.GetJSON[[]models.Sale](ctx, s.store, kvstore.KeySaleHistory)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale history")
	}
	if history == nil {
		history = []models.Sale{}
	}

	s.mu.Lock()
	s.history = history
	s.mu.Unlock()
	return nil
}

// History returns the finalized sales, oldest first.
func (s *service) History() []models.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Sale, len(s.history))
	copy(out, s.history)
	return out
}
