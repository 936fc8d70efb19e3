package sales

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/packfinderz-pos/pkg/db"
	"github.com/angelmondragon/packfinderz-pos/pkg/db/models"
	"github.com/angelmondragon/packfinderz-pos/pkg/enums"
	pkgerrors "github.com/angelmondragon/packfinderz-pos/pkg/errors"
	"github.com/angelmondragon/packfinderz-pos/pkg/logger"
	"github.com/angelmondragon/packfinderz-pos/pkg/pagination"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

const (
	numberBase     = 100000
	maxNumberTries = 3
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Persistence is the sale-recording surface the cart consumes.
type Persistence interface {
	CreateSale(ctx context.Context, draft types.SaleDraft) (models.Sale, error)
	FinalizeSale(ctx context.Context, id string, payments []types.Payment) (models.Sale, error)
}

// Service records sales and serves them back for receipts and reports.
type Service interface {
	Persistence
	FindSaleByNumber(ctx context.Context, number string) (models.Sale, error)
	ListSales(ctx context.Context, params pagination.Params) (Page, error)
}

// Page is one page of sales, newest first.
type Page struct {
	Sales      []models.Sale `json:"sales"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// ServiceParams groups dependencies for the sales service.
type ServiceParams struct {
	Repo             *Repository
	Tx               txRunner
	DefaultCashierID string
	Logger           *logger.Logger
	Now              func() time.Time
}

type service struct {
	repo             *Repository
	tx               txRunner
	defaultCashierID string
	logg             *logger.Logger
	now              func() time.Time
}

// NewService builds a sales service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sales repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:             params.Repo,
		tx:               params.Tx,
		defaultCashierID: params.DefaultCashierID,
		logg:             logg,
		now:              now,
	}, nil
}

// CreateSale stores the draft as an OPEN sale with the next sequence number.
func (s *service) CreateSale(ctx context.Context, draft types.SaleDraft) (models.Sale, error) {
	cashierID := strings.TrimSpace(draft.CashierID)
	if cashierID == "" {
		cashierID = s.defaultCashierID
	}
	if cashierID == "" {
		return models.Sale{}, pkgerrors.New(pkgerrors.CodeValidation, "cashier id is required")
	}

	sale := models.Sale{
		ID:            uuid.NewString(),
		Datetime:      s.now().UTC().Truncate(time.Microsecond),
		CashierID:     cashierID,
		Customer:      draft.Customer.Clone(),
		Lines:         types.CloneLines(draft.Lines),
		Subtotal:      draft.Totals.Subtotal,
		Tax:           draft.Totals.Tax,
		GrandTotal:    draft.Totals.GrandTotal,
		DiscountTotal: draft.DiscountTotal,
		Payments:      []types.Payment{},
		Note:          draft.Note,
		Status:        enums.SaleStatusOpen,
	}
	if draft.Customer != nil && draft.Customer.ID != "" {
		id := draft.Customer.ID
		sale.CustomerID = &id
	}

	var err error
	for attempt := 0; attempt < maxNumberTries; attempt++ {
		err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			count, err := repo.Count(ctx)
			if err != nil {
				return err
			}
			sale.Number = strconv.FormatInt(numberBase+count, 10)
			return repo.Create(ctx, &sale)
		})
		if err == nil || !db.IsUniqueViolation(err, "") {
			break
		}
		s.logg.Warn(s.logg.WithSaleID(ctx, sale.ID), "sale number taken, retrying")
	}
	if err != nil {
		return models.Sale{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create sale")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"sale_id": sale.ID, "number": sale.Number}), "sale created")
	return sale, nil
}

// FinalizeSale attaches payments and moves an OPEN sale to PAID.
func (s *service) FinalizeSale(ctx context.Context, id string, payments []types.Payment) (models.Sale, error) {
	normalized, err := normalizePayments(payments)
	if err != nil {
		return models.Sale{}, err
	}

	var out models.Sale
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		sale, err := repo.FindByID(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "sale not found").
				WithDetails(map[string]any{"sale_id": id})
		}
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
		}
		if sale.Status != enums.SaleStatusOpen {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "sale is not open").
				WithDetails(map[string]any{"sale_id": id, "status": sale.Status})
		}

		sale.Payments = normalized
		sale.Status = enums.SaleStatusPaid
		if err := repo.Save(ctx, sale); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save sale")
		}
		out = *sale
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "finalize sale")
		}
		return models.Sale{}, err
	}

	s.logg.Info(s.logg.WithSaleID(ctx, out.ID), "sale finalized")
	return out, nil
}

func (s *service) FindSaleByNumber(ctx context.Context, number string) (models.Sale, error) {
	sale, err := s.repo.FindByNumber(ctx, strings.TrimSpace(number))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Sale{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "sale not found").
			WithDetails(map[string]any{"number": number})
	}
	if err != nil {
		return models.Sale{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sale")
	}
	return *sale, nil
}

func (s *service) ListSales(ctx context.Context, params pagination.Params) (Page, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return Page{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	rows, err := s.repo.List(ctx, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return Page{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sales")
	}

	page := Page{Sales: rows}
	if len(rows) > limit {
		page.Sales = rows[:limit]
		last := page.Sales[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{At: last.Datetime, ID: last.ID})
	}
	return page, nil
}

func normalizePayments(payments []types.Payment) ([]types.Payment, error) {
	out := make([]types.Payment, 0, len(payments))
	for i, p := range payments {
		if !p.Type.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment type").
				WithDetails(map[string]any{"index": i, "type": p.Type})
		}
		if p.Amount.LessThan(decimal.Zero) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment amount must not be negative").
				WithDetails(map[string]any{"index": i})
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		out = append(out, p)
	}
	return out, nil
}
