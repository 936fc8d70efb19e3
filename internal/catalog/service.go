package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/angelmondragon/packfinderz-pos/pkg/db/models"
	pkgerrors "github.com/angelmondragon/packfinderz-pos/pkg/errors"
	"github.com/angelmondragon/packfinderz-pos/pkg/types"
)

// Lookup is the barcode surface the cart consumes.
type Lookup interface {
	// GetItemByBarcode returns nil without error when nothing matches.
	GetItemByBarcode(ctx context.Context, code string) (*types.Item, error)
}

// Service exposes catalog and customer lookups for the till.
type Service interface {
	Lookup
	SearchItems(ctx context.Context, filter ItemFilter) ([]types.Item, error)
	ListItems(ctx context.Context) ([]types.Item, error)
	UpsertItem(ctx context.Context, item types.Item) (types.Item, error)
	ListCustomers(ctx context.Context, q string) ([]types.Customer, error)
	GetCustomer(ctx context.Context, id string) (types.Customer, error)
	CreateCustomer(ctx context.Context, input CreateCustomerInput) (types.Customer, error)
}

// CreateCustomerInput carries the fields of a new customer.
type CreateCustomerInput struct {
	ID      string
	Name    string
	Phone   string
	TaxID   string
	Address string
}

type service struct {
	repo *Repository
	// Collapses concurrent lookups of the same scanned code.
	lookups singleflight.Group
}

// NewService builds a catalog service with the required dependencies.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetItemByBarcode(ctx context.Context, code string) (*types.Item, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	v, err, _ := s.lookups.Do(code, func() (any, error) {
		row, err := s.repo.FindByCode(ctx, code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return (*types.Item)(nil), nil
		}
		if err != nil {
			return nil, err
		}
		item := row.ToType()
		return &item, nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup item by barcode")
	}
	item := v.(*types.Item)
	if item == nil {
		return nil, nil
	}
	out := *item
	return &out, nil
}

func (s *service) SearchItems(ctx context.Context, filter ItemFilter) ([]types.Item, error) {
	rows, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search items")
	}
	out := make([]types.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToType())
	}
	return out, nil
}

func (s *service) ListItems(ctx context.Context) ([]types.Item, error) {
	return s.SearchItems(ctx, ItemFilter{})
}

// UpsertItem creates or replaces the item keyed by SKU.
func (s *service) UpsertItem(ctx context.Context, item types.Item) (types.Item, error) {
	item.SKU = strings.TrimSpace(item.SKU)
	item.Name = strings.TrimSpace(item.Name)
	if item.SKU == "" {
		return types.Item{}, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if item.Name == "" {
		return types.Item{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if item.Price.IsNegative() {
		return types.Item{}, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative").
			WithDetails(map[string]any{"sku": item.SKU})
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	row := models.CatalogItem{
		ID:          item.ID,
		SKU:         item.SKU,
		Name:        item.Name,
		Brand:       item.Brand,
		Category:    item.Category,
		Price:       item.Price,
		TaxIncluded: item.TaxIncluded,
		StockQty:    item.StockQty,
	}
	if b := strings.TrimSpace(item.Barcode); b != "" {
		row.Barcode = &b
	}
	if err := s.repo.UpsertItem(ctx, &row); err != nil {
		return types.Item{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert item")
	}

	stored, err := s.repo.FindBySKU(ctx, item.SKU)
	if err != nil {
		return types.Item{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload item")
	}
	return stored.ToType(), nil
}

func (s *service) ListCustomers(ctx context.Context, q string) ([]types.Customer, error) {
	rows, err := s.repo.ListCustomers(ctx, q)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	out := make([]types.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ToType())
	}
	return out, nil
}

func (s *service) GetCustomer(ctx context.Context, id string) (types.Customer, error) {
	row, err := s.repo.FindCustomer(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.Customer{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "customer not found")
	}
	if err != nil {
		return types.Customer{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return row.ToType(), nil
}

func (s *service) CreateCustomer(ctx context.Context, input CreateCustomerInput) (types.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return types.Customer{}, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = uuid.NewString()
	}

	row := models.Customer{
		ID:      id,
		Name:    name,
		Phone:   optional(input.Phone),
		TaxID:   optional(input.TaxID),
		Address: optional(input.Address),
	}
	if err := s.repo.CreateCustomer(ctx, &row); err != nil {
		return types.Customer{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return row.ToType(), nil
}

func optional(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
