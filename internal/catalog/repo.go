package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/packfinderz-pos/pkg/db/models"
)

const defaultListLimit = 200

// ItemFilter narrows catalog searches. Empty fields match everything.
type ItemFilter struct {
	Term     string
	Brand    string
	Category string
	Limit    int
}

// Repository encapsulates catalog and customer persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByCode matches the code against barcode first, then SKU.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := r.db.WithContext(ctx).
		Where("barcode = ? OR sku = ?", code, code).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN barcode = ? THEN 0 ELSE 1 END",
			Vars:               []any{code},
			WithoutParentheses: true,
		}}).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindBySKU loads an item by its SKU.
func (r *Repository) FindBySKU(ctx context.Context, sku string) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Search filters items by a free-text term over name, SKU and barcode.
func (r *Repository) Search(ctx context.Context, filter ItemFilter) ([]models.CatalogItem, error) {
	q := r.db.WithContext(ctx).Model(&models.CatalogItem{})

	if term := strings.TrimSpace(filter.Term); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR barcode LIKE ?", like, like, "%"+term+"%")
	}
	if filter.Brand != "" {
		q = q.Where("brand = ?", filter.Brand)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var items []models.CatalogItem
	if err := q.Order("name ASC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpsertItem inserts the item or updates the row sharing its SKU.
func (r *Repository) UpsertItem(ctx context.Context, item *models.CatalogItem) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "sku"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"barcode", "name", "brand", "category", "price", "tax_included", "stock_qty", "updated_at",
		}),
	}).Create(item).Error
}

// ListCustomers returns customers whose name or phone contains q.
func (r *Repository) ListCustomers(ctx context.Context, q string) ([]models.Customer, error) {
	query := r.db.WithContext(ctx).Model(&models.Customer{})
	if q = strings.TrimSpace(q); q != "" {
		query = query.Where("LOWER(name) LIKE ? OR phone LIKE ?", "%"+strings.ToLower(q)+"%", "%"+q+"%")
	}

	var customers []models.Customer
	if err := query.Order("name ASC").Limit(defaultListLimit).Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// FindCustomer loads a customer by id.
func (r *Repository) FindCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateCustomer inserts a customer; an existing id is left untouched.
func (r *Repository) CreateCustomer(ctx context.Context, c *models.Customer) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(c).Error
}
