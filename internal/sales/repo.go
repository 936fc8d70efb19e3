package sales

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/packfinderz-pos/pkg/db/models"
	"github.com/angelmondragon/packfinderz-pos/pkg/pagination"
)

// Repository encapsulates sale persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a sales repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Sale{}).Count(&n).Error
	return n, err
}

func (r *Repository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *Repository) Save(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Save(sale).Error
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&sale).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *Repository) FindByNumber(ctx context.Context, number string) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&sale).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// List returns sales newest first, starting after the cursor.
func (r *Repository) List(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Sale, error) {
	q := r.db.WithContext(ctx).Model(&models.Sale{})
	if cursor != nil {
		q = q.Where("(sold_at < ?) OR (sold_at = ? AND id < ?)", cursor.At, cursor.At, cursor.ID)
	}

	var rows []models.Sale
	if err := q.Order("sold_at DESC").Order("id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
