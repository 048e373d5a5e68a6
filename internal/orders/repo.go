package orders

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AskiaMohamed22/ngenius-backend/pkg/db/models"
)

// ErrOrderNotFound is returned when a point read or partial update targets a
// missing order key.
var ErrOrderNotFound = errors.New("order not found")

// Repository is the order store surface the engine relies on: create, partial
// update, point read, and the owner-scoped ordered scan.
type Repository interface {
	Create(ctx context.Context, order *models.Order) error
	UpdateFields(ctx context.Context, orderID string, updates map[string]any) error
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// UpdateFields applies a partial update as a single UPDATE statement. The row
// must already exist; a zero-row update reports ErrOrderNotFound.
func (r *repository) UpdateFields(ctx context.Context, orderID string, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
