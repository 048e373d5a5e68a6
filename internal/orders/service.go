package orders

import (
	"context"
	"errors"
	"time"

	"github.com/AskiaMohamed22/ngenius-backend/pkg/db"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/db/models"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/enums"
	pkgerrors "github.com/AskiaMohamed22/ngenius-backend/pkg/errors"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/logger"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/types"
)

// Service owns order creation, the backfill repair path, and owner queries.
type Service interface {
	Create(ctx context.Context, in CreateInput) (*models.Order, error)
	Repair(ctx context.Context, in CreateInput) (RepairAction, error)
	Get(ctx context.Context, orderID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Create writes a new pending order before any gateway interaction.
func (s *service) Create(ctx context.Context, in CreateInput) (*models.Order, error) {
	if in.OrderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orderId is required")
	}
	if in.UserID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "userId is required")
	}

	order := buildOrder(in)
	if err := s.repo.Create(ctx, order); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "order already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	if s.logg != nil {
		ctx = s.logg.WithOrderID(ctx, order.ID)
		s.logg.Info(ctx, "order created")
	}
	return order, nil
}

// Repair recovers a record whose original creation partially failed. When the
// record is absent it behaves as Create; when present, only the supplied
// non-empty fields are merged over the stored ones. The read-then-write pair
// is not serialized against concurrent webhook deliveries; the window is an
// accepted limitation of this path.
func (s *service) Repair(ctx context.Context, in CreateInput) (RepairAction, error) {
	if in.OrderID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "orderId is required")
	}
	if in.UserID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "userId is required")
	}

	existing, err := s.repo.FindByID(ctx, in.OrderID)
	if errors.Is(err, ErrOrderNotFound) {
		if _, err := s.Create(ctx, in); err != nil {
			return "", err
		}
		return RepairActionCreated, nil
	}
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order for repair")
	}

	updates := mergeUpdates(existing, in)
	if err := s.repo.UpdateFields(ctx, in.OrderID, updates); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply repair update")
	}

	if s.logg != nil {
		ctx = s.logg.WithOrderID(ctx, in.OrderID)
		s.logg.Info(ctx, "order repaired")
	}
	return RepairActionUpdated, nil
}

func (s *service) Get(ctx context.Context, orderID string) (*models.Order, error) {
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orderId is required")
	}
	order, err := s.repo.FindByID(ctx, orderID)
	if errors.Is(err, ErrOrderNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "userId is required")
	}
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

func buildOrder(in CreateInput) *models.Order {
	items := in.Items
	if items == nil {
		items = types.LineItems{}
	}
	return &models.Order{
		ID:              in.OrderID,
		UserID:          in.UserID,
		Items:           items,
		ItemsCount:      len(items),
		Total:           in.Total,
		Subtotal:        in.Subtotal,
		ShippingCost:    in.ShippingCost,
		Tax:             in.Tax,
		Discount:        in.Discount,
		Status:          enums.OrderStatusPending,
		PaymentMethod:   in.PaymentMethod,
		Gateway:         models.GatewayNgenius,
		PromoCode:       in.PromoCode,
		ShippingDetails: in.ShippingDetails,
	}
}

// mergeUpdates keeps every stored field unless the repair request supplies a
// non-empty replacement.
func mergeUpdates(existing *models.Order, in CreateInput) map[string]any {
	updates := map[string]any{
		"updated_at": time.Now().UTC(),
	}
	if in.UserID != "" && in.UserID != existing.UserID {
		updates["user_id"] = in.UserID
	}
	if len(in.Items) > 0 {
		updates["items"] = in.Items
		updates["items_count"] = len(in.Items)
	}
	if !in.Total.IsZero() {
		updates["total"] = in.Total
	}
	if !in.Subtotal.IsZero() {
		updates["subtotal"] = in.Subtotal
	}
	if !in.ShippingCost.IsZero() {
		updates["shipping_cost"] = in.ShippingCost
	}
	if !in.Tax.IsZero() {
		updates["tax"] = in.Tax
	}
	if !in.Discount.IsZero() {
		updates["discount"] = in.Discount
	}
	if in.PaymentMethod != "" {
		updates["payment_method"] = in.PaymentMethod
	}
	if in.PromoCode != "" {
		updates["promo_code"] = in.PromoCode
	}
	if !in.ShippingDetails.IsZero() {
		updates["shipping_details"] = in.ShippingDetails
	}
	return updates
}
