package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/AskiaMohamed22/ngenius-backend/pkg/db/models"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/enums"
	pkgerrors "github.com/AskiaMohamed22/ngenius-backend/pkg/errors"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/types"
)

type stubRepo struct {
	created     *models.Order
	createErr   error
	found       *models.Order
	findErr     error
	updatedID   string
	updates     map[string]any
	updateErr   error
	listedUser  string
	listOrders  []models.Order
	listErr     error
	updateCalls int
}

func (s *stubRepo) Create(ctx context.Context, order *models.Order) error {
	s.created = order
	return s.createErr
}

func (s *stubRepo) UpdateFields(ctx context.Context, orderID string, updates map[string]any) error {
	s.updateCalls++
	s.updatedID = orderID
	s.updates = updates
	return s.updateErr
}

func (s *stubRepo) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.found, nil
}

func (s *stubRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	s.listedUser = userID
	return s.listOrders, s.listErr
}

func TestCreateRequiresIdentity(t *testing.T) {
	svc, _ := NewService(&stubRepo{}, nil)

	_, err := svc.Create(context.Background(), CreateInput{UserID: "U1"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing orderId, got %v", err)
	}

	_, err = svc.Create(context.Background(), CreateInput{OrderID: "O1"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing userId, got %v", err)
	}
}

func TestCreateBuildsPendingOrder(t *testing.T) {
	repo := &stubRepo{}
	svc, _ := NewService(repo, nil)

	order, err := svc.Create(context.Background(), CreateInput{
		OrderID: "O1",
		UserID:  "U1",
		Items: types.LineItems{
			{Name: "widget", Qty: 2, UnitPrice: decimal.NewFromInt(500), Total: decimal.NewFromInt(1000)},
		},
		Total: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if order.Gateway != models.GatewayNgenius {
		t.Fatalf("expected gateway constant, got %q", order.Gateway)
	}
	if order.ItemsCount != 1 {
		t.Fatalf("expected items count 1, got %d", order.ItemsCount)
	}
	if repo.created == nil {
		t.Fatal("expected repository create call")
	}
}

func TestRepairCreatesWhenAbsent(t *testing.T) {
	repo := &stubRepo{findErr: ErrOrderNotFound}
	svc, _ := NewService(repo, nil)

	action, err := svc.Repair(context.Background(), CreateInput{OrderID: "O1", UserID: "U1"})
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if action != RepairActionCreated {
		t.Fatalf("expected created action, got %s", action)
	}
	if repo.created == nil {
		t.Fatal("expected create call for missing order")
	}
	if repo.updateCalls != 0 {
		t.Fatal("expected no update call for missing order")
	}
}

func TestRepairMergesOnlySuppliedFields(t *testing.T) {
	existing := &models.Order{
		ID:     "O1",
		UserID: "U1",
		Items: types.LineItems{
			{Name: "widget", Qty: 1, UnitPrice: decimal.NewFromInt(1000), Total: decimal.NewFromInt(1000)},
		},
		ItemsCount: 1,
		Total:      decimal.NewFromInt(1000),
		Status:     enums.OrderStatusPending,
	}
	repo := &stubRepo{found: existing}
	svc, _ := NewService(repo, nil)

	// an empty items list and a zero total must not appear in the update
	action, err := svc.Repair(context.Background(), CreateInput{
		OrderID:   "O1",
		UserID:    "U1",
		Items:     types.LineItems{},
		PromoCode: "SAVE10",
	})
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if action != RepairActionUpdated {
		t.Fatalf("expected updated action, got %s", action)
	}
	if _, ok := repo.updates["items"]; ok {
		t.Fatal("empty items list must not erase the stored one")
	}
	if _, ok := repo.updates["total"]; ok {
		t.Fatal("zero total must not erase the stored one")
	}
	if repo.updates["promo_code"] != "SAVE10" {
		t.Fatalf("expected promo code in updates, got %v", repo.updates)
	}
	if _, ok := repo.updates["updated_at"]; !ok {
		t.Fatal("repair must republish updated_at")
	}
}

func TestListByUserRequiresOwner(t *testing.T) {
	svc, _ := NewService(&stubRepo{}, nil)

	_, err := svc.ListByUser(context.Background(), "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
