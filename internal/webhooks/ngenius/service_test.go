package ngeniuswebhook

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/AskiaMohamed22/ngenius-backend/internal/orders"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/db/models"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/enums"
	pkgerrors "github.com/AskiaMohamed22/ngenius-backend/pkg/errors"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/types"
)

// fakeStore applies partial updates to in-memory orders the way the real
// repository applies them to rows.
type fakeStore struct {
	records map[string]*models.Order
}

func newFakeStore(existing ...*models.Order) *fakeStore {
	s := &fakeStore{records: map[string]*models.Order{}}
	for _, order := range existing {
		s.records[order.ID] = order
	}
	return s
}

func (s *fakeStore) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	order, ok := s.records[orderID]
	if !ok {
		return nil, orders.ErrOrderNotFound
	}
	snapshot := *order
	return &snapshot, nil
}

func (s *fakeStore) UpdateFields(ctx context.Context, orderID string, updates map[string]any) error {
	order, ok := s.records[orderID]
	if !ok {
		return orders.ErrOrderNotFound
	}
	for key, value := range updates {
		switch key {
		case "status":
			order.Status = value.(enums.OrderStatus)
		case "payment":
			order.Payment = value.(*types.PaymentRecord)
		case "updated_at":
			order.UpdatedAt = value.(time.Time)
		case "confirmed_at":
			t := value.(time.Time)
			order.ConfirmedAt = &t
		default:
			return fmt.Errorf("unexpected update key %q", key)
		}
	}
	return nil
}

func pendingOrder(id string) *models.Order {
	return &models.Order{
		ID:      id,
		UserID:  "U1",
		Status:  enums.OrderStatusPending,
		Gateway: models.GatewayNgenius,
	}
}

func capturedPayload(t *testing.T, orderID string) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"eventName": "CAPTURED",
		"order": map[string]any{
			"reference":      orderID,
			"state":          "CAPTURED",
			"orderReference": "ng-" + orderID,
		},
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return raw
}

func TestHandleNotificationConfirmsOrder(t *testing.T) {
	store := newFakeStore(pendingOrder("O1"))
	svc, _ := NewService(store, nil, nil)

	raw := capturedPayload(t, "O1")
	if err := svc.HandleNotification(context.Background(), raw); err != nil {
		t.Fatalf("handle notification: %v", err)
	}

	order := store.records["O1"]
	if order.Status != enums.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", order.Status)
	}
	if order.Payment == nil || !order.Payment.Captured {
		t.Fatal("expected captured payment record")
	}
	if order.Payment.GatewayReference != "ng-O1" {
		t.Fatalf("expected gateway reference ng-O1, got %q", order.Payment.GatewayReference)
	}
	if string(order.Payment.Raw) != string(raw) {
		t.Fatal("expected verbatim payload retained on the payment record")
	}
	if order.ConfirmedAt == nil {
		t.Fatal("expected confirmedAt set on first confirmation")
	}
	if order.Payment.PaidAt == nil {
		t.Fatal("expected paidAt set on first confirmation")
	}
}

func TestHandleNotificationIdempotentRedelivery(t *testing.T) {
	store := newFakeStore(pendingOrder("O1"))
	svc, _ := NewService(store, nil, nil)
	raw := capturedPayload(t, "O1")

	if err := svc.HandleNotification(context.Background(), raw); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	first := *store.records["O1"]
	firstConfirmedAt := *first.ConfirmedAt

	if err := svc.HandleNotification(context.Background(), raw); err != nil {
		t.Fatalf("second delivery: %v", err)
	}
	second := *store.records["O1"]

	if second.Status != first.Status {
		t.Fatalf("redelivery changed status: %s -> %s", first.Status, second.Status)
	}
	if !second.ConfirmedAt.Equal(firstConfirmedAt) {
		t.Fatal("redelivery must not touch confirmedAt")
	}
	if !second.Payment.Captured {
		t.Fatal("captured flag must survive redelivery")
	}
}

func TestHandleNotificationCancelsOrder(t *testing.T) {
	store := newFakeStore(pendingOrder("O1"))
	svc, _ := NewService(store, nil, nil)

	raw := []byte(`{"order": {"reference": "O1", "state": "DECLINED"}}`)
	if err := svc.HandleNotification(context.Background(), raw); err != nil {
		t.Fatalf("handle notification: %v", err)
	}

	order := store.records["O1"]
	if order.Status != enums.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", order.Status)
	}
	if order.Payment.Captured {
		t.Fatal("declined payment must not set captured")
	}
	if order.ConfirmedAt != nil {
		t.Fatal("declined payment must not set confirmedAt")
	}
}

func TestHandleNotificationTerminalOrderIsNoOp(t *testing.T) {
	confirmed := pendingOrder("O1")
	confirmed.Status = enums.OrderStatusConfirmed
	capturedAt := time.Now().UTC().Add(-time.Hour)
	confirmed.ConfirmedAt = &capturedAt
	confirmed.Payment = &types.PaymentRecord{Gateway: models.GatewayNgenius, State: "CAPTURED", Captured: true}

	store := newFakeStore(confirmed)
	svc, _ := NewService(store, nil, nil)

	// a late AUTHORIZED notification must not regress the order to pending
	raw := []byte(`{"order": {"reference": "O1", "state": "AUTHORIZED"}}`)
	if err := svc.HandleNotification(context.Background(), raw); err != nil {
		t.Fatalf("handle notification: %v", err)
	}

	order := store.records["O1"]
	if order.Status != enums.OrderStatusConfirmed {
		t.Fatalf("terminal order regressed to %s", order.Status)
	}
	if !order.Payment.Captured {
		t.Fatal("captured flag was cleared by a late notification")
	}
}

func TestHandleNotificationUnknownOrder(t *testing.T) {
	store := newFakeStore()
	svc, _ := NewService(store, nil, nil)

	raw := capturedPayload(t, "ghost")
	err := svc.HandleNotification(context.Background(), raw)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error for unknown order, got %v", err)
	}
	if len(store.records) != 0 {
		t.Fatal("no record may be created by a notification")
	}
}

func TestHandleNotificationMalformedPayload(t *testing.T) {
	store := newFakeStore(pendingOrder("O1"))
	svc, _ := NewService(store, nil, nil)

	err := svc.HandleNotification(context.Background(), []byte(`{"order": {"state": "CAPTURED"}}`))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if store.records["O1"].Payment != nil {
		t.Fatal("malformed payload must not mutate any order")
	}
}
