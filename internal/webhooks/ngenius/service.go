package ngeniuswebhook

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/AskiaMohamed22/ngenius-backend/internal/orders"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/db/models"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/enums"
	pkgerrors "github.com/AskiaMohamed22/ngenius-backend/pkg/errors"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/logger"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/metrics"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/types"
)

// orderStore is the slice of the order store the writer needs.
type orderStore interface {
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	UpdateFields(ctx context.Context, orderID string, updates map[string]any) error
}

// Service reconciles gateway notifications into order records.
type Service struct {
	store   orderStore
	logg    *logger.Logger
	metrics *metrics.WebhookMetrics
}

func NewService(store orderStore, logg *logger.Logger, m *metrics.WebhookMetrics) (*Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order store required")
	}
	return &Service{store: store, logg: logg, metrics: m}, nil
}

// HandleNotification applies one verified notification. The update is a
// full-field overwrite of the payment sub-record, so redelivery leaves the
// record in the same observable state. Orders already confirmed or cancelled
// are terminal: a late or duplicate notification for them is acknowledged
// without a write, which also keeps a captured flag from ever being cleared.
func (s *Service) HandleNotification(ctx context.Context, raw []byte) error {
	note, err := Normalize(raw)
	if err != nil {
		s.metrics.IncRejected("normalize")
		return err
	}

	if s.logg != nil {
		ctx = s.logg.WithOrderID(ctx, note.OrderID)
		ctx = s.logg.WithField(ctx, "payment_state", note.PaymentState)
	}

	order, err := s.store.FindByID(ctx, note.OrderID)
	if errors.Is(err, orders.ErrOrderNotFound) {
		s.metrics.IncRejected("unknown_order")
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "no order record for notification")
	}
	if err != nil {
		s.metrics.IncRejected("store")
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order for notification")
	}

	if order.Status.IsTerminal() {
		s.metrics.IncTerminalSkipped()
		if s.logg != nil {
			ctx = s.logg.WithField(ctx, "status", order.Status.String())
			s.logg.Info(ctx, "notification ignored, order already terminal")
		}
		return nil
	}

	status, captured := MapState(note.PaymentState)
	now := time.Now().UTC()

	payment := &types.PaymentRecord{
		Gateway:          models.GatewayNgenius,
		GatewayReference: note.GatewayReference,
		State:            note.PaymentState,
		Captured:         captured,
		Raw:              json.RawMessage(raw),
		UpdatedAt:        now,
	}
	updates := map[string]any{
		"status":     status,
		"payment":    payment,
		"updated_at": now,
	}
	if status == enums.OrderStatusConfirmed {
		// first transition into confirmed; the terminal guard above makes
		// this write-once
		payment.PaidAt = &now
		updates["confirmed_at"] = now
	}

	if err := s.store.UpdateFields(ctx, note.OrderID, updates); err != nil {
		s.metrics.IncRejected("store")
		if errors.Is(err, orders.ErrOrderNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "order vanished before update")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply notification update")
	}

	s.metrics.IncProcessed()
	if s.logg != nil {
		ctx = s.logg.WithField(ctx, "status", status.String())
		s.logg.Info(ctx, "notification reconciled")
	}
	return nil
}
