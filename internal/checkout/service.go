package checkout

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/AskiaMohamed22/ngenius-backend/internal/orders"
	pkgerrors "github.com/AskiaMohamed22/ngenius-backend/pkg/errors"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/logger"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/ngenius"
)

// gateway is the slice of the payment gateway checkout needs.
type gateway interface {
	CreateHostedSession(ctx context.Context, in ngenius.HostedSessionInput) (*ngenius.HostedSession, error)
}

// Input is a full order snapshot plus the buyer contact fields the hosted
// payment page needs.
type Input struct {
	Order       orders.CreateInput
	Email       string
	RedirectURL string
}

// Result hands the caller everything needed to redirect the buyer.
type Result struct {
	OrderID    string
	Reference  string
	PaymentURL string
}

// Service runs the checkout sequence: persist the pending order first, then
// open a hosted payment session for it. The order record is never touched
// after creation here; only gateway notifications move it out of pending.
type Service struct {
	orders   orders.Service
	gateway  gateway
	currency string
	logg     *logger.Logger
}

func NewService(ordersSvc orders.Service, gw gateway, currency string, logg *logger.Logger) (*Service, error) {
	if ordersSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders service required")
	}
	if gw == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment gateway required")
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "currency required")
	}
	return &Service{orders: ordersSvc, gateway: gw, currency: currency, logg: logg}, nil
}

// Start persists the order and opens a hosted session. On a gateway failure
// the pending order is left in place so the buyer can retry payment, and the
// upstream error is returned as-is.
func (s *Service) Start(ctx context.Context, in Input) (*Result, error) {
	if in.Order.Total.Cmp(decimal.Zero) <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total must be positive")
	}

	order, err := s.orders.Create(ctx, in.Order)
	if err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateHostedSession(ctx, ngenius.HostedSessionInput{
		OrderID:     order.ID,
		Email:       in.Email,
		AmountMinor: minorUnits(order.Total),
		Currency:    s.currency,
		RedirectURL: in.RedirectURL,
	})
	if err != nil {
		if s.logg != nil {
			ctx = s.logg.WithOrderID(ctx, order.ID)
			s.logg.Error(ctx, "hosted session failed, order left pending", err)
		}
		return nil, err
	}

	if s.logg != nil {
		ctx = s.logg.WithOrderID(ctx, order.ID)
		s.logg.Info(ctx, "checkout session opened")
	}
	return &Result{
		OrderID:    order.ID,
		Reference:  session.Reference,
		PaymentURL: session.PaymentURL,
	}, nil
}

// minorUnits converts a major-unit amount to the gateway's integer minor
// units, e.g. 12.50 AED to 1250 fils.
func minorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
