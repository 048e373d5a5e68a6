package orders

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/AskiaMohamed22/ngenius-backend/api/responses"
	"github.com/AskiaMohamed22/ngenius-backend/api/validators"
	internalorders "github.com/AskiaMohamed22/ngenius-backend/internal/orders"
	pkgerrors "github.com/AskiaMohamed22/ngenius-backend/pkg/errors"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/logger"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/types"
)

// List returns the owner's orders, newest first.
func List(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		userID := strings.TrimSpace(r.URL.Query().Get("userId"))
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "userId is required"))
			return
		}

		list, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.OrderListResponse{
			Success: true,
			Count:   len(list),
			Orders:  list,
		})
	}
}

// Detail returns a single order after checking the caller owns it.
func Detail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID := strings.TrimSpace(chi.URLParam(r, "orderId"))
		if orderID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "orderId is required"))
			return
		}
		userID := strings.TrimSpace(r.URL.Query().Get("userId"))
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "userId is required"))
			return
		}

		order, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if order.UserID != userID {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}

		responses.WriteSuccess(w, types.OrderDetailResponse{
			Success: true,
			Order:   order,
		})
	}
}

// Repair recovers an order record whose original creation partially failed.
func Repair(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload repairRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		action, err := svc.Repair(r.Context(), payload.toCreateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message := "order record created"
		if action == internalorders.RepairActionUpdated {
			message = "order record updated"
		}
		responses.WriteSuccess(w, types.RepairResponse{
			Success: true,
			Message: message,
			Action:  string(action),
		})
	}
}

type repairRequest struct {
	OrderID         string                 `json:"orderId" validate:"required"`
	UserID          string                 `json:"userId" validate:"required"`
	Items           types.LineItems        `json:"items"`
	Amount          decimal.Decimal        `json:"amount"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	ShippingCost    decimal.Decimal        `json:"shippingCost"`
	Tax             decimal.Decimal        `json:"tax"`
	Discount        decimal.Decimal        `json:"discount"`
	PaymentMethod   string                 `json:"paymentMethod"`
	PromoCode       string                 `json:"promoCode"`
	ShippingDetails *types.ShippingDetails `json:"shippingDetails"`
}

func (p repairRequest) toCreateInput() internalorders.CreateInput {
	return internalorders.CreateInput{
		OrderID:         p.OrderID,
		UserID:          p.UserID,
		Items:           p.Items,
		Total:           p.Amount,
		Subtotal:        p.Subtotal,
		ShippingCost:    p.ShippingCost,
		Tax:             p.Tax,
		Discount:        p.Discount,
		PaymentMethod:   p.PaymentMethod,
		PromoCode:       p.PromoCode,
		ShippingDetails: p.ShippingDetails,
	}
}
