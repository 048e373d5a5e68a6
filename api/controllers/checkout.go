package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/AskiaMohamed22/ngenius-backend/api/responses"
	"github.com/AskiaMohamed22/ngenius-backend/api/validators"
	checkoutsvc "github.com/AskiaMohamed22/ngenius-backend/internal/checkout"
	"github.com/AskiaMohamed22/ngenius-backend/internal/orders"
	pkgerrors "github.com/AskiaMohamed22/ngenius-backend/pkg/errors"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/logger"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/types"
)

// Checkout persists a pending order and opens a hosted payment session for it.
func Checkout(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Start(r.Context(), checkoutsvc.Input{
			Order:       payload.toCreateInput(),
			Email:       payload.Email,
			RedirectURL: payload.RedirectURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, types.CheckoutResponse{
			Success:    true,
			PaymentURL: result.PaymentURL,
			Reference:  result.Reference,
			OrderID:    result.OrderID,
		})
	}
}

type checkoutRequest struct {
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
	Email           string                 `json:"email" validate:"omitempty,email"`
	RedirectURL     string                 `json:"redirectUrl" validate:"omitempty,url"`
}

func (p checkoutRequest) toCreateInput() orders.CreateInput {
	return orders.CreateInput{
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
