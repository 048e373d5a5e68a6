package orders

import (
	"github.com/shopspring/decimal"

	"github.com/AskiaMohamed22/ngenius-backend/pkg/types"
)

// CreateInput carries the buyer-supplied order fields. The same shape feeds
// both creation and repair; repair treats empty fields as "not supplied".
type CreateInput struct {
	OrderID         string
	UserID          string
	Items           types.LineItems
	Total           decimal.Decimal
	Subtotal        decimal.Decimal
	ShippingCost    decimal.Decimal
	Tax             decimal.Decimal
	Discount        decimal.Decimal
	PaymentMethod   string
	PromoCode       string
	ShippingDetails *types.ShippingDetails
}

// RepairAction reports which path a repair request took.
type RepairAction string

const (
	RepairActionCreated RepairAction = "created"
	RepairActionUpdated RepairAction = "updated"
)
