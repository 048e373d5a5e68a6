package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AskiaMohamed22/ngenius-backend/pkg/enums"
	"github.com/AskiaMohamed22/ngenius-backend/pkg/types"
)

// GatewayNgenius is the constant provider identifier stamped on every order.
const GatewayNgenius = "ngenius"

// Order is the central record joining the checkout flow and the webhook flow.
// The primary key is the externally supplied order id; it never changes after
// creation.
type Order struct {
	ID     string `gorm:"column:id;primaryKey" json:"orderId"`
	UserID string `gorm:"column:user_id;not null;index" json:"userId"`

	Items      types.LineItems `gorm:"column:items;type:jsonb" json:"items"`
	ItemsCount int             `gorm:"column:items_count;not null;default:0" json:"itemsCount"`

	Total        decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Subtotal     decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null;default:0" json:"subtotal"`
	ShippingCost decimal.Decimal `gorm:"column:shipping_cost;type:numeric(12,2);not null;default:0" json:"shippingCost"`
	Tax          decimal.Decimal `gorm:"column:tax;type:numeric(12,2);not null;default:0" json:"tax"`
	Discount     decimal.Decimal `gorm:"column:discount;type:numeric(12,2);not null;default:0" json:"discount"`

	Status        enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	PaymentMethod string            `gorm:"column:payment_method" json:"paymentMethod,omitempty"`
	Gateway       string            `gorm:"column:gateway;not null" json:"gateway"`
	PromoCode     string            `gorm:"column:promo_code" json:"promoCode,omitempty"`

	ShippingDetails *types.ShippingDetails `gorm:"column:shipping_details;type:jsonb" json:"shippingDetails,omitempty"`
	Payment         *types.PaymentRecord   `gorm:"column:payment;type:jsonb" json:"payment,omitempty"`

	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
	ConfirmedAt *time.Time `gorm:"column:confirmed_at" json:"confirmedAt,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}
