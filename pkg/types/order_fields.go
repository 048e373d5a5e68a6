package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a single position inside an order. Items are stored verbatim as
// a JSON column; the engine never interprets them beyond counting.
type LineItem struct {
	ProductID string          `json:"productId,omitempty"`
	Name      string          `json:"name"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

type LineItems []LineItem

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		l = LineItems{}
	}
	return json.Marshal(l)
}

func (l *LineItems) Scan(value any) error {
	return scanJSON(value, l)
}

// ShippingDetails mirrors the buyer-supplied delivery block.
type ShippingDetails struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

func (s ShippingDetails) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (s *ShippingDetails) Scan(value any) error {
	return scanJSON(value, s)
}

// IsZero reports whether no field was supplied. Backfill uses it to avoid
// wiping an existing block with an empty one.
func (s *ShippingDetails) IsZero() bool {
	return s == nil || *s == ShippingDetails{}
}

// PaymentRecord is the gateway-facing sub-record embedded in an order. Raw
// keeps the verbatim notification payload for audit.
type PaymentRecord struct {
	Gateway          string          `json:"gateway"`
	GatewayReference string          `json:"gatewayReference,omitempty"`
	State            string          `json:"state"`
	Captured         bool            `json:"captured"`
	Raw              json.RawMessage `json:"raw,omitempty"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	PaidAt           *time.Time      `json:"paidAt,omitempty"`
}

func (p PaymentRecord) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PaymentRecord) Scan(value any) error {
	return scanJSON(value, p)
}

func scanJSON(value, dest any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
