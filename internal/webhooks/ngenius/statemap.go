package ngeniuswebhook

import (
	"strings"

	"github.com/AskiaMohamed22/ngenius-backend/pkg/enums"
)

// MapState converts a gateway payment state into an order status plus the
// captured-funds flag. Unknown states map to pending without capture, so a
// new gateway vocabulary entry can never confirm or cancel an order by
// accident.
func MapState(state string) (enums.OrderStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(state)) {
	case "CAPTURED", "PURCHASED":
		return enums.OrderStatusConfirmed, true
	case "FAILED", "DECLINED", "CANCELLED":
		return enums.OrderStatusCancelled, false
	case "AUTHORIZED":
		return enums.OrderStatusPending, false
	default:
		return enums.OrderStatusPending, false
	}
}
