package ngeniuswebhook

import (
	"testing"

	"github.com/AskiaMohamed22/ngenius-backend/pkg/enums"
)

func TestMapState(t *testing.T) {
	cases := []struct {
		state    string
		status   enums.OrderStatus
		captured bool
	}{
		{"CAPTURED", enums.OrderStatusConfirmed, true},
		{"PURCHASED", enums.OrderStatusConfirmed, true},
		{"FAILED", enums.OrderStatusCancelled, false},
		{"DECLINED", enums.OrderStatusCancelled, false},
		{"CANCELLED", enums.OrderStatusCancelled, false},
		{"AUTHORIZED", enums.OrderStatusPending, false},
		{"STARTED", enums.OrderStatusPending, false},
		{"SOMETHING_NEW", enums.OrderStatusPending, false},
		{"", enums.OrderStatusPending, false},
		{"captured", enums.OrderStatusConfirmed, true},
	}

	for _, tc := range cases {
		status, captured := MapState(tc.state)
		if status != tc.status || captured != tc.captured {
			t.Fatalf("state %q: expected (%s, %v), got (%s, %v)",
				tc.state, tc.status, tc.captured, status, captured)
		}
	}
}
