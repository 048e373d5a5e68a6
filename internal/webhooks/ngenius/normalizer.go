package ngeniuswebhook

import (
	"encoding/json"
	"strings"

	pkgerrors "github.com/AskiaMohamed22/ngenius-backend/pkg/errors"
)

// Notification is the canonical triple extracted from a gateway payload.
type Notification struct {
	OrderID          string
	PaymentState     string
	GatewayReference string
}

// fieldProbe returns the value at one candidate location, or "" when absent.
type fieldProbe func(payload map[string]any) string

// Candidate precedence per field. The order is a contract: providers ship the
// same value under different keys across payload versions, and the first
// non-empty candidate is the single canonical source. Do not reorder.
var (
	orderIDProbes = []fieldProbe{
		stringAt("order", "reference"),
		stringAt("reference"),
		stringAt("orderReference"),
	}
	paymentStateProbes = []fieldProbe{
		stringAt("order", "state"),
		stringAt("state"),
		stringAt("eventName"),
	}
	gatewayReferenceProbes = []fieldProbe{
		stringAt("order", "orderReference"),
		stringAt("order", "_id"),
		stringAt("_id"),
	}
)

// Normalize interprets a raw notification body. Failure to resolve the order
// id or the payment state aborts processing before any store mutation.
func Normalize(raw []byte) (*Notification, error) {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "notification body is not valid JSON")
	}

	note := &Notification{
		OrderID:          firstNonEmpty(payload, orderIDProbes),
		PaymentState:     firstNonEmpty(payload, paymentStateProbes),
		GatewayReference: firstNonEmpty(payload, gatewayReferenceProbes),
	}
	if note.OrderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification carries no order reference")
	}
	if note.PaymentState == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notification carries no payment state")
	}
	return note, nil
}

func firstNonEmpty(payload map[string]any, probes []fieldProbe) string {
	for _, probe := range probes {
		if v := probe(payload); v != "" {
			return v
		}
	}
	return ""
}

func stringAt(path ...string) fieldProbe {
	return func(payload map[string]any) string {
		var current any = payload
		for _, key := range path {
			node, ok := current.(map[string]any)
			if !ok {
				return ""
			}
			current, ok = node[key]
			if !ok {
				return ""
			}
		}
		s, ok := current.(string)
		if !ok {
			return ""
		}
		return strings.TrimSpace(s)
	}
}
