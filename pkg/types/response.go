package types

// ErrorResponse is the failure envelope returned by every endpoint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// CheckoutResponse hands the caller the hosted payment redirect.
type CheckoutResponse struct {
	Success    bool   `json:"success"`
	PaymentURL string `json:"paymentUrl"`
	Reference  string `json:"reference"`
	OrderID    string `json:"orderId"`
}

// RepairResponse reports whether a repair created or updated the record.
type RepairResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Action  string `json:"action"`
}

// OrderListResponse wraps an owner's orders.
type OrderListResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Orders  any  `json:"orders"`
}

// OrderDetailResponse wraps a single order read.
type OrderDetailResponse struct {
	Success bool `json:"success"`
	Order   any  `json:"order"`
}

// AckResponse is the bare acknowledgement used by webhook deliveries.
type AckResponse struct {
	Success bool `json:"success"`
}
