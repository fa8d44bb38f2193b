package models

// GSTRate is the fixed tax rate applied to every total shown to the customer.
// Cart summary, checkout summary and order/job-card detail all go through
// Totals so the three stay numerically consistent.
const GSTRate = 0.18

// ServiceCharge is a flat fee added on top of subtotal + GST. Currently zero.
const ServiceCharge = 0.0

type PriceSummary struct {
	Subtotal      float64 `json:"subtotal"`
	GST           float64 `json:"gst"`
	ServiceCharge float64 `json:"service_charge"`
	Total         float64 `json:"total"`
}

// Totals computes the customer-facing price breakdown for a given subtotal.
func Totals(subtotal float64) PriceSummary {
	gst := subtotal * GSTRate
	return PriceSummary{
		Subtotal:      subtotal,
		GST:           gst,
		ServiceCharge: ServiceCharge,
		Total:         subtotal + gst + ServiceCharge,
	}
}
