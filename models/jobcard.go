package models

import (
	"gorm.io/gorm"
)

type JobCardItemStatus string

const (
	JobItemProposed JobCardItemStatus = "proposed"
	JobItemApproved JobCardItemStatus = "approved"
	JobItemRejected JobCardItemStatus = "rejected"
)

// JobCard tracks actual-vs-estimated cost for an order once a technician has
// looked at the job. Depending on order status it may be missing or only
// partially filled in.
type JobCard struct {
	gorm.Model
	OrderID           uint          `json:"order_id" gorm:"uniqueIndex"`
	EstimateAmount    float64       `json:"estimate_amount"`
	AdditionalCharges float64       `json:"additional_charges"`
	FinalAmount       float64       `json:"final_amount"`
	Notes             string        `json:"notes"`
	Items             []JobCardItem `json:"items,omitempty" gorm:"foreignKey:JobCardID"`
}

// JobCardItem is one parts/labor line. Additional items proposed by the
// technician stay "proposed" until the customer approves or rejects them.
type JobCardItem struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	JobCardID uint              `json:"job_card_id" gorm:"index"`
	Name      string            `json:"name"`
	Kind      string            `json:"kind"` // "parts" or "labor"
	Amount    float64           `json:"amount"`
	Status    JobCardItemStatus `json:"status" gorm:"default:proposed"`
}

// Summary computes the billable breakdown for the order detail view. The
// subtotal falls back in priority order: final amount if set, otherwise
// estimate plus additional charges, otherwise the order's estimated cost.
func (j *JobCard) Summary(orderEstimatedCost float64) PriceSummary {
	subtotal := orderEstimatedCost
	if j != nil {
		if j.FinalAmount > 0 {
			subtotal = j.FinalAmount
		} else if j.EstimateAmount+j.AdditionalCharges > 0 {
			subtotal = j.EstimateAmount + j.AdditionalCharges
		}
	}
	return Totals(subtotal)
}
