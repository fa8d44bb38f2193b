package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobCardSummaryUsesFinalAmount(t *testing.T) {
	jc := &JobCard{EstimateAmount: 800, AdditionalCharges: 200, FinalAmount: 1500}

	summary := jc.Summary(999)
	assert.Equal(t, 1500.0, summary.Subtotal)
	assert.InDelta(t, 270.0, summary.GST, 0.001)
	assert.InDelta(t, 1770.0, summary.Total, 0.001)
}

func TestJobCardSummaryFallsBackToEstimatePlusAdditional(t *testing.T) {
	jc := &JobCard{EstimateAmount: 800, AdditionalCharges: 200, FinalAmount: 0}

	summary := jc.Summary(999)
	assert.Equal(t, 1000.0, summary.Subtotal)
	assert.InDelta(t, 180.0, summary.GST, 0.001)
	assert.InDelta(t, 1180.0, summary.Total, 0.001)
}

func TestJobCardSummaryFallsBackToOrderEstimate(t *testing.T) {
	jc := &JobCard{}

	summary := jc.Summary(750)
	assert.Equal(t, 750.0, summary.Subtotal)
	assert.InDelta(t, 885.0, summary.Total, 0.001)
}

func TestJobCardSummaryNilJobCard(t *testing.T) {
	// Orders without a job card yet bill from the booking-time estimate
	var jc *JobCard

	summary := jc.Summary(500)
	assert.Equal(t, 500.0, summary.Subtotal)
	assert.InDelta(t, 90.0, summary.GST, 0.001)
	assert.InDelta(t, 590.0, summary.Total, 0.001)
}
