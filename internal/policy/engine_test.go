package policy

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

const epsilon = 1e-6

var serviceTime = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

// atHoursBefore returns an evaluation time the given number of hours before
// the fixture service time.
func atHoursBefore(hours float64) time.Time {
	return serviceTime.Add(-time.Duration(hours * float64(time.Hour)))
}

// tieredPolicy grants a full refund with at least 24 hours of lead time and
// half back with at least 4 hours.
func tieredPolicy() CancellationPolicy {
	return CancellationPolicy{
		CanCancel: true,
		Windows: []CancellationWindow{
			{HoursBeforeService: 4, RefundPercentage: 50, Description: "50% refund up to 4 hours before service"},
			{HoursBeforeService: 24, RefundPercentage: 100, Description: "free cancellation up to 24 hours before service"},
		},
	}
}

func loungeProduct(price float64, policy CancellationPolicy) Product {
	return Product{
		ID:                 uuid.New(),
		Provider:           ProviderDragonpass,
		Type:               ProductTypeLoungeAccess,
		Price:              Money{Amount: price, Currency: "USD"},
		CancellationPolicy: policy,
		ServiceDateTime:    serviceTime,
		Metadata:           Metadata{AccessType: AccessTypeMultiUse},
	}
}

func TestEvaluateWindowTiers(t *testing.T) {
	engine := NewEngine()
	product := loungeProduct(45.00, tieredPolicy())

	tests := []struct {
		name        string
		hoursBefore float64
		wantLabel   string
		wantRefund  float64
		wantFee     float64
	}{
		{"full refund with a day of notice", 30, LabelFullRefund, 45.00, 0},
		{"half refund between tiers", 10, "50_percent_refund", 22.50, 22.50},
		{"all windows missed", 3, LabelNoRefundWindowExpired, 0, 45.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := engine.Evaluate(product, atHoursBefore(tt.hoursBefore))
			if decision.PolicyName != tt.wantLabel {
				t.Errorf("policy label = %q, want %q", decision.PolicyName, tt.wantLabel)
			}
			if math.Abs(decision.RefundAmount-tt.wantRefund) > epsilon {
				t.Errorf("refund = %v, want %v", decision.RefundAmount, tt.wantRefund)
			}
			if math.Abs(decision.CancellationFee-tt.wantFee) > epsilon {
				t.Errorf("fee = %v, want %v", decision.CancellationFee, tt.wantFee)
			}
		})
	}
}

func TestEvaluateMatchedWindowDetails(t *testing.T) {
	engine := NewEngine()
	product := loungeProduct(45.00, tieredPolicy())

	decision := engine.Evaluate(product, atHoursBefore(30))
	if decision.MatchedWindow == nil {
		t.Fatal("expected a matched window")
	}
	if decision.MatchedWindow.HoursBeforeService != 24 {
		t.Errorf("matched threshold = %v, want 24", decision.MatchedWindow.HoursBeforeService)
	}
	if decision.Message != "free cancellation up to 24 hours before service" {
		t.Errorf("message = %q, want window description", decision.Message)
	}
}

func TestEvaluateCanCancelFalse(t *testing.T) {
	engine := NewEngine()
	policy := tieredPolicy()
	policy.CanCancel = false
	product := loungeProduct(120.00, policy)

	// The windows must never be consulted, regardless of lead time.
	for _, hours := range []float64{-5, 0, 10, 30, 1000} {
		decision := engine.Evaluate(product, atHoursBefore(hours))
		if decision.PolicyName != LabelNoCancellationAllowed {
			t.Errorf("at %vh: label = %q, want %q", hours, decision.PolicyName, LabelNoCancellationAllowed)
		}
		if decision.RefundAmount != 0 || decision.CancellationFee != 120.00 {
			t.Errorf("at %vh: refund/fee = %v/%v, want 0/120", hours, decision.RefundAmount, decision.CancellationFee)
		}
		if decision.MatchedWindow != nil {
			t.Errorf("at %vh: unexpected matched window", hours)
		}
	}
}

func TestEvaluateRefundPlusFeeEqualsPrice(t *testing.T) {
	engine := NewEngine()

	policy := CancellationPolicy{
		CanCancel: true,
		Windows: []CancellationWindow{
			{HoursBeforeService: 48, RefundPercentage: 100, Description: "full refund"},
			{HoursBeforeService: 12, RefundPercentage: 75, Description: "75% refund"},
			{HoursBeforeService: 2, RefundPercentage: 33.3, Description: "partial refund"},
		},
	}

	for _, price := range []float64{0.01, 19.99, 45.00, 1234.56} {
		product := loungeProduct(price, policy)
		for _, hours := range []float64{3, 13, 50} {
			decision := engine.Evaluate(product, atHoursBefore(hours))
			if decision.MatchedWindow == nil {
				t.Fatalf("price %v at %vh: expected a window match", price, hours)
			}
			if math.Abs(decision.RefundAmount+decision.CancellationFee-price) > epsilon {
				t.Errorf("price %v at %vh: refund %v + fee %v != price",
					price, hours, decision.RefundAmount, decision.CancellationFee)
			}
		}
	}
}

func TestEvaluateZeroPercentWindow(t *testing.T) {
	engine := NewEngine()
	policy := CancellationPolicy{
		CanCancel: true,
		Windows: []CancellationWindow{
			{HoursBeforeService: 0, RefundPercentage: 0, Description: "no refund inside 24 hours"},
			{HoursBeforeService: 24, RefundPercentage: 100, Description: "free cancellation"},
		},
	}
	product := loungeProduct(60.00, policy)

	decision := engine.Evaluate(product, atHoursBefore(5))
	if decision.PolicyName != LabelNoRefund {
		t.Errorf("label = %q, want %q", decision.PolicyName, LabelNoRefund)
	}
	if decision.MatchedWindow == nil {
		t.Error("a 0%% window is still a match, not an expiry")
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	engine := NewEngine()
	product := loungeProduct(45.00, tieredPolicy())
	at := atHoursBefore(10)

	first := engine.Evaluate(product, at)
	second := engine.Evaluate(product, at)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated evaluation differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestEvaluateDoesNotMutateProduct(t *testing.T) {
	engine := NewEngine()
	product := loungeProduct(45.00, tieredPolicy())
	windowsBefore := make([]CancellationWindow, len(product.CancellationPolicy.Windows))
	copy(windowsBefore, product.CancellationPolicy.Windows)

	engine.Evaluate(product, atHoursBefore(10))

	if !reflect.DeepEqual(product.CancellationPolicy.Windows, windowsBefore) {
		t.Error("evaluation reordered the product's stored windows")
	}
}

func TestEvaluateMonotonicRefund(t *testing.T) {
	engine := NewEngine()
	product := loungeProduct(100.00, tieredPolicy())

	// Moving closer to the service time must never increase the refund.
	previous := math.Inf(1)
	for _, hours := range []float64{72, 30, 24, 10, 4, 3, 1} {
		decision := engine.Evaluate(product, atHoursBefore(hours))
		if decision.RefundAmount > previous+epsilon {
			t.Errorf("refund increased to %v at %vh before service", decision.RefundAmount, hours)
		}
		previous = decision.RefundAmount
	}
}

func TestEvaluateUnknownProviderFallsThrough(t *testing.T) {
	engine := NewEngine()
	product := loungeProduct(45.00, tieredPolicy())
	product.Provider = Provider("newpartner")

	decision := engine.Evaluate(product, atHoursBefore(30))
	if decision.PolicyName != LabelFullRefund {
		t.Errorf("label = %q, want plain window matching for unknown providers", decision.PolicyName)
	}
}

func TestEvaluatePolicyActivationCondition(t *testing.T) {
	engine := NewEngine()

	// The condition is policy-declared, so it applies on any provider.
	policy := tieredPolicy()
	policy.CancelCondition = CancelOnlyIfNotActivated
	product := loungeProduct(45.00, policy)
	product.Metadata.IsActivated = true

	decision := engine.Evaluate(product, atHoursBefore(100))
	if decision.PolicyName != LabelNoRefundActivated {
		t.Errorf("label = %q, want %q", decision.PolicyName, LabelNoRefundActivated)
	}

	product.Metadata.IsActivated = false
	decision = engine.Evaluate(product, atHoursBefore(100))
	if decision.PolicyName != LabelFullRefund {
		t.Errorf("label = %q, want %q once not activated", decision.PolicyName, LabelFullRefund)
	}
}
