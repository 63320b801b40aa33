package policy

import "time"

// OverrideFunc is a provider-specific veto checked before window matching. It
// returns a non-nil decision to block cancellation immediately, or nil to fall
// through to the policy's windows. hoursBeforeService may be negative when the
// service time has already passed.
type OverrideFunc func(product Product, at time.Time, hoursBeforeService float64) *RefundDecision

// DispatchChecker reports whether a transfer vehicle has already been sent out
// for pickup. The default implementation is a time-proximity heuristic; a real
// dispatch feed can be plugged in via WithDispatchChecker without changing the
// engine's control flow.
type DispatchChecker interface {
	IsDispatched(product Product, at time.Time) bool
}

// UsageChecker reports whether a lounge pass has already been redeemed. Like
// DispatchChecker, the default is a time-proximity stand-in for real provider
// state.
type UsageChecker interface {
	IsUsed(product Product, at time.Time) bool
}

// proximityDispatch treats a transfer as dispatched inside the final hour
// before pickup.
type proximityDispatch struct{}

func (proximityDispatch) IsDispatched(product Product, at time.Time) bool {
	return product.ServiceDateTime.Sub(at).Hours() < 1
}

// proximityUsage treats a lounge pass as used once the service time has
// passed.
type proximityUsage struct{}

func (proximityUsage) IsUsed(product Product, at time.Time) bool {
	return product.ServiceDateTime.Sub(at) < 0
}

// esimOverride blocks cancellation of eSIM products that have been activated,
// whose activation deadline has lapsed, or whose validity has already started.
func (e *Engine) esimOverride(product Product, at time.Time, hoursBeforeService float64) *RefundDecision {
	if product.Metadata.IsActivated {
		return rejection(product, LabelNoRefundActivated,
			"eSIM has already been activated and is no longer refundable")
	}
	if product.ActivationDeadline != nil && at.After(*product.ActivationDeadline) {
		return rejection(product, LabelNoRefundDeadlinePassed,
			"the activation deadline for this eSIM has passed")
	}
	if hoursBeforeService < 0 {
		return rejection(product, LabelNoRefundServicePassed,
			"the eSIM validity period has already started")
	}
	return nil
}

// transferOverride blocks cancellation of airport transfers once pickup has
// passed, is imminent, or the vehicle is already on its way.
func (e *Engine) transferOverride(product Product, at time.Time, hoursBeforeService float64) *RefundDecision {
	if hoursBeforeService < 0 {
		return rejection(product, LabelNoRefundServicePassed,
			"the scheduled pickup time has already passed")
	}
	if hoursBeforeService < 0.5 {
		return rejection(product, LabelNoRefundTooClose,
			"pickup is less than 30 minutes away and can no longer be cancelled")
	}
	if hoursBeforeService < 1 && e.dispatch.IsDispatched(product, at) {
		return rejection(product, LabelNoRefundVehicleDispatched,
			"the vehicle has already been dispatched for pickup")
	}
	return nil
}

// loungeOverride blocks cancellation of lounge access once the visit time has
// passed or a single-use pass has been redeemed.
func (e *Engine) loungeOverride(product Product, at time.Time, hoursBeforeService float64) *RefundDecision {
	if hoursBeforeService < 0 {
		return rejection(product, LabelNoRefundServicePassed,
			"the scheduled lounge visit time has already passed")
	}
	if product.Metadata.AccessType == AccessTypeSingleUse && e.usage.IsUsed(product, at) {
		return rejection(product, LabelNoRefundAlreadyUsed,
			"this single-use lounge pass has already been redeemed")
	}
	return nil
}
