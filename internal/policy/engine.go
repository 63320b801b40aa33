package policy

import "time"

// Engine evaluates cancellation requests against a product's refund schedule
// and provider override rules. It is a pure computation over its inputs: no
// I/O, no mutable state, safe for concurrent use from any number of callers.
type Engine struct {
	overrides map[Provider]OverrideFunc
	dispatch  DispatchChecker
	usage     UsageChecker
}

// Option customizes an Engine at construction time.
type Option func(*Engine)

// WithDispatchChecker replaces the time-proximity dispatch heuristic with a
// real dispatch state source.
func WithDispatchChecker(checker DispatchChecker) Option {
	return func(e *Engine) { e.dispatch = checker }
}

// WithUsageChecker replaces the time-proximity usage heuristic with a real
// redemption state source.
func WithUsageChecker(checker UsageChecker) Option {
	return func(e *Engine) { e.usage = checker }
}

// WithOverride registers or replaces the override rule for a provider. New
// providers can be added this way without touching the matching algorithm.
func WithOverride(provider Provider, fn OverrideFunc) Option {
	return func(e *Engine) { e.overrides[provider] = fn }
}

// NewEngine creates an engine with the built-in override rules for the three
// integrated providers.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		dispatch: proximityDispatch{},
		usage:    proximityUsage{},
	}
	e.overrides = map[Provider]OverrideFunc{
		ProviderAiralo:     e.esimOverride,
		ProviderMozio:      e.transferOverride,
		ProviderDragonpass: e.loungeOverride,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate computes the refund decision for cancelling the product at the
// given moment. A zero `at` means wall-clock now; passing an explicit time
// makes the evaluation deterministic for testing. The product must be fully
// populated; that is a precondition the caller enforces, not a runtime error
// path — Evaluate never fails for well-formed input.
//
// Checks run in order: the policy's can-cancel flag, the policy-declared
// activation condition, the provider override rule, then window matching.
func (e *Engine) Evaluate(product Product, at time.Time) RefundDecision {
	if at.IsZero() {
		at = time.Now()
	}

	// Negative when the service time has already passed.
	hoursBeforeService := product.ServiceDateTime.Sub(at).Hours()

	if !product.CancellationPolicy.CanCancel {
		return *rejection(product, LabelNoCancellationAllowed,
			"this product does not allow cancellation")
	}

	if product.CancellationPolicy.CancelCondition == CancelOnlyIfNotActivated &&
		product.Metadata.IsActivated {
		return *rejection(product, LabelNoRefundActivated,
			"this product has already been activated and can no longer be cancelled")
	}

	// Provider overrides take precedence over window matching.
	if override, ok := e.overrides[product.Provider]; ok {
		if decision := override(product, at, hoursBeforeService); decision != nil {
			return *decision
		}
	}

	window, ok := selectWindow(product.CancellationPolicy.Windows, hoursBeforeService)
	if !ok {
		return *rejection(product, LabelNoRefundWindowExpired,
			"the cancellation window for this product has expired")
	}

	refundAmount := product.Price.Amount * window.RefundPercentage / 100

	return RefundDecision{
		RefundAmount:    refundAmount,
		CancellationFee: product.Price.Amount - refundAmount,
		PolicyName:      labelForPercentage(window.RefundPercentage),
		Message:         window.Description,
		MatchedWindow:   &window,
	}
}

// rejection builds a zero-refund, full-fee decision for the given label.
func rejection(product Product, label, message string) *RefundDecision {
	return &RefundDecision{
		RefundAmount:    0,
		CancellationFee: product.Price.Amount,
		PolicyName:      label,
		Message:         message,
	}
}
