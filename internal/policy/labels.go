package policy

import "fmt"

// Policy labels identify which refund tier or rejection reason applied to an
// evaluation. Rejection labels are valid, successful outcomes that happen to
// yield a zero refund; callers must not treat them as errors.
const (
	LabelFullRefund                = "full_refund"
	LabelNoRefund                  = "no_refund"
	LabelNoCancellationAllowed     = "no_cancellation_allowed"
	LabelNoRefundWindowExpired     = "no_refund_window_expired"
	LabelNoRefundActivated         = "no_refund_activated"
	LabelNoRefundDeadlinePassed    = "no_refund_deadline_passed"
	LabelNoRefundServicePassed     = "no_refund_service_passed"
	LabelNoRefundTooClose          = "no_refund_too_close"
	LabelNoRefundVehicleDispatched = "no_refund_vehicle_dispatched"
	LabelNoRefundAlreadyUsed       = "no_refund_already_used"
)

// labelForPercentage derives the tier label for a matched window.
func labelForPercentage(pct float64) string {
	switch pct {
	case 100:
		return LabelFullRefund
	case 0:
		return LabelNoRefund
	default:
		return fmt.Sprintf("%g_percent_refund", pct)
	}
}
