package order

// StepState is the display state of one progress step.
type StepState string

const (
	StepCompleted StepState = "completed"
	StepCurrent   StepState = "current"
	StepUpcoming  StepState = "upcoming"
)

// ProgressStep is one of the four client-facing milestones of an order.
type ProgressStep struct {
	Label string
	State StepState
}

// ProgressOf maps a status onto the steps shown to the client:
// "Request Sent", "Pricing", "Review Quote" and "Delivery".
func ProgressOf(s Status) []ProgressStep {
	pricing := StepCompleted
	if s == NewInquiry || s == PendingPricing {
		pricing = StepCurrent
	}

	review := StepUpcoming
	switch {
	case s == WaitingClientApproval:
		review = StepCurrent
	case s >= OrderConfirmed && s <= Closed:
		review = StepCompleted
	}

	delivery := StepUpcoming
	switch s {
	case InTransit:
		delivery = StepCurrent
	case Delivered, Closed:
		delivery = StepCompleted
	}

	return []ProgressStep{
		{Label: "Request Sent", State: StepCompleted},
		{Label: "Pricing", State: pricing},
		{Label: "Review Quote", State: review},
		{Label: "Delivery", State: delivery},
	}
}

var statusMessages = map[Status]string{
	NewInquiry:            "We have received your request and are calculating the best prices.",
	PendingPricing:        "Our team is reviewing stock and pricing.",
	WaitingClientApproval: "Pricing is ready. Please review the quote to proceed.",
	OrderConfirmed:        "Thank you! Your order is being prepared for dispatch.",
	InTransit:             "Your order is on the way.",
	Delivered:             "Order delivered successfully.",
}

// StatusMessage returns the note shown to the client under the progress steps. Statuses
// without a note return "".
func StatusMessage(s Status) string {
	return statusMessages[s]
}
