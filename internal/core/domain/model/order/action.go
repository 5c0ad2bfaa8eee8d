package order

// Action is a request to move an order along its lifecycle.
type Action int

const (
	// BeginPricing hands a new inquiry to pricing. Admin or job driven.
	BeginPricing Action = iota + 1

	// CompletePricing records the Pricing Service result. Admin or job driven.
	CompletePricing

	// ConfirmQuote is the client accepting the priced quote.
	ConfirmQuote

	// ModifyQuote is the client submitting an edited item list for re-pricing.
	ModifyQuote

	// AdvanceFulfillment moves a confirmed order one fulfillment step forward.
	AdvanceFulfillment

	// ConfirmDelivery is the client confirming receipt.
	ConfirmDelivery

	// Archive closes a delivered order.
	Archive
)

var actionNames = map[Action]string{
	BeginPricing:       "BeginPricing",
	CompletePricing:    "CompletePricing",
	ConfirmQuote:       "ConfirmQuote",
	ModifyQuote:        "ModifyQuote",
	AdvanceFulfillment: "AdvanceFulfillment",
	ConfirmDelivery:    "ConfirmDelivery",
	Archive:            "Archive",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "UnknownAction"
}
