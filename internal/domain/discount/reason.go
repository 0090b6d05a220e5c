package discount

type Reason string

const (
	ReasonNotYetActive         Reason = "not_yet_active"
	ReasonExpired              Reason = "expired"
	ReasonInactive             Reason = "inactive"
	ReasonNotApplicable        Reason = "not_applicable"
	ReasonMinOrderNotMet       Reason = "min_order_not_met"
	ReasonUsageLimitReached    Reason = "usage_limit_reached"
	ReasonGrantExpired         Reason = "grant_expired"
	ReasonCustomerLimitReached Reason = "customer_limit_reached"
)

var messages = map[Reason]string{
	ReasonNotYetActive:         "This discount is not active yet.",
	ReasonExpired:              "This discount has expired.",
	ReasonInactive:             "This discount is not active.",
	ReasonNotApplicable:        "This discount does not apply to the selected service or barber.",
	ReasonMinOrderNotMet:       "The order amount does not reach the minimum required for this discount.",
	ReasonUsageLimitReached:    "This discount has reached its usage limit.",
	ReasonGrantExpired:         "Your access to this discount has expired.",
	ReasonCustomerLimitReached: "You have already used this discount the maximum number of times.",
}

func (r Reason) Message() string {
	return messages[r]
}

// QuotaScope returns "global" or "customer" for quota reasons and "" otherwise.
func (r Reason) QuotaScope() string {
	switch r {
	case ReasonUsageLimitReached:
		return "global"
	case ReasonCustomerLimitReached:
		return "customer"
	}
	return ""
}
