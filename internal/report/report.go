package report

// Fields holds the scalar values recovered from a credit report's text.
// Pointer members distinguish "no pattern matched" from a genuine zero;
// plain int members are backed by a counting heuristic and always carry a
// value, possibly zero.
type Fields struct {
	CreditUtilizationPercent *float64 `json:"credit_utilization_percent"`
	OpenAccounts             int      `json:"number_of_open_accounts"`
	ClosedAccounts           int      `json:"number_of_closed_accounts"`
	AccountAgeYears          *float64 `json:"account_age_years"`
	CreditCardCount          int      `json:"credit_card_count"`
	LoanCount                int      `json:"loan_count"`
	RecentInquiries          int      `json:"recent_inquiries"`
	LatePayments             *int     `json:"late_payments"`
	MissedPayments           *int     `json:"missed_payments"`
	DPDGroups                [][]int  `json:"dpd_groups,omitempty"`
}

// MissedPaymentCount resolves the missed-payment figure used for scoring.
// An explicit missed-payment label wins, a late-payment label is the next
// best signal, and no mention at all means zero.
func (f Fields) MissedPaymentCount() int {
	if f.MissedPayments != nil {
		return *f.MissedPayments
	}
	if f.LatePayments != nil {
		return *f.LatePayments
	}
	return 0
}

// Record is one row of externally supplied tabular data. Amount and Date
// stay opaque strings at this layer.
type Record struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
}

// TabularData is the classified output of parsing one tabular input.
type TabularData struct {
	RentPayments         []Record
	RecurringObligations []Record
	Subscriptions        []string
}

// Summary is the consolidated view of a report and its supplementary
// records, the artifact serialized back to callers.
type Summary struct {
	Fields
	RentPayments         []Record `json:"rent_payments"`
	RecurringObligations []Record `json:"recurring_obligations"`
	ActiveSubscriptions  []string `json:"active_subscriptions"`
}
