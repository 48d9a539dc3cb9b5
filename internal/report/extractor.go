package report

import (
	"regexp"
	"strconv"
	"strings"
)

// numberRule is one candidate pattern for a numeric field. Rules are tried
// in slice order and the first one whose pattern matches wins outright; the
// scale factor converts the captured value into the field's canonical unit.
type numberRule struct {
	re    *regexp.Regexp
	scale float64
}

var utilizationRules = []numberRule{
	{re: regexp.MustCompile(`(?i)Credit Utilization\s*:\s*([\d,.]+)%`), scale: 1},
	{re: regexp.MustCompile(`(?i)Utilization\s*:\s*([\d,.]+)%`), scale: 1},
}

// Account age is reported in years or, on older report layouts, in months.
var accountAgeRules = []numberRule{
	{re: regexp.MustCompile(`(?i)Account Age\s*:\s*([\d,.]+)\s*yrs`), scale: 1},
	{re: regexp.MustCompile(`(?i)Account Age\s*:\s*([\d,.]+)\s*months`), scale: 1.0 / 12},
}

var (
	openAccountsLabelRe   = regexp.MustCompile(`(?i)Open Accounts\s*:\s*(\d+)`)
	openStatusRe          = regexp.MustCompile(`(?i)Status\s*:\s*Open`)
	closedStatusRe        = regexp.MustCompile(`(?i)Status\s*:\s*Closed`)
	creditCardLabelRe     = regexp.MustCompile(`(?i)Credit Card\s*:\s*(\d+)`)
	creditCardTermRe      = regexp.MustCompile(`(?i)Credit Card`)
	loanLabelRe           = regexp.MustCompile(`(?i)Loan\s*:\s*(\d+)`)
	loanTermRe            = regexp.MustCompile(`(?i)Loan`)
	enquiryDateRe         = regexp.MustCompile(`(?i)Enquiry Date`)
	latePaymentsLabelRe   = regexp.MustCompile(`(?i)Late Payments?\s*:\s*(\d+)`)
	missedPaymentsLabelRe = regexp.MustCompile(`(?i)Missed Payments?\s*:\s*(\d+)`)
	dpdRunRe              = regexp.MustCompile(`(?i)DPD\s*:\s*([0-9\s]+)`)
)

// ExtractFields recovers the typed scalar fields from raw report text. A
// field whose patterns all miss stays absent; a field whose label matched
// but whose number is malformed also stays absent, without disturbing any
// sibling field.
func ExtractFields(text string) Fields {
	var f Fields

	f.CreditUtilizationPercent = firstNumber(utilizationRules, text)
	f.AccountAgeYears = firstNumber(accountAgeRules, text)

	f.OpenAccounts = labeledOrCounted(openAccountsLabelRe, openStatusRe, text)
	f.ClosedAccounts = len(closedStatusRe.FindAllString(text, -1))
	f.CreditCardCount = labeledOrCounted(creditCardLabelRe, creditCardTermRe, text)
	f.LoanCount = labeledOrCounted(loanLabelRe, loanTermRe, text)
	f.RecentInquiries = len(enquiryDateRe.FindAllString(text, -1))

	f.LatePayments = labeledInt(latePaymentsLabelRe, text)
	f.MissedPayments = labeledInt(missedPaymentsLabelRe, text)
	f.DPDGroups = extractDPDGroups(text)

	return f
}

// firstNumber evaluates a rule cascade first-match-wins. A matched label
// with an unparseable number is a hard miss for the field, not a reason to
// fall through to lower-precedence rules.
func firstNumber(rules []numberRule, text string) *float64 {
	for _, r := range rules {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := parseNumber(m[1])
		if err != nil {
			return nil
		}
		v *= r.scale
		return &v
	}
	return nil
}

// labeledOrCounted prefers an explicit "<label>: N" value and otherwise
// counts occurrences of the fallback marker. The heuristic count, possibly
// zero, is authoritative when no label is present.
func labeledOrCounted(label, fallback *regexp.Regexp, text string) int {
	if m := label.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return len(fallback.FindAllString(text, -1))
}

func labeledInt(label *regexp.Regexp, text string) *int {
	m := label.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// extractDPDGroups turns each labeled days-past-due run into one group of
// integers. Non-numeric tokens inside a run are dropped, not errors.
func extractDPDGroups(text string) [][]int {
	var groups [][]int
	for _, m := range dpdRunRe.FindAllStringSubmatch(text, -1) {
		var months []int
		for _, tok := range strings.Fields(m[1]) {
			n, err := strconv.Atoi(tok)
			if err != nil {
				continue
			}
			months = append(months, n)
		}
		if len(months) > 0 {
			groups = append(groups, months)
		}
	}
	return groups
}

// parseNumber parses a numeric token that may carry thousands separators.
func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
