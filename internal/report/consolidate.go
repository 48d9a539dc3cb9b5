package report

import "sort"

// Consolidate merges text-origin fields and subscriptions with any number of
// parsed tabular inputs. Extracted fields pass through unchanged; rent and
// recurring-obligation lists come exclusively from the tabular side; the
// subscription union collapses duplicates from both origins and is sorted so
// that the same inputs always serialize identically.
func Consolidate(fields Fields, textSubs []string, tabular ...*TabularData) Summary {
	s := Summary{
		Fields:               fields,
		RentPayments:         []Record{},
		RecurringObligations: []Record{},
	}

	subs := make(map[string]bool, len(textSubs))
	for _, name := range textSubs {
		subs[name] = true
	}
	for _, t := range tabular {
		if t == nil {
			continue
		}
		s.RentPayments = append(s.RentPayments, t.RentPayments...)
		s.RecurringObligations = append(s.RecurringObligations, t.RecurringObligations...)
		for _, name := range t.Subscriptions {
			subs[name] = true
		}
	}

	s.ActiveSubscriptions = make([]string, 0, len(subs))
	for name := range subs {
		s.ActiveSubscriptions = append(s.ActiveSubscriptions, name)
	}
	sort.Strings(s.ActiveSubscriptions)

	return s
}
