package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var rentKeywords = []string{"rent", "house rent", "flat rent", "apartment rent"}

var recurringKeywords = []string{
	"emi", "insurance", "loan", "credit card", "sip", "mutual fund", "subscription",
}

// ParseRecords reads one CSV input with header-declared columns
// "Description", "Amount" and "Date" (a missing column yields empty strings,
// never an error) and classifies each row. Classification is independent per
// class: a single row may land in several lists, and a row matching nothing
// is dropped from all of them.
func ParseRecords(r io.Reader) (*TabularData, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &TabularData{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	data := &TabularData{}
	seenSubs := make(map[string]bool)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

		desc := strings.ToLower(columnValue(row, cols, "description"))
		rec := Record{
			Description: desc,
			Amount:      columnValue(row, cols, "amount"),
			Date:        columnValue(row, cols, "date"),
		}

		if containsAny(desc, rentKeywords) {
			data.RentPayments = append(data.RentPayments, rec)
		}
		for _, service := range matchCatalog(desc) {
			if !seenSubs[service] {
				seenSubs[service] = true
				data.Subscriptions = append(data.Subscriptions, service)
			}
		}
		if containsAny(desc, recurringKeywords) {
			data.RecurringObligations = append(data.RecurringObligations, rec)
		}
	}

	return data, nil
}

func columnValue(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
