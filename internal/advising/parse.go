package advising

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseAdviceJSON parses the JSON response from an LLM provider.
func parseAdviceJSON(text string) (*Advice, error) {
	text = strings.TrimSpace(text)

	// Remove markdown code blocks if present
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	// Find the JSON object boundaries - look for first { and last }
	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	endIdx := strings.LastIndex(text, "}")
	if endIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("invalid JSON object in response")
	}

	text = text[startIdx : endIdx+1]

	var advice Advice
	if err := json.Unmarshal([]byte(text), &advice); err != nil {
		return nil, fmt.Errorf("unmarshaling json: %w", err)
	}

	advice.Summary = strings.TrimSpace(advice.Summary)
	if advice.Summary == "" {
		advice.Summary = "No summary provided"
	}

	// Arrays are always present on the wire contract; normalize omissions
	if advice.ActionSteps == nil {
		advice.ActionSteps = []string{}
	}
	if advice.NegativeItemPlans == nil {
		advice.NegativeItemPlans = []string{}
	}
	if advice.Roadmap90Days == nil {
		advice.Roadmap90Days = []string{}
	}
	if advice.FAQ == nil {
		advice.FAQ = []string{}
	}

	return &advice, nil
}
