package advising

// advicePrompt is the shared prompt used by all LLM providers for analyzing
// credit reports.
const advicePrompt = `You are a financial analyst specializing in credit reports. Analyze the given credit report and produce a detailed, personalized assessment:

1. A concise executive summary of the person's credit health and risks.
2. At least five actionable steps to improve their credit, referencing specific numbers from the report.
3. A step-by-step plan for each negative item or risk in the report.
4. A 90-day improvement roadmap with monthly milestones.
5. Tailored advice for maximizing approval odds for loans, credit cards, or mortgages.
6. A short myth-busting FAQ about credit scores.

Return ONLY valid JSON in this exact format:
{
  "summary": "...",
  "action_steps": ["..."],
  "negative_item_plans": ["..."],
  "roadmap_90_days": ["..."],
  "approval_advice": "...",
  "faq": ["..."]
}

Important:
- Every field must be present
- Arrays may be empty but must not be omitted
- Do not include any text before or after the JSON
- Do not use markdown code blocks`

// Advice is the structured report returned by an LLM provider.
type Advice struct {
	Summary           string   `json:"summary"`
	ActionSteps       []string `json:"action_steps"`
	NegativeItemPlans []string `json:"negative_item_plans"`
	Roadmap90Days     []string `json:"roadmap_90_days"`
	ApprovalAdvice    string   `json:"approval_advice"`
	FAQ               []string `json:"faq"`
}

// Advisor defines the interface for credit-report advice generation.
type Advisor interface {
	// Advise analyzes raw credit-report text and returns structured advice
	Advise(reportText string) (*Advice, error)
	// Close closes the advisor and releases resources
	Close() error
}
