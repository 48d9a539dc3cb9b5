package analysis

import (
	"time"

	"github.com/credlens/credlens/internal/advising"
	"github.com/credlens/credlens/internal/report"
)

// Analysis is one persisted report analysis: the extracted fields and the
// score computed for an uploaded document.
type Analysis struct {
	ID            string        `json:"id"`
	Filename      string        `json:"filename"`
	ContentType   string        `json:"content_type"`
	Score         float64       `json:"score"`
	Fields        report.Fields `json:"fields"`
	Subscriptions []string      `json:"subscriptions"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Result is the full response for one analyze call. Advice is best-effort:
// when the advisor fails, AdviceError carries the failure and the rest of
// the result is still valid.
type Result struct {
	Analysis    *Analysis        `json:"analysis"`
	Advice      *advising.Advice `json:"advice,omitempty"`
	AdviceError string           `json:"advice_error,omitempty"`
}
