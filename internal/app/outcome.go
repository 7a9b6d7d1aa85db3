package app

import "log"

// Outcome classifies how one analysis item ended.
type Outcome string

const (
	OutcomeOK      Outcome = "OK"
	OutcomeSkipped Outcome = "SKIPPED"
	OutcomeFailed  Outcome = "FAILED"
)

// ItemResult records the fate of one item within an analysis, for
// example a single prefix reconciliation or a single meter view.
type ItemResult struct {
	Analysis string
	Item     string
	Outcome  Outcome
	Err      error
}

// Summary accumulates item results across a run.
type Summary struct {
	items []ItemResult
}

// Add appends one item result.
func (s *Summary) Add(r ItemResult) {
	s.items = append(s.items, r)
}

// Items returns the recorded results in order.
func (s *Summary) Items() []ItemResult {
	return s.items
}

// Counts tallies results per outcome.
func (s *Summary) Counts() (ok, skipped, failed int) {
	for _, r := range s.items {
		switch r.Outcome {
		case OutcomeOK:
			ok++
		case OutcomeSkipped:
			skipped++
		case OutcomeFailed:
			failed++
		}
	}
	return ok, skipped, failed
}

// Log writes one line per non-OK item plus a closing tally.
func (s *Summary) Log(logger *log.Logger) {
	for _, r := range s.items {
		if r.Outcome == OutcomeOK {
			continue
		}
		if r.Err != nil {
			logger.Printf("item outcome analysis=%s item=%s outcome=%s err=%v", r.Analysis, r.Item, r.Outcome, r.Err)
			continue
		}
		logger.Printf("item outcome analysis=%s item=%s outcome=%s", r.Analysis, r.Item, r.Outcome)
	}
	ok, skipped, failed := s.Counts()
	logger.Printf("run summary ok=%d skipped=%d failed=%d", ok, skipped, failed)
}
