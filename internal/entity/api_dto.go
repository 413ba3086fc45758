package entity

// ExtractRequest asks for the slots found in a single utterance
type ExtractRequest struct {
	Text string `json:"text"`
}

// ExtractResponse is the found-map of one utterance
type ExtractResponse struct {
	Answers  Answers   `json:"answers"`
	Location *Location `json:"location,omitempty"`
}

// MergeRequest folds an utterance into a caller-owned answer state
type MergeRequest struct {
	Answers      Answers  `json:"answers"`
	Utterance    string   `json:"utterance"`
	PriorFilters *Filters `json:"prior_filters,omitempty"`
	// Slot names the question the utterance replies to, e.g. "type"
	Slot string `json:"slot,omitempty"`
}

// MergeResponse carries the updated state and what is still unanswered
type MergeResponse struct {
	Answers        Answers  `json:"answers"`
	Filters        Filters  `json:"filters"`
	Missing        []string `json:"missing"`
	MissingFilters []string `json:"missing_filters"`
	Summary        string   `json:"summary"`
	Changes        string   `json:"changes,omitempty"`
}

// ErrorResponse is the JSON error body of the HTTP API
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ExportFile is a rendered bookings export
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int
}
