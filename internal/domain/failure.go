package domain

// TestFailure is one failing tuple (or a case that could not be built)
// as persisted and shown in the failures viewer
type TestFailure struct {
	CaseName string `json:"case_name"`
	Source   string `json:"source"`
	Index    int    `json:"index"` // tuple index, -1 for construction errors
	Input    string `json:"input"`
	Status   Status `json:"status"`
	Message  string `json:"message"`
	Resolved bool   `json:"resolved,omitempty"` // Track if the failure is marked as resolved
}
