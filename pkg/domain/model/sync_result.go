package model

// SyncResult reports the outcome of one reconciliation pass.
//
// Success is false only on a pass-level failure (source unreachable or
// misconfigured); row-level failures populate Errors without flipping it.
type SyncResult struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	Created        int      `json:"created"`
	Updated        int      `json:"updated"`
	TotalProcessed int      `json:"total_processed"`
	Errors         []string `json:"errors,omitempty"`
	Exported       int      `json:"total_exported,omitempty"`
}
