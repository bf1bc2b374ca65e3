package dto

// --- Limit Exceeded Error Types ---

// LimitExceededError is a custom error that carries usage details
type LimitExceededError struct {
	LimitType string `json:"limit_type"`
	Limit     int    `json:"limit"`
	Used      int    `json:"used"`
}

func (e *LimitExceededError) Error() string {
	return "plan usage limit exceeded"
}

// LimitExceededData is the data payload for 429 responses
type LimitExceededData struct {
	LimitType         string `json:"limit_type"`
	Limit             int    `json:"limit"`
	Used              int    `json:"used"`
	ShowUpgradePrompt bool   `json:"show_upgrade_prompt"`
}

// LimitExceededResponse is the full 429 response structure
type LimitExceededResponse struct {
	Success   bool              `json:"success"`
	Code      int               `json:"code"`
	Message   string            `json:"message"`
	ErrorType string            `json:"error_type"`
	Data      LimitExceededData `json:"data"`
}
