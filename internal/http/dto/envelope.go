package dto

// Envelope is the uniform response wrapper. Failures carry only success
// and message; successful payloads embed their data fields alongside.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}
