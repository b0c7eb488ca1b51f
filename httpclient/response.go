package httpclient

// ErrorResponse is the failure envelope the backend sends with non-2xx
// statuses. Both fields are optional.
type ErrorResponse struct {
	Message  string `json:"message"`
	Internal string `json:"internal,omitempty"`
}
