package errors

// ServiceError is the JSON body of every non-2xx response.
type ServiceError struct {
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}
