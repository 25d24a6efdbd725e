package types

// ErrorBody is the wire shape of every failed request.
type ErrorBody struct {
	Error string `json:"error"`
}

// StatusBody is the wire shape of acknowledgement-only responses.
type StatusBody struct {
	Status string `json:"status"`
}

// HealthBody is returned by the unauthenticated health endpoint.
type HealthBody struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
