package dto

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// ValidationErrorResponse lists failed fields by their JSON name.
type ValidationErrorResponse struct {
	Error            bool              `json:"error"`
	Message          string            `json:"message"`
	ValidationErrors map[string]string `json:"validationErrors"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp"`
	DB          string `json:"db"`
	Redis       string `json:"redis"`
	Connections int    `json:"websocket_connections"`
}
