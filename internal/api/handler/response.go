package handler

// apiResponse is the envelope for every auth endpoint.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(message string, data any) apiResponse {
	return apiResponse{Success: true, Message: message, Data: data}
}
