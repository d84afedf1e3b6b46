package models

// APIResponse standard response envelope
type APIResponse struct {
	Status  string      `json:"status"` // success, error
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CollectionResponse list response for capped collections
type CollectionResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    interface{}    `json:"data"`
	Meta    CollectionMeta `json:"meta"`
}

// CollectionMeta capacity info shown next to admin lists
type CollectionMeta struct {
	Count          int `json:"count"`
	Limit          int `json:"limit"`
	RemainingSlots int `json:"remaining_slots"`
}

// NewCollectionMeta builds meta for a collection holding count of limit items.
func NewCollectionMeta(count, limit int) CollectionMeta {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return CollectionMeta{Count: count, Limit: limit, RemainingSlots: remaining}
}

// SuccessResponse builds a success envelope
func SuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

// ErrorResponse builds an error envelope
func ErrorResponse(message string, err error) APIResponse {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	return APIResponse{
		Status:  "error",
		Message: message,
		Error:   errMsg,
	}
}
