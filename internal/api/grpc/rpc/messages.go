package rpc

import "github.com/dtroode/sesn-compliance/internal/model"

// LatencyTrailer carries the operation latency in nanoseconds on failed calls.
const LatencyTrailer = "x-latency-ns"

type RegisterUserRequest struct {
	UserID  string          `json:"user_id,omitempty"`
	Name    string          `json:"name"`
	Contact string          `json:"contact"`
	Consent map[string]bool `json:"consent"`
	Payload []byte          `json:"payload,omitempty"`
}

type RegisterUserResponse struct {
	UserID    string `json:"user_id"`
	LatencyNs int64  `json:"latency_ns"`
}

type EraseUserRequest struct {
	UserID string `json:"user_id"`
}

type EraseUserResponse struct {
	LatencyNs int64 `json:"latency_ns"`
}

type AccessUserRequest struct {
	UserID string `json:"user_id"`
}

type AccessUserResponse struct {
	User      model.UserRecord `json:"user"`
	LatencyNs int64            `json:"latency_ns"`
}

type UpdateConsentRequest struct {
	UserID  string          `json:"user_id"`
	Consent map[string]bool `json:"consent"`
}

type UpdateConsentResponse struct {
	LatencyNs int64 `json:"latency_ns"`
}

// ConsentHistoryRequest asks for the ledger events of a user. With Verify set
// the server checks every event signature before answering.
type ConsentHistoryRequest struct {
	UserID string `json:"user_id"`
	Verify bool   `json:"verify,omitempty"`
}

type ConsentHistoryResponse struct {
	Events   []model.ConsentEvent `json:"events"`
	Verified int                  `json:"verified,omitempty"`
}
