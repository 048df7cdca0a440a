package handoffsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes carried in ErrorResponse.Error.
const (
	ErrorCodeInvalidRequest      = "invalid_request"
	ErrorCodeInvalidToken        = "invalid_token"
	ErrorCodeGenerationExhausted = "generation_exhausted"
	ErrorCodeForbidden           = "forbidden"
	ErrorCodeNotFound            = "not_found"
	ErrorCodeConflict            = "conflict"
	ErrorCodeAlreadyRedeemed     = "already_redeemed"
	ErrorCodeCredentialExpired   = "credential_expired"
	ErrorCodeInvalidHandoffToken = "invalid_handoff_token"
	ErrorCodeServerError         = "server_error"
	ErrorCodeRateLimitExceeded   = "rate_limit_exceeded"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("%d %s", e.StatusCode, e.Code)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Description)
}

// parseErrorResponse turns an error body into *APIError, falling back to the
// status text when the body is not an ErrorResponse.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
