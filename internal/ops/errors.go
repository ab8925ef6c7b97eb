package ops

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why an operation failed, so pages can choose the right
// affordance (plain retry, credential re-prompt, quiet dismissal).
type ErrorKind string

const (
	// ErrTransport is a network or connectivity failure reaching a
	// collaborator.
	ErrTransport ErrorKind = "transport"
	// ErrQuotaOrBilling means the provider rejected the call for
	// credential, billing or project-restriction reasons.
	ErrQuotaOrBilling ErrorKind = "quota_or_billing"
	// ErrInvalidResult means the provider reported success but returned no
	// usable payload.
	ErrInvalidResult ErrorKind = "invalid_result"
	// ErrUserInputInvalid is a local validation failure; never sent to a
	// provider.
	ErrUserInputInvalid ErrorKind = "user_input_invalid"
	// ErrCancelled marks a deliberate cancellation. Not a true failure and
	// must not be surfaced as an alarming error.
	ErrCancelled ErrorKind = "cancelled"
)

// OpError is a classified operation failure.
type OpError struct {
	Kind    ErrorKind
	Message string
}

func (e *OpError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ErrEmptyResult is returned by request functions when the provider replied
// with success but no usable payload; it classifies as ErrInvalidResult.
var ErrEmptyResult = errors.New("provider returned no usable result")

// quotaSignatures are provider error substrings observed to indicate a
// credential/billing/project restriction rather than a transient transport
// problem. Substring sniffing is fragile and provider-specific; structured
// error codes from the collaborator would be the hardened replacement.
var quotaSignatures = []string{
	"requested entity was not found",
	"not found",
	"rpc failed",
	"500",
	"xhr error",
	"quota",
	"billing",
	"permission_denied",
}

// Classify maps an arbitrary request error to an ErrorKind.
func Classify(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		return opErr.Kind
	}
	if errors.Is(err, context.Canceled) {
		return ErrCancelled
	}
	if errors.Is(err, ErrEmptyResult) {
		return ErrInvalidResult
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range quotaSignatures {
		if strings.Contains(msg, sig) {
			return ErrQuotaOrBilling
		}
	}
	return ErrTransport
}
