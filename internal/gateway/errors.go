package gateway

import "errors"

// ErrContractViolation matches every ContractViolation via errors.Is.
var ErrContractViolation = errors.New("contract violation")

// Reasons carried by ContractViolation.
const (
	ReasonStatusNot200  = "status is not 200"
	ReasonStatusNot2xx  = "status is not 2xx"
	ReasonBodyNotObject = "body must be object type"
	ReasonNoAccessToken = "accessToken does not exist, or is not string"
	ReasonInvalidLogout = "Invalid logout attempt"
)

// ContractViolation reports a response whose status or body shape does not
// match what the endpoint promises.
type ContractViolation struct {
	Reason string
}

func (e *ContractViolation) Error() string {
	return e.Reason
}

func (e *ContractViolation) Is(target error) bool {
	return target == ErrContractViolation
}

func violation(reason string) error {
	return &ContractViolation{Reason: reason}
}
