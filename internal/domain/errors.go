package domain

import (
	"errors"
	"fmt"
)

// Failure taxonomy shared by services and handlers. Services return these
// (wrapped as needed); the HTTP layer maps them to status codes.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrAlreadyProcessed = errors.New("already processed")
	ErrConflict         = errors.New("conflict")
)

// Rules a borrow request can be refused on.
const (
	RuleOutstandingFines  = "outstanding fines"
	RuleLoanLimitReached  = "loan limit reached"
	RuleNoCopiesAvailable = "no copies available"
)

// PolicyViolationError is a business-rule refusal. The Rule names the
// specific check that failed so clients can react to it.
type PolicyViolationError struct {
	Rule   string
	Detail string
}

func (e *PolicyViolationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("policy violation: %s (%s)", e.Rule, e.Detail)
	}
	return fmt.Sprintf("policy violation: %s", e.Rule)
}

func NewPolicyViolation(rule, detail string) error {
	return &PolicyViolationError{Rule: rule, Detail: detail}
}

// IsPolicyViolation reports whether err is a business-rule refusal.
func IsPolicyViolation(err error) bool {
	var pv *PolicyViolationError
	return errors.As(err, &pv)
}
