package domain

import (
	"context"
	"errors"
	"fmt"
)

// Error kinds every core operation fails with. Callers classify with errors.Is.
var (
	// ErrInvalidIdentifier: the wallet identifier is not a stake key, address, handle,
	// or decodable address bytes.
	ErrInvalidIdentifier = errors.New("invalid wallet identifier")
	// ErrNotFound: a collaborator reports the referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMalformedID: a collaborator rejected the identifier syntax.
	ErrMalformedID = errors.New("malformed identifier")
	// ErrPolicyNotRanked: the rank provider has no dataset for the policy.
	ErrPolicyNotRanked = errors.New("policy not ranked")
	// ErrUpstream: transport or server failure of a collaborator.
	ErrUpstream = errors.New("upstream failure")
)

// Kind returns a stable name for the error's kind, used in logs and metric labels.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidIdentifier):
		return "invalid_identifier"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrMalformedID):
		return "malformed_id"
	case errors.Is(err, ErrPolicyNotRanked):
		return "policy_not_ranked"
	case errors.Is(err, ErrUpstream):
		return "upstream_failure"
	default:
		return "internal"
	}
}

// Interrupted classifies a cancelled or timed-out request as an upstream failure,
// keeping the context error in the chain. Other errors are returned unchanged.
func Interrupted(err error) error {
	if err == nil || errors.Is(err, ErrUpstream) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return err
}
