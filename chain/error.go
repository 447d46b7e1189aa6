package chain

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of consensus rule violation.
type ErrorCode int

// These constants are used to identify a specific RuleError.
const (
	// ErrCheckpointMismatch indicates a block at a checkpointed height
	// does not have the checkpoint hash.
	ErrCheckpointMismatch ErrorCode = iota

	// ErrBelowLastCheckpoint indicates a block forks the chain before the
	// last checkpoint the node has passed.
	ErrBelowLastCheckpoint

	// ErrReorgTooDeep indicates a competing chain would disconnect more
	// blocks than the maximum reorganization depth.
	ErrReorgTooDeep

	// ErrObsoleteVersion indicates a block version that a supermajority
	// of recent blocks has moved past.
	ErrObsoleteVersion

	// ErrBadProofOfWork indicates the declared target is not the required
	// one, or the block hash does not meet it.
	ErrBadProofOfWork

	// ErrZerocoinNotYetActive indicates a zerocoin spend before zerocoin
	// activation.
	ErrZerocoinNotYetActive

	// ErrSerialOutOfRange indicates a zerocoin serial outside the valid
	// serial range of its denomination.
	ErrSerialOutOfRange

	// ErrDoubleSpentSerial indicates a serial that was already spent, on
	// the chain or earlier in the same block.
	ErrDoubleSpentSerial

	// ErrAccumulatorProofInvalid indicates a membership proof that does
	// not verify against the accumulator it references, or a block that
	// lacks the accumulator checkpoint an enforced upgrade requires.
	ErrAccumulatorProofInvalid

	// ErrTooManySpends indicates a transaction with more zerocoin spends
	// than allowed.
	ErrTooManySpends

	// ErrMintFeeTooLow indicates zerocoin mints paying less than the
	// minimum mint fee.
	ErrMintFeeTooLow

	// ErrMasternodePaymentMissing indicates a block without the required
	// masternode payment.
	ErrMasternodePaymentMissing

	// ErrHeaderVersionTooLow indicates a header version below the
	// zerocoin header version once zerocoin is active.
	ErrHeaderVersionTooLow

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrCheckpointMismatch:       "ErrCheckpointMismatch",
	ErrBelowLastCheckpoint:      "ErrBelowLastCheckpoint",
	ErrReorgTooDeep:             "ErrReorgTooDeep",
	ErrObsoleteVersion:          "ErrObsoleteVersion",
	ErrBadProofOfWork:           "ErrBadProofOfWork",
	ErrZerocoinNotYetActive:     "ErrZerocoinNotYetActive",
	ErrSerialOutOfRange:         "ErrSerialOutOfRange",
	ErrDoubleSpentSerial:        "ErrDoubleSpentSerial",
	ErrAccumulatorProofInvalid:  "ErrAccumulatorProofInvalid",
	ErrTooManySpends:            "ErrTooManySpends",
	ErrMintFeeTooLow:            "ErrMintFeeTooLow",
	ErrMasternodePaymentMissing: "ErrMasternodePaymentMissing",
	ErrHeaderVersionTooLow:      "ErrHeaderVersionTooLow",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// RuleError identifies a rule violation.  It is used to indicate that
// processing of a block or transaction failed due to one of the many
// validation rules.  The caller can use type assertions to determine if a
// failure was specifically due to a rule violation and access the ErrorCode
// field to ascertain the specific reason for the rule violation.
type RuleError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.Description
}

// NewRuleError creates a RuleError given a set of arguments.
func NewRuleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}

// RuleErrorf creates a RuleError with a formatted description.
func RuleErrorf(c ErrorCode, format string, args ...interface{}) RuleError {
	return NewRuleError(c, fmt.Sprintf(format, args...))
}

// IsErrorCode reports whether err is a RuleError with the passed code.
func IsErrorCode(err error, c ErrorCode) bool {
	var rerr RuleError
	return errors.As(err, &rerr) && rerr.ErrorCode == c
}

// AsRuleError returns the RuleError wrapped in err, if any.
func AsRuleError(err error) (RuleError, bool) {
	var rerr RuleError
	ok := errors.As(err, &rerr)
	return rerr, ok
}
