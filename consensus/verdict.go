package consensus

import (
	"fmt"

	"github.com/Umbracoindevs/UMBRA-v2/chain"
	"github.com/Umbracoindevs/UMBRA-v2/zerocoin"
)

// Verdict is the outcome of validating a candidate block.
type Verdict struct {
	// Accepted is set when the block passed every check.
	Accepted bool

	// Reject is the first rule the block broke.  It is nil when Accepted.
	Reject *chain.RuleError

	// Flags are zerocoin violations tolerated in checkpointed history.
	Flags []chain.RuleError

	// ZerocoinState is the zerocoin regime at the block's height.
	ZerocoinState zerocoin.State

	// RecalculateAccumulators tells the accumulator cache to rebuild its
	// checkpoints for this height instead of trusting them.
	RecalculateAccumulators bool

	// EnforcedVersion is the block version whose rules a supermajority
	// enforces on this block, zero if none.
	EnforcedVersion int32
}

func rejected(rerr chain.RuleError) *Verdict {
	return &Verdict{Reject: &rerr}
}

// Err returns the rejection reason as an error, nil for an accepted block.
func (v *Verdict) Err() error {
	if v.Accepted || v.Reject == nil {
		return nil
	}
	return *v.Reject
}

func (v *Verdict) String() string {
	if !v.Accepted {
		if v.Reject == nil {
			return "rejected"
		}
		return fmt.Sprintf("rejected (%v): %v", v.Reject.ErrorCode,
			v.Reject.Description)
	}
	s := fmt.Sprintf("accepted, zerocoin %v", v.ZerocoinState)
	if v.EnforcedVersion != 0 {
		s += fmt.Sprintf(", enforcing version %d", v.EnforcedVersion)
	}
	if len(v.Flags) > 0 {
		s += fmt.Sprintf(", %d flagged", len(v.Flags))
	}
	return s
}
