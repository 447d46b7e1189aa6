package zerocoin

import (
	"math/big"

	"github.com/Umbracoindevs/UMBRA-v2/chain"
)

// CryptoAccumulator is the accumulator arithmetic the policy calls into.
// Implementations must be pure and safe for concurrent use; proofs of one
// transaction are verified on several goroutines at once.
type CryptoAccumulator interface {
	// Verify reports whether proof shows that the coin revealing serial
	// is a member of the accumulator value for denom.
	Verify(accumulator *big.Int, proof []byte, serial *big.Int,
		denom chain.Denomination) bool

	// Recompute accumulates mints from scratch and returns the value.
	Recompute(denom chain.Denomination, mints []*chain.ZerocoinMint) *big.Int

	// SerialUpperBound returns the exclusive upper bound of valid serials
	// for denom.  Serials must also be positive.
	SerialUpperBound(denom chain.Denomination) *big.Int
}

// AccumulatorStore gives access to accumulator checkpoints maintained by the
// block pipeline.
type AccumulatorStore interface {
	// Checkpoint returns the accumulator value for denom as of height along
	// with the number of mints it accumulates.  Only mints that had
	// reached the required confirmations at height are included.
	Checkpoint(denom chain.Denomination, height int32) (*big.Int, int, error)

	// MintsUpTo returns every mint of denom included at or below height,
	// regardless of confirmations.
	MintsUpTo(denom chain.Denomination, height int32) ([]*chain.ZerocoinMint, error)
}

// SerialStore is the append-only set of spent serials.  The policy only
// queries it; serials are recorded by the block pipeline once a block is
// part of the best chain.
type SerialStore interface {
	Contains(serial *big.Int) (bool, error)
}

// CheckpointCover reports whether a height lies in checkpointed history.
// *checkpoints.Verifier implements it.
type CheckpointCover interface {
	Covers(height int32) bool
}
