package consensus

import (
	"math/big"
	"time"

	"github.com/Umbracoindevs/UMBRA-v2/chain"
	"github.com/btcsuite/btcd/blockchain"
)

// Candidate is a block offered for validation together with where it sits
// relative to the best chain.
type Candidate struct {
	Block *chain.Block

	// ChainWork is the cumulative work of the candidate's chain through
	// the block.
	ChainWork *big.Int

	// ForkHeight is the height of the last block the candidate's chain
	// shares with the best chain.  A block extending the best tip has
	// ForkHeight equal to the tip height.
	ForkHeight int32

	// FirstSeen is when the block was first received.
	FirstSeen time.Time
}

// less orders candidates from worst to best: less work first, then later
// arrival, then higher hash.
func less(a, b *Candidate) bool {
	if c := workOf(a).Cmp(workOf(b)); c != 0 {
		return c < 0
	}
	if !a.FirstSeen.Equal(b.FirstSeen) {
		return a.FirstSeen.After(b.FirstSeen)
	}
	return blockchain.HashToBig(a.Block.Hash()).Cmp(
		blockchain.HashToBig(b.Block.Hash())) > 0
}

func workOf(c *Candidate) *big.Int {
	if c.ChainWork == nil {
		return new(big.Int)
	}
	return c.ChainWork
}

// SelectCandidate picks the block to connect among competing candidates:
// the most cumulative work, then the earliest seen, then the lowest hash.
// The order is total, so every node given the same candidates picks the
// same one.  It returns nil when cands holds no candidate.
func SelectCandidate(cands []*Candidate) *Candidate {
	var best *Candidate
	for _, c := range cands {
		if c == nil || c.Block == nil {
			continue
		}
		if best == nil || less(best, c) {
			best = c
		}
	}
	return best
}
