// Package difficulty computes the proof of work target each block must
// declare and checks block hashes against it.
package difficulty

import (
	"fmt"
	"math/big"
	"time"

	"github.com/Umbracoindevs/UMBRA-v2/chain"
	"github.com/Umbracoindevs/UMBRA-v2/chaincfg"
	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// Retargeter computes required targets for one network.
type Retargeter struct {
	powLimit       *big.Int
	powLimitBits   uint32
	timespan       int64 // seconds
	spacing        int64 // seconds
	interval       int32
	adjustFactor   int64
	allowMinDiff   bool
	skipPowCheck   bool
	minDiffTrigger int64 // seconds
}

// New returns a Retargeter for params.
func New(params *chaincfg.Params) *Retargeter {
	spacing := int64(params.TargetSpacing() / time.Second)
	return &Retargeter{
		powLimit:       params.PowLimit(),
		powLimitBits:   params.PowLimitBits(),
		timespan:       int64(params.TargetTimespan() / time.Second),
		spacing:        spacing,
		interval:       params.RetargetInterval(),
		adjustFactor:   params.RetargetAdjustmentFactor(),
		allowMinDiff:   params.AllowMinDifficultyBlocks(),
		skipPowCheck:   params.SkipProofOfWorkCheck(),
		minDiffTrigger: 2 * spacing,
	}
}

// Interval returns the number of blocks between retargets, which is also the
// number of headers NextTarget needs beyond the parent's.
func (r *Retargeter) Interval() int32 {
	return r.interval
}

// NextTarget returns the compact target required of the block at height.
//
// prev holds the headers preceding the candidate, oldest first and ending
// with its parent; blockTime is the candidate's own timestamp.  On a retarget
// height the last Interval()+1 headers are used: the time the previous
// interval took is clamped to [timespan/factor, timespan*factor] and scales
// the parent's target.  With timespan equal to spacing every block retargets
// from the solve time of its parent alone.
//
// On networks allowing minimum difficulty blocks, a block mined more than
// twice the spacing after its parent may declare the proof of work limit.
// Between retargets the blocks after it return to the target of the last
// block that was not mined under that exception.
//
// The result depends only on its inputs and never exceeds the network's
// proof of work limit.
func (r *Retargeter) NextTarget(height int32, prev []wire.BlockHeader,
	blockTime time.Time) uint32 {

	if len(prev) == 0 {
		return r.powLimitBits
	}
	parent := prev[len(prev)-1]

	if r.allowMinDiff &&
		blockTime.Unix()-parent.Timestamp.Unix() > r.minDiffTrigger {

		return r.powLimitBits
	}

	if height%r.interval != 0 {
		if r.allowMinDiff {
			return r.lastNonMinDifficulty(height, prev)
		}
		return parent.Bits
	}

	// Not enough history for a full interval, keep the parent's target.
	need := int(r.interval) + 1
	if len(prev) < need {
		return parent.Bits
	}
	first := prev[len(prev)-need]

	actual := parent.Timestamp.Unix() - first.Timestamp.Unix()
	minTimespan := r.timespan / r.adjustFactor
	maxTimespan := r.timespan * r.adjustFactor
	if actual < minTimespan {
		actual = minTimespan
	} else if actual > maxTimespan {
		actual = maxTimespan
	}

	target := blockchain.CompactToBig(parent.Bits)
	target.Mul(target, big.NewInt(actual))
	target.Div(target, big.NewInt(r.timespan))

	if target.Cmp(r.powLimit) > 0 {
		target.Set(r.powLimit)
	}
	return blockchain.BigToCompact(target)
}

// lastNonMinDifficulty walks back from the parent of the block at height to
// the most recent block that either sits on a retarget height or declares
// more than the minimum difficulty, and returns its target.
func (r *Retargeter) lastNonMinDifficulty(height int32,
	prev []wire.BlockHeader) uint32 {

	h := height - 1
	for i := len(prev) - 1; i >= 0; i-- {
		if h%r.interval == 0 || prev[i].Bits != r.powLimitBits {
			return prev[i].Bits
		}
		h--
	}
	return r.powLimitBits
}

// CheckProofOfWork checks that bits is a sane target and, unless the network
// skips the check, that hash meets it.
func (r *Retargeter) CheckProofOfWork(hash *chainhash.Hash, bits uint32) error {
	target := blockchain.CompactToBig(bits)
	if target.Sign() <= 0 {
		return chain.RuleErrorf(chain.ErrBadProofOfWork,
			"block target difficulty of %064x is too low", target)
	}
	if target.Cmp(r.powLimit) > 0 {
		return chain.RuleErrorf(chain.ErrBadProofOfWork,
			"block target difficulty of %064x is higher than max of %064x",
			target, r.powLimit)
	}
	if r.skipPowCheck {
		return nil
	}

	hashNum := blockchain.HashToBig(hash)
	if hashNum.Cmp(target) > 0 {
		return chain.RuleErrorf(chain.ErrBadProofOfWork,
			"block hash of %064x is higher than expected max of %064x",
			hashNum, target)
	}
	return nil
}

// CheckDeclaredTarget compares the target a block declares with the
// required one.
func (r *Retargeter) CheckDeclaredTarget(declared, required uint32) error {
	if declared != required {
		return chain.RuleError{
			ErrorCode: chain.ErrBadProofOfWork,
			Description: fmt.Sprintf("block difficulty of %08x is not "+
				"the expected value of %08x", declared, required),
		}
	}
	return nil
}

// Work returns the work represented by a compact target.
func Work(bits uint32) *big.Int {
	return blockchain.CalcWork(bits)
}
