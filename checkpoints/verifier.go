package checkpoints

import (
	"math/big"
	"sort"

	"github.com/Umbracoindevs/UMBRA-v2/chain"
	"github.com/Umbracoindevs/UMBRA-v2/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Position places a candidate block relative to the current best chain.
type Position struct {
	// TipHeight is the height of the best chain tip.
	TipHeight int32

	// ForkHeight is the height of the last block the candidate's chain
	// shares with the best chain.  A candidate extending the tip has
	// ForkHeight == TipHeight.
	ForkHeight int32
}

// ReorgDepth returns the number of best chain blocks the candidate's chain
// would disconnect.
func (p Position) ReorgDepth() int32 {
	if p.ForkHeight >= p.TipHeight {
		return 0
	}
	return p.TipHeight - p.ForkHeight
}

// Verifier checks blocks against the checkpoint table of a network and
// enforces the maximum reorganization depth.
type Verifier struct {
	checkpoints    []chaincfg.Checkpoint
	byHeight       map[int32]*chainhash.Hash
	data           chaincfg.CheckpointData
	maxReorg       int32
	spacing        int64
	skipReorgCheck bool
}

// New returns a Verifier for the checkpoint table of params.  The params
// must have passed Validate, so duplicate heights carry equal hashes and are
// folded into one entry here.
func New(params *chaincfg.Params, skipReorgCheck bool) *Verifier {
	data := params.CheckpointData()

	v := &Verifier{
		byHeight:       make(map[int32]*chainhash.Hash, len(data.Checkpoints)),
		data:           data,
		maxReorg:       params.MaxReorganizationDepth(),
		spacing:        int64(params.TargetSpacing().Seconds()),
		skipReorgCheck: skipReorgCheck,
	}
	for _, cp := range data.Checkpoints {
		if _, ok := v.byHeight[cp.Height]; ok {
			continue
		}
		v.byHeight[cp.Height] = cp.Hash
		v.checkpoints = append(v.checkpoints, cp)
	}
	if last, ok := v.LastCheckpoint(); ok {
		log.Debugf("Loaded %d %s checkpoints, last at height %d",
			len(v.checkpoints), params.Name(), last.Height)
	}
	return v
}

// Verify checks a block at height with the passed hash.  chainWork is the
// cumulative work of the candidate's chain through the block and bestWork
// that of the current best chain.
//
// A block at a checkpointed height must carry the checkpoint hash.  A block
// below the last checkpoint the best chain has passed must not come from a
// chain that forked before that checkpoint.  A chain with more work than the
// best chain may not disconnect more than the maximum reorganization depth
// unless the verifier was built to skip that check.
func (v *Verifier) Verify(height int32, hash *chainhash.Hash, chainWork,
	bestWork *big.Int, pos Position) error {

	cpHash, isCheckpoint := v.byHeight[height]
	if isCheckpoint && !cpHash.IsEqual(hash) {
		return chain.RuleErrorf(chain.ErrCheckpointMismatch,
			"block at height %d does not match checkpoint hash - "+
				"got %v, expected %v", height, hash, cpHash)
	}

	last, ok := v.LastCheckpointAtOrBelow(pos.TipHeight)
	if ok && !isCheckpoint && height <= last.Height &&
		pos.ForkHeight < last.Height {

		return chain.RuleErrorf(chain.ErrBelowLastCheckpoint,
			"block at height %d forks the chain at height %d before "+
				"the last checkpoint at height %d", height,
			pos.ForkHeight, last.Height)
	}

	if v.skipReorgCheck || chainWork == nil || bestWork == nil ||
		chainWork.Cmp(bestWork) <= 0 {

		return nil
	}
	if depth := pos.ReorgDepth(); depth > v.maxReorg {
		return chain.RuleErrorf(chain.ErrReorgTooDeep,
			"chain forking at height %d would disconnect %d blocks "+
				"from tip %d, more than the maximum reorganization "+
				"depth of %d", pos.ForkHeight, depth, pos.TipHeight,
			v.maxReorg)
	}
	return nil
}

// IsCheckpoint reports whether height has a checkpoint.
func (v *Verifier) IsCheckpoint(height int32) bool {
	_, ok := v.byHeight[height]
	return ok
}

// LastCheckpoint returns the highest checkpoint of the table.
func (v *Verifier) LastCheckpoint() (chaincfg.Checkpoint, bool) {
	if len(v.checkpoints) == 0 {
		return chaincfg.Checkpoint{}, false
	}
	return v.checkpoints[len(v.checkpoints)-1], true
}

// LastCheckpointAtOrBelow returns the highest checkpoint at or below height.
func (v *Verifier) LastCheckpointAtOrBelow(height int32) (chaincfg.Checkpoint, bool) {
	i := sort.Search(len(v.checkpoints), func(i int) bool {
		return v.checkpoints[i].Height > height
	})
	if i == 0 {
		return chaincfg.Checkpoint{}, false
	}
	return v.checkpoints[i-1], true
}

// Covers reports whether height is at or below the last checkpoint, that
// is, part of the history the checkpoint table fixes.
func (v *Verifier) Covers(height int32) bool {
	last, ok := v.LastCheckpoint()
	return ok && height <= last.Height
}
