package checkpoints

import (
	"time"
)

// sigcheckVerificationFactor is how much more expensive a transaction past
// the last checkpoint is to verify than one before it, where signature checks
// are skipped.
const sigcheckVerificationFactor = 5.0

const secondsPerDay = 24 * 60 * 60

// GuessVerificationProgress estimates the fraction of the total verification
// work done once the chain holds chainTxCount transactions and its tip was
// mined at tipTime.  The estimate only informs the user and never affects
// validation.
func (v *Verifier) GuessVerificationProgress(chainTxCount int64, tipTime,
	now time.Time) float64 {

	var workBefore, workAfter float64

	lastTime := v.data.LastCheckpointTime
	lastTxs := v.data.TransactionsLastCheckpoint
	perDay := v.data.TransactionsPerDay

	if chainTxCount <= lastTxs {
		cheapBefore := float64(chainTxCount)
		cheapAfter := float64(lastTxs - chainTxCount)
		expensiveAfter := float64(now.Unix()-lastTime) / secondsPerDay * perDay
		workBefore = cheapBefore
		workAfter = cheapAfter + expensiveAfter*sigcheckVerificationFactor
	} else {
		cheapBefore := float64(lastTxs)
		expensiveBefore := float64(chainTxCount - lastTxs)
		expensiveAfter := float64(now.Unix()-tipTime.Unix()) / secondsPerDay * perDay
		workBefore = cheapBefore + expensiveBefore*sigcheckVerificationFactor
		workAfter = expensiveAfter * sigcheckVerificationFactor
	}

	if workAfter < 0 {
		workAfter = 0
	}
	if workBefore+workAfter == 0 {
		return 1
	}
	return workBefore / (workBefore + workAfter)
}

// EstimatedHeightRemaining estimates how many blocks a node with the passed
// tip still has to download.  It is the larger of the distance to the last
// checkpoint and the number of blocks expected to have been mined since the
// tip.
func (v *Verifier) EstimatedHeightRemaining(tipHeight int32, tipTime,
	now time.Time) int32 {

	var remaining int32
	if last, ok := v.LastCheckpoint(); ok && last.Height > tipHeight {
		remaining = last.Height - tipHeight
	}

	if v.spacing > 0 {
		elapsed := now.Unix() - tipTime.Unix()
		if byTime := int32(elapsed / v.spacing); byTime > remaining {
			remaining = byTime
		}
	}
	return remaining
}
