package chaincfg

import (
	"fmt"
)

// Validate checks the internal consistency of the parameters.  A node must
// refuse to start with parameters that fail validation, since running with
// an inconsistent rule set would split it from the network.
func (p *Params) Validate() error {
	if p.powLimit == nil || p.powLimit.Sign() <= 0 {
		return errInvalidParams(p.net, "proof of work limit must be positive")
	}
	if p.targetSpacing <= 0 {
		return errInvalidParams(p.net, "target spacing %v must be positive",
			p.targetSpacing)
	}
	if p.targetTimespan < p.targetSpacing ||
		p.targetTimespan%p.targetSpacing != 0 {

		return errInvalidParams(p.net, "target timespan %v is not a "+
			"multiple of target spacing %v", p.targetTimespan,
			p.targetSpacing)
	}
	if p.retargetAdjustmentFactor < 1 {
		return errInvalidParams(p.net, "retarget adjustment factor %d "+
			"must be at least 1", p.retargetAdjustmentFactor)
	}
	if p.maxReorganizationDepth <= 0 {
		return errInvalidParams(p.net, "max reorganization depth %d "+
			"must be positive", p.maxReorganizationDepth)
	}

	if err := p.validateMajority(); err != nil {
		return err
	}
	if err := p.validateCheckpoints(); err != nil {
		return err
	}
	if err := p.validateZerocoin(); err != nil {
		return err
	}

	if p.budgetFeeConfirmations <= 0 {
		return errInvalidParams(p.net, "budget fee confirmations %d must "+
			"be positive", p.budgetFeeConfirmations)
	}
	return nil
}

func (p *Params) validateMajority() error {
	enforce := p.enforceBlockUpgradeMajority
	reject := p.rejectBlockOutdatedMajority
	window := p.toCheckBlockUpgradeMajority

	if enforce <= 0 || !(enforce < reject && reject <= window) {
		return errInvalidParams(p.net, "version majority thresholds "+
			"must satisfy 0 < enforce(%d) < reject(%d) <= window(%d)",
			enforce, reject, window)
	}
	return nil
}

func (p *Params) validateCheckpoints() error {
	cps := p.checkpoints.Checkpoints
	for i, cp := range cps {
		if cp.Hash == nil {
			return errInvalidParams(p.net, "checkpoint at height %d "+
				"has no hash", cp.Height)
		}
		if cp.Height < 0 {
			return errInvalidParams(p.net, "checkpoint height %d is "+
				"negative", cp.Height)
		}
		if i == 0 {
			continue
		}

		prev := cps[i-1]
		switch {
		case cp.Height < prev.Height:
			return errInvalidParams(p.net, "checkpoint at height %d "+
				"is out of order", cp.Height)

		case cp.Height == prev.Height && !cp.Hash.IsEqual(prev.Hash):
			return errInvalidParams(p.net, "checkpoint at height %d "+
				"has conflicting hashes %v and %v", cp.Height,
				prev.Hash, cp.Hash)
		}
	}

	if p.genesisHash == nil || len(cps) == 0 || cps[0].Height != 0 {
		return nil
	}
	if !cps[0].Hash.IsEqual(p.genesisHash) {
		return fmt.Errorf("%w: %s: checkpoint %v, genesis %v",
			ErrGenesisMismatch, p.net, cps[0].Hash, p.genesisHash)
	}
	return nil
}

func (p *Params) validateZerocoin() error {
	if p.zerocoinModulus == nil || p.zerocoinModulus.Sign() <= 0 {
		return errInvalidParams(p.net, "zerocoin modulus must be positive")
	}
	if p.maxZerocoinSpendsPerTransaction <= 0 {
		return errInvalidParams(p.net, "max zerocoin spends per "+
			"transaction %d must be positive",
			p.maxZerocoinSpendsPerTransaction)
	}
	if p.minZerocoinMintFee < 0 {
		return errInvalidParams(p.net, "negative zerocoin mint fee %v",
			p.minZerocoinMintFee)
	}
	if p.mintRequiredConfirmations < 0 || p.requiredAccumulation < 0 {
		return errInvalidParams(p.net, "negative mint confirmation or "+
			"accumulation requirement")
	}
	if p.zerocoinStartHeight < 0 || p.accumulatorStartHeight < 0 ||
		p.blockEnforceSerialRange < 0 {

		return errInvalidParams(p.net, "negative zerocoin activation height")
	}

	if h, ok := p.blockRecalculateAccumulators.Get(); ok &&
		h < p.accumulatorStartHeight {

		return errInvalidParams(p.net, "accumulator recalculation height "+
			"%d is below accumulator start height %d", h,
			p.accumulatorStartHeight)
	}

	// A range with first after last good is empty and disables the
	// exception zone.
	firstSet := p.blockFirstFraudulent.IsSet()
	lastSet := p.blockLastGoodCheckpoint.IsSet()
	if firstSet != lastSet {
		return errInvalidParams(p.net, "fraudulent block range must set "+
			"both bounds or neither (first %v, last good %v)",
			p.blockFirstFraudulent, p.blockLastGoodCheckpoint)
	}
	return nil
}
