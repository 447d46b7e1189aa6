package chaincfg

import (
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ModifiableParams builds unit test parameters with individual values
// changed.  It exists for test harnesses only.  Production code receives
// *Params, which has no setters, so a ModifiableParams can never be mutated
// behind the back of a running engine: Params returns a snapshot.
type ModifiableParams struct {
	p *Params
}

// NewModifiableParams returns a builder seeded with UnitTestParams.
func NewModifiableParams() *ModifiableParams {
	return &ModifiableParams{p: UnitTestParams()}
}

// Params returns a copy of the parameters built so far.
func (m *ModifiableParams) Params() *Params {
	return m.p.clone()
}

func (m *ModifiableParams) SetSubsidyHalvingInterval(n int32) *ModifiableParams {
	m.p.subsidyHalvingInterval = n
	return m
}

func (m *ModifiableParams) SetEnforceBlockUpgradeMajority(n int) *ModifiableParams {
	m.p.enforceBlockUpgradeMajority = n
	return m
}

func (m *ModifiableParams) SetRejectBlockOutdatedMajority(n int) *ModifiableParams {
	m.p.rejectBlockOutdatedMajority = n
	return m
}

func (m *ModifiableParams) SetToCheckBlockUpgradeMajority(n int) *ModifiableParams {
	m.p.toCheckBlockUpgradeMajority = n
	return m
}

func (m *ModifiableParams) SetDefaultConsistencyChecks(b bool) *ModifiableParams {
	m.p.defaultConsistencyChecks = b
	return m
}

func (m *ModifiableParams) SetAllowMinDifficultyBlocks(b bool) *ModifiableParams {
	m.p.allowMinDifficultyBlocks = b
	return m
}

func (m *ModifiableParams) SetSkipProofOfWorkCheck(b bool) *ModifiableParams {
	m.p.skipProofOfWorkCheck = b
	return m
}

// The setters below have no counterpart on the original unit test network
// but let engine tests move zerocoin and checkpoint windows into reach.

func (m *ModifiableParams) SetCheckpoints(cps []Checkpoint) *ModifiableParams {
	m.p.checkpoints.Checkpoints = CheckpointData{Checkpoints: cps}.clone().Checkpoints
	return m
}

func (m *ModifiableParams) SetGenesisHash(h *chainhash.Hash) *ModifiableParams {
	if h == nil {
		m.p.genesisHash = nil
		return m
	}
	c := *h
	m.p.genesisHash = &c
	return m
}

func (m *ModifiableParams) SetMaxReorganizationDepth(n int32) *ModifiableParams {
	m.p.maxReorganizationDepth = n
	return m
}

func (m *ModifiableParams) SetLastPOWBlock(h int32) *ModifiableParams {
	m.p.lastPOWBlock = h
	return m
}

func (m *ModifiableParams) SetZerocoinStart(h int32, t time.Time) *ModifiableParams {
	m.p.zerocoinStartHeight = h
	m.p.zerocoinStartTime = t
	return m
}

func (m *ModifiableParams) SetAccumulatorStartHeight(h int32) *ModifiableParams {
	m.p.accumulatorStartHeight = h
	return m
}

func (m *ModifiableParams) SetBlockEnforceSerialRange(h int32) *ModifiableParams {
	m.p.blockEnforceSerialRange = h
	return m
}

func (m *ModifiableParams) SetBlockRecalculateAccumulators(h OptionalHeight) *ModifiableParams {
	m.p.blockRecalculateAccumulators = h
	return m
}

func (m *ModifiableParams) SetFraudulentRange(first, lastGood OptionalHeight) *ModifiableParams {
	m.p.blockFirstFraudulent = first
	m.p.blockLastGoodCheckpoint = lastGood
	return m
}

func (m *ModifiableParams) SetMaxZerocoinSpendsPerTransaction(n int) *ModifiableParams {
	m.p.maxZerocoinSpendsPerTransaction = n
	return m
}

func (m *ModifiableParams) SetStartMasternodePayments(t time.Time) *ModifiableParams {
	m.p.startMasternodePayments = t
	return m
}

func (m *ModifiableParams) SetTargetSpacing(spacing, timespan time.Duration) *ModifiableParams {
	m.p.targetSpacing = spacing
	m.p.targetTimespan = timespan
	return m
}
