// Package zerocoin decides which zerocoin rules apply at a height and checks
// the zerocoin spends and mints of candidate blocks against them.
package zerocoin

import (
	"errors"
	"fmt"
	"time"

	"github.com/Umbracoindevs/UMBRA-v2/chaincfg"
	"github.com/btcsuite/btcutil"
)

// State is the zerocoin regime in force at a height.
type State int

const (
	// Inactive is before the activation height or time.  No spend is
	// valid.
	Inactive State = iota

	// Active validates spends fully but does not bound serials.
	Active

	// SerialRangeEnforced additionally requires serials to lie in the
	// denomination's range.
	SerialRangeEnforced

	// RecalculationRequired verifies proofs against accumulators rebuilt
	// from mints instead of stored checkpoints.
	RecalculationRequired

	// FraudExceptionZone covers the heights known to contain forged
	// serials.  Violations in checkpointed blocks are flagged, not
	// rejected.
	FraudExceptionZone
)

var stateStrings = map[State]string{
	Inactive:              "inactive",
	Active:                "active",
	SerialRangeEnforced:   "serial range enforced",
	RecalculationRequired: "recalculation required",
	FraudExceptionZone:    "fraud exception zone",
}

func (s State) String() string {
	if str, ok := stateStrings[s]; ok {
		return str
	}
	return fmt.Sprintf("unknown state %d", int(s))
}

// ErrMissingCapability is returned by New when a required capability is nil.
var ErrMissingCapability = errors.New("zerocoin capability missing")

// Config holds the collaborators of a Policy.
type Config struct {
	Params       *chaincfg.Params
	Accumulator  CryptoAccumulator
	Accumulators AccumulatorStore
	Serials      SerialStore

	// Checkpoints may be nil, in which case no height counts as
	// checkpointed.
	Checkpoints CheckpointCover
}

// Policy applies the zerocoin rules of one network.  It holds no mutable
// state and is safe for concurrent use.
type Policy struct {
	startHeight        int32
	startTime          time.Time
	accStartHeight     int32
	enforceSerialRange int32
	recalculate        chaincfg.OptionalHeight
	firstFraudulent    chaincfg.OptionalHeight
	lastGood           chaincfg.OptionalHeight
	maxSpends          int
	minMintFee         btcutil.Amount
	requiredAcc        int
	mintConfirmations  int32
	headerVersion      int32

	acc         CryptoAccumulator
	accStore    AccumulatorStore
	serials     SerialStore
	checkpoints CheckpointCover
}

// New returns the policy for cfg.Params.
func New(cfg *Config) (*Policy, error) {
	switch {
	case cfg.Params == nil:
		return nil, fmt.Errorf("%w: params", ErrMissingCapability)
	case cfg.Accumulator == nil:
		return nil, fmt.Errorf("%w: crypto accumulator", ErrMissingCapability)
	case cfg.Accumulators == nil:
		return nil, fmt.Errorf("%w: accumulator store", ErrMissingCapability)
	case cfg.Serials == nil:
		return nil, fmt.Errorf("%w: serial store", ErrMissingCapability)
	}

	p := cfg.Params
	return &Policy{
		startHeight:        p.ZerocoinStartHeight(),
		startTime:          p.ZerocoinStartTime(),
		accStartHeight:     p.AccumulatorStartHeight(),
		enforceSerialRange: p.BlockEnforceSerialRange(),
		recalculate:        p.BlockRecalculateAccumulators(),
		firstFraudulent:    p.BlockFirstFraudulent(),
		lastGood:           p.BlockLastGoodCheckpoint(),
		maxSpends:          p.MaxZerocoinSpendsPerTransaction(),
		minMintFee:         p.MinZerocoinMintFee(),
		requiredAcc:        p.RequiredAccumulation(),
		mintConfirmations:  p.MintRequiredConfirmations(),
		headerVersion:      p.ZerocoinHeaderVersion(),
		acc:                cfg.Accumulator,
		accStore:           cfg.Accumulators,
		serials:            cfg.Serials,
		checkpoints:        cfg.Checkpoints,
	}, nil
}

// StateAt returns the regime for a block at height with the passed
// timestamp.  When several regimes overlap the fraud zone wins over
// recalculation, which wins over serial range enforcement.
func (p *Policy) StateAt(height int32, blockTime time.Time) State {
	switch {
	case height < p.startHeight || blockTime.Before(p.startTime):
		return Inactive
	case p.inFraudZone(height):
		return FraudExceptionZone
	case p.recalculate.Reached(height):
		return RecalculationRequired
	case height >= p.enforceSerialRange:
		return SerialRangeEnforced
	default:
		return Active
	}
}

// inFraudZone reports whether height is in [firstFraudulent, lastGood].  An
// unset bound or an inverted range is an empty zone.
func (p *Policy) inFraudZone(height int32) bool {
	first, ok := p.firstFraudulent.Get()
	if !ok {
		return false
	}
	last, ok := p.lastGood.Get()
	if !ok {
		return false
	}
	return first <= height && height <= last
}

// tolerant reports whether rule violations at height are flagged rather than
// rejected.
func (p *Policy) tolerant(state State, height int32) bool {
	return state == FraudExceptionZone && p.checkpoints != nil &&
		p.checkpoints.Covers(height)
}

// HeaderVersion returns the minimum block version once zerocoin is active.
func (p *Policy) HeaderVersion() int32 {
	return p.headerVersion
}
