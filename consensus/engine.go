// Package consensus runs the consensus rules of a network over candidate
// blocks and keeps the state those rules depend on in step with the best
// chain.
package consensus

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/Umbracoindevs/UMBRA-v2/chain"
	"github.com/Umbracoindevs/UMBRA-v2/chaincfg"
	"github.com/Umbracoindevs/UMBRA-v2/checkpoints"
	"github.com/Umbracoindevs/UMBRA-v2/difficulty"
	"github.com/Umbracoindevs/UMBRA-v2/majority"
	"github.com/Umbracoindevs/UMBRA-v2/masternode"
	"github.com/Umbracoindevs/UMBRA-v2/zerocoin"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/davecgh/go-spew/spew"
)

var (
	// ErrOrphanBlock is returned when the chain view does not know the
	// parent of a candidate.
	ErrOrphanBlock = errors.New("parent block unknown")

	// ErrNotNextBlock is returned when connecting or disconnecting a block
	// that is not adjacent to the engine's tip.
	ErrNotNextBlock = errors.New("block does not follow the tip")
)

// ChainView is the engine's read access to the block index kept by the
// block pipeline.
type ChainView interface {
	// BestHeight returns the height of the best chain tip, -1 for an
	// empty chain.
	BestHeight() int32

	// BestWork returns the cumulative work of the best chain.
	BestWork() *big.Int

	// Ancestors returns up to n headers of the chain ending with the
	// block identified by hash, oldest first.  The last entry is that
	// block.  It returns fewer headers near genesis and none for an
	// unknown hash.
	Ancestors(hash *chainhash.Hash, n int) ([]wire.BlockHeader, error)
}

// Config holds the network and collaborators of an Engine.
type Config struct {
	Params *chaincfg.Params

	Accumulator  zerocoin.CryptoAccumulator
	Accumulators zerocoin.AccumulatorStore
	Serials      zerocoin.SerialStore

	// Payees selects masternode payees.  Nil disables the payment check.
	Payees masternode.PayeeSource

	// SkipReorgCheck lifts the maximum reorganization depth.
	SkipReorgCheck bool

	// TipHeight is the height of the best chain when the engine starts,
	// -1 for an empty chain.
	TipHeight int32

	// RecentVersions are the header versions of the best chain blocks up
	// to TipHeight, oldest first.  Only the most recent ones are kept.
	RecentVersions []int32
}

// Engine validates candidate blocks.  ValidateBlock may be called from
// several goroutines at once; ConnectBlock and DisconnectBlock are
// serialized.
type Engine struct {
	params      *chaincfg.Params
	checkpoints *checkpoints.Verifier
	retargeter  *difficulty.Retargeter
	zerocoin    *zerocoin.Policy
	payments    *masternode.Scheduler

	lastPOWBlock      int32
	consistencyChecks bool

	mtx       sync.RWMutex
	tipHeight int32
	tracker   *majority.Tracker

	// history holds the versions of the most recent best chain blocks,
	// oldest first: the tracker window plus enough to undo a maximum
	// depth reorganization.
	history    []int32
	historyCap int
}

// New validates cfg.Params and builds an engine for it.  An invalid
// parameter set is a fatal error.
func New(cfg *Config) (*Engine, error) {
	params := cfg.Params
	if params == nil {
		return nil, fmt.Errorf("%w: no parameters", chaincfg.ErrInvalidParams)
	}
	if err := params.Validate(); err != nil {
		log.Criticalf("Refusing to start with %s network parameters: %v",
			params.Name(), err)
		return nil, err
	}

	verifier := checkpoints.New(params, cfg.SkipReorgCheck)
	zc, err := zerocoin.New(&zerocoin.Config{
		Params:       params,
		Accumulator:  cfg.Accumulator,
		Accumulators: cfg.Accumulators,
		Serials:      cfg.Serials,
		Checkpoints:  verifier,
	})
	if err != nil {
		return nil, err
	}

	e := &Engine{
		params:            params,
		checkpoints:       verifier,
		retargeter:        difficulty.New(params),
		zerocoin:          zc,
		payments:          masternode.New(params, cfg.Payees),
		lastPOWBlock:      params.LastPOWBlock(),
		consistencyChecks: params.DefaultConsistencyChecks(),
		tipHeight:         cfg.TipHeight,
		historyCap: params.ToCheckBlockUpgradeMajority() +
			int(params.MaxReorganizationDepth()),
	}
	e.history = append(e.history, cfg.RecentVersions...)
	e.trimHistory()
	e.tracker = majority.New(params, e.history)

	log.Infof("Consensus engine for %s network ready at height %d "+
		"(%d recent versions)", params.Name(), e.tipHeight, len(e.history))
	return e, nil
}

// Params returns the network parameters of the engine.
func (e *Engine) Params() *chaincfg.Params {
	return e.params
}

// GenesisHash returns the hash the genesis block must carry: the network's
// fixed genesis hash, or the hash of its genesis header when it fixes none.
func (e *Engine) GenesisHash() *chainhash.Hash {
	if hash := e.params.GenesisHash(); hash != nil {
		return hash
	}
	header := e.params.GenesisHeader()
	hash := header.BlockHash()
	return &hash
}

// TipHeight returns the height of the last connected block.
func (e *Engine) TipHeight() int32 {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	return e.tipHeight
}

// FinalizationConfirmationsRequired returns the confirmations a budget
// finalization needs on this network.
func (e *Engine) FinalizationConfirmationsRequired() int {
	return e.payments.FinalizationConfirmationsRequired()
}

// ZerocoinState returns the zerocoin regime for a block at height mined at
// blockTime.
func (e *Engine) ZerocoinState(height int32, blockTime time.Time) zerocoin.State {
	return e.zerocoin.StateAt(height, blockTime)
}

// ValidateBlock runs the consensus rules over a candidate in order:
// checkpoints, proof of work, version majority, zerocoin, masternode
// payment.  The first broken rule ends validation with a rejected Verdict.
// A non-nil error means the block could not be judged, because a
// collaborator failed or ctx was cancelled.
func (e *Engine) ValidateBlock(ctx context.Context, c *Candidate,
	view ChainView) (*Verdict, error) {

	b := c.Block
	v, err := e.validate(ctx, c, view)
	if err != nil {
		return nil, err
	}
	if !v.Accepted {
		log.Debugf("Rejected block %v: %v", b, v.Reject)
		header := b.Header()
		log.Tracef("Rejected header: %v", newLogClosure(func() string {
			return spew.Sdump(&header)
		}))
		return v, nil
	}
	log.Tracef("Block %v %v", b, v)
	return v, nil
}

// verdictFor turns err into a rejection when it is a rule violation.
func verdictFor(err error) (*Verdict, error) {
	if rerr, ok := chain.AsRuleError(err); ok {
		return rejected(rerr), nil
	}
	return nil, err
}

func (e *Engine) validate(ctx context.Context, c *Candidate,
	view ChainView) (*Verdict, error) {

	b := c.Block
	height := b.Height()
	header := b.Header()

	if height == 0 {
		return e.validateGenesis(b)
	}

	pos := checkpoints.Position{
		TipHeight:  view.BestHeight(),
		ForkHeight: c.ForkHeight,
	}
	err := e.checkpoints.Verify(height, b.Hash(), c.ChainWork,
		view.BestWork(), pos)
	if err != nil {
		return verdictFor(err)
	}

	// The version window of the candidate's own chain is the engine's
	// when it extends the tip the engine tracks, otherwise it is rebuilt
	// from the candidate's ancestors.
	var tracker *majority.Tracker
	e.mtx.RLock()
	extendsTip := c.ForkHeight == pos.TipHeight && pos.TipHeight == e.tipHeight
	if extendsTip {
		tracker = e.tracker.Clone()
	}
	e.mtx.RUnlock()

	want := int(e.retargeter.Interval()) + 1
	if window := e.params.ToCheckBlockUpgradeMajority(); !extendsTip &&
		window > want {

		want = window
	}
	ancestors, err := view.Ancestors(&header.PrevBlock, want)
	if err != nil {
		return nil, fmt.Errorf("unable to load ancestors of %v: %w",
			b, err)
	}
	if len(ancestors) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrOrphanBlock, header.PrevBlock)
	}
	if !extendsTip {
		versions := make([]int32, len(ancestors))
		for i := range ancestors {
			versions[i] = ancestors[i].Version
		}
		tracker = majority.New(e.params, versions)
	}

	if err := e.checkProofOfWork(b, ancestors); err != nil {
		return verdictFor(err)
	}

	v := &Verdict{}
	class, version := tracker.Classify(header.Version)
	switch class {
	case majority.RejectOutdated:
		return rejected(chain.RuleErrorf(chain.ErrObsoleteVersion,
			"block version %d is obsolete, a supermajority of the "+
				"last %d blocks is at version %d or higher",
			header.Version, tracker.Len(), version)), nil
	case majority.RequireUpgrade:
		v.EnforcedVersion = version
		if err := e.checkUpgradeRules(b, version); err != nil {
			return verdictFor(err)
		}
	}

	zres, err := e.zerocoin.CheckBlock(ctx, b)
	if err != nil {
		return verdictFor(err)
	}
	v.ZerocoinState = zres.State
	v.RecalculateAccumulators = zres.RecalculateAccumulators
	v.Flags = zres.Flagged

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("validation of %v abandoned: %w", b, err)
	}
	if err := e.payments.CheckPayment(b); err != nil {
		return verdictFor(err)
	}

	v.Accepted = true
	return v, nil
}

// validateGenesis checks a block at height zero against the genesis hash.
// The checkpoint table plays no part: test networks carry a placeholder
// entry at height zero.
func (e *Engine) validateGenesis(b *chain.Block) (*Verdict, error) {
	genesis := e.GenesisHash()
	if !genesis.IsEqual(b.Hash()) {
		return rejected(chain.RuleErrorf(chain.ErrCheckpointMismatch,
			"genesis block %v does not match %v", b.Hash(),
			genesis)), nil
	}
	return &Verdict{
		Accepted:      true,
		ZerocoinState: e.zerocoin.StateAt(0, b.Header().Timestamp),
	}, nil
}

// checkUpgradeRules applies the rules of the upgrade version a
// supermajority enforces on b.  From the zerocoin header version on, blocks
// of a chain with zerocoin active must commit to the accumulators in their
// header.
func (e *Engine) checkUpgradeRules(b *chain.Block, enforced int32) error {
	if enforced < e.params.ZerocoinHeaderVersion() {
		return nil
	}
	header := b.Header()
	if e.zerocoin.StateAt(b.Height(), header.Timestamp) == zerocoin.Inactive {
		return nil
	}
	if b.AccumulatorCheckpoint() == (chainhash.Hash{}) {
		return chain.RuleErrorf(chain.ErrAccumulatorProofInvalid,
			"block %v has no accumulator checkpoint while version "+
				"%d is enforced", b, enforced)
	}
	return nil
}

// checkProofOfWork compares the declared target with the required one and,
// for proof of work blocks, the hash with the target.  Past LastPOWBlock
// blocks are proof of stake and their kernel is checked elsewhere.
func (e *Engine) checkProofOfWork(b *chain.Block, ancestors []wire.BlockHeader) error {
	header := b.Header()
	required := e.retargeter.NextTarget(b.Height(), ancestors,
		header.Timestamp)
	if err := e.retargeter.CheckDeclaredTarget(header.Bits, required); err != nil {
		return err
	}

	if b.Height() > e.lastPOWBlock {
		return nil
	}
	return e.retargeter.CheckProofOfWork(b.Hash(), header.Bits)
}

// ConnectBlock records b as the new best chain tip.  The block must have
// been validated and must follow the current tip.
func (e *Engine) ConnectBlock(b *chain.Block) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if b.Height() != e.tipHeight+1 {
		return fmt.Errorf("%w: connecting %v on tip %d", ErrNotNextBlock,
			b, e.tipHeight)
	}

	e.tracker.Add(b.Version())
	e.history = append(e.history, b.Version())
	e.trimHistory()
	e.tipHeight++

	log.Debugf("Connected block %v", b)
	return e.checkConsistency()
}

// DisconnectBlock removes the tip b during a reorganization and restores the
// version window to the state before it was connected.
func (e *Engine) DisconnectBlock(b *chain.Block) error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if b.Height() != e.tipHeight {
		return fmt.Errorf("%w: disconnecting %v from tip %d",
			ErrNotNextBlock, b, e.tipHeight)
	}
	if len(e.history) > 0 {
		e.history = e.history[:len(e.history)-1]
	}
	e.tracker = majority.New(e.params, e.history)
	e.tipHeight--

	log.Debugf("Disconnected block %v", b)
	return e.checkConsistency()
}

func (e *Engine) trimHistory() {
	if over := len(e.history) - e.historyCap; over > 0 {
		e.history = append(e.history[:0:0], e.history[over:]...)
	}
}

// checkConsistency verifies that the version window matches the history.
// It only runs on networks with consistency checks enabled.  The caller
// must hold the lock.
func (e *Engine) checkConsistency() error {
	if !e.consistencyChecks {
		return nil
	}
	if err := e.tracker.CheckConsistency(); err != nil {
		return err
	}
	window := e.tracker.Versions()
	if len(window) > len(e.history) {
		return fmt.Errorf("version window holds %d entries, history %d",
			len(window), len(e.history))
	}
	tail := e.history[len(e.history)-len(window):]
	for i := range window {
		if window[i] != tail[i] {
			return fmt.Errorf("version window diverges from history "+
				"at offset %d: %d != %d", i, window[i], tail[i])
		}
	}
	return nil
}

// Progress is an estimate of how far initial sync has come.
type Progress struct {
	// Fraction of the verification work done, in [0, 1].
	Fraction float64

	// BlocksRemaining is the estimated number of blocks still to fetch.
	BlocksRemaining int32
}

// SyncProgress estimates the sync progress of a node whose tip is at
// tipHeight, mined at tipTime, with txCount transactions in its chain.
func (e *Engine) SyncProgress(tipHeight int32, tipTime time.Time,
	txCount int64, now time.Time) Progress {

	return Progress{
		Fraction: e.checkpoints.GuessVerificationProgress(txCount,
			tipTime, now),
		BlocksRemaining: e.checkpoints.EstimatedHeightRemaining(tipHeight,
			tipTime, now),
	}
}
