package zerocoin

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/Umbracoindevs/UMBRA-v2/chain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcutil"
)

// BlockResult is the outcome of a block that passed the zerocoin checks.
type BlockResult struct {
	// State is the regime the block was checked under.
	State State

	// Flagged holds the rule violations tolerated because the block is in
	// the checkpointed part of the fraud exception zone.
	Flagged []chain.RuleError

	// RecalculateAccumulators is set when stored accumulator checkpoints
	// at this height must not be trusted and have to be rebuilt.
	RecalculateAccumulators bool
}

// CheckTransaction applies the rules that hold at every height: the spend
// cap and the mint fee floor.
func (p *Policy) CheckTransaction(tx *chain.Tx) error {
	spends := tx.ZerocoinSpends()
	if len(spends) > p.maxSpends {
		return chain.RuleErrorf(chain.ErrTooManySpends,
			"transaction %v has %d zerocoin spends, max %d",
			tx.Hash(), len(spends), p.maxSpends)
	}

	mints := tx.ZerocoinMints()
	if len(mints) == 0 {
		return nil
	}
	required := p.minMintFee * btcutil.Amount(len(mints))
	if tx.Fee() < required {
		return chain.RuleErrorf(chain.ErrMintFeeTooLow,
			"transaction %v pays %v for %d zerocoin mints, min %v",
			tx.Hash(), tx.Fee(), len(mints), required)
	}
	return nil
}

// CheckSpend checks a single spend of a block at height with the passed
// timestamp, including its membership proof.
func (p *Policy) CheckSpend(height int32, blockTime time.Time,
	spend *chain.ZerocoinSpend) error {

	state := p.StateAt(height, blockTime)
	if state == Inactive {
		return notYetActive(height)
	}
	value, err := p.prepareSpend(state, height, spend, newAccumulatorCache())
	if err != nil {
		return err
	}
	if !p.acc.Verify(value, spend.Proof, spend.Serial, spend.Denomination) {
		return invalidProof(spend)
	}
	return nil
}

// CheckBlock runs the zerocoin rules over every transaction of b.  The
// header version gate comes first, then each transaction in order.  ctx is
// checked between transactions; proofs already handed to workers run to
// completion.
//
// A rule violation is returned as a chain.RuleError unless the block is in
// the checkpointed part of the fraud zone, in which case it is added to
// BlockResult.Flagged.  Any other error comes from a capability.
func (p *Policy) CheckBlock(ctx context.Context, b *chain.Block) (*BlockResult, error) {
	height := b.Height()
	header := b.Header()
	state := p.StateAt(height, header.Timestamp)
	res := &BlockResult{
		State:                   state,
		RecalculateAccumulators: state == RecalculationRequired,
	}
	tolerant := p.tolerant(state, height)

	// flag records err if it may be tolerated and reports whether
	// checking should go on.
	flag := func(err error) (bool, error) {
		rerr, ok := chain.AsRuleError(err)
		if !ok || !tolerant {
			return false, err
		}
		log.Warnf("Tolerating zerocoin violation in checkpointed "+
			"block %v (height %d): %v", b.Hash(), height, rerr)
		res.Flagged = append(res.Flagged, rerr)
		return true, nil
	}

	if state != Inactive && header.Version < p.headerVersion {
		err := chain.RuleErrorf(chain.ErrHeaderVersionTooLow,
			"block version %d is below the zerocoin minimum of %d",
			header.Version, p.headerVersion)
		if cont, err := flag(err); !cont {
			return nil, err
		}
	}

	accs := newAccumulatorCache()
	seen := make(map[string]*chainhash.Hash)
	for _, tx := range b.Transactions() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("zerocoin check of block %v "+
				"abandoned: %w", b.Hash(), err)
		}

		if err := p.CheckTransaction(tx); err != nil {
			if cont, err := flag(err); !cont {
				return nil, err
			}
		}

		spends := tx.ZerocoinSpends()
		if len(spends) == 0 {
			continue
		}
		if state == Inactive {
			if cont, err := flag(notYetActive(height)); !cont {
				return nil, err
			}
			continue
		}

		items := make([]*proofItem, 0, len(spends))
		for i, spend := range spends {
			if spend.Serial != nil {
				key := spend.Serial.String()
				if prev, ok := seen[key]; ok {
					err := chain.RuleErrorf(chain.ErrDoubleSpentSerial,
						"serial %x spent twice in block %v, "+
							"by %v and %v", spend.Serial,
						b.Hash(), prev, tx.Hash())
					if cont, err := flag(err); !cont {
						return nil, err
					}
					continue
				}
				seen[key] = tx.Hash()
			}

			value, err := p.prepareSpend(state, height, spend, accs)
			if err != nil {
				if cont, err := flag(err); !cont {
					return nil, err
				}
				continue
			}
			items = append(items, &proofItem{
				tx:          tx,
				index:       i,
				spend:       spend,
				accumulator: value,
			})
		}

		if tolerant {
			for _, item := range items {
				if !p.acc.Verify(item.accumulator, item.spend.Proof,
					item.spend.Serial, item.spend.Denomination) {

					flag(invalidProof(item.spend))
				}
			}
			continue
		}
		if err := newSpendValidator(p.acc).Validate(items); err != nil {
			return nil, err
		}
	}

	if res.RecalculateAccumulators {
		log.Debugf("Block %v (height %d) verified against %d recalculated "+
			"accumulators", b.Hash(), height, accs.recomputed)
	}
	return res, nil
}

// prepareSpend runs the cheap checks on spend and returns the accumulator
// value its proof has to verify against.
func (p *Policy) prepareSpend(state State, height int32,
	spend *chain.ZerocoinSpend, accs *accumulatorCache) (*big.Int, error) {

	if spend.Serial == nil || !spend.Denomination.IsValid() {
		return nil, chain.RuleErrorf(chain.ErrAccumulatorProofInvalid,
			"malformed zerocoin spend %v", spend)
	}

	if height >= p.enforceSerialRange {
		bound := p.acc.SerialUpperBound(spend.Denomination)
		if spend.Serial.Sign() <= 0 || spend.Serial.Cmp(bound) >= 0 {
			return nil, chain.RuleErrorf(chain.ErrSerialOutOfRange,
				"serial %x of %v is outside (0, %x)", spend.Serial,
				spend.Denomination, bound)
		}
	}

	spent, err := p.serials.Contains(spend.Serial)
	if err != nil {
		return nil, fmt.Errorf("unable to look up serial %x: %w",
			spend.Serial, err)
	}
	if spent {
		return nil, chain.RuleErrorf(chain.ErrDoubleSpentSerial,
			"serial %x of %v is already spent", spend.Serial,
			spend.Denomination)
	}

	accHeight := spend.AccumulatorHeight
	if accHeight < p.accStartHeight || accHeight >= height {
		return nil, chain.RuleErrorf(chain.ErrAccumulatorProofInvalid,
			"spend %v references accumulator at height %d, valid "+
				"range is [%d, %d)", spend, accHeight,
			p.accStartHeight, height)
	}

	if state == RecalculationRequired {
		return p.recomputed(spend, accs)
	}
	return p.checkpointed(spend, accs)
}

// checkpointed returns the stored accumulator the spend references.
func (p *Policy) checkpointed(spend *chain.ZerocoinSpend,
	accs *accumulatorCache) (*big.Int, error) {

	key := accumulatorKey{spend.Denomination, spend.AccumulatorHeight}
	entry, ok := accs.stored[key]
	if !ok {
		value, count, err := p.accStore.Checkpoint(spend.Denomination,
			spend.AccumulatorHeight)
		if err != nil {
			return nil, fmt.Errorf("unable to load %v accumulator "+
				"at height %d: %w", spend.Denomination,
				spend.AccumulatorHeight, err)
		}
		entry = accumulatorEntry{value: value, count: count}
		accs.stored[key] = entry
	}
	return p.checkAccumulation(spend, entry)
}

// recomputed rebuilds the accumulator the spend references from the mints
// that had the required confirmations at its height.  Rebuilt values are
// shared by the spends of one block.
func (p *Policy) recomputed(spend *chain.ZerocoinSpend,
	accs *accumulatorCache) (*big.Int, error) {

	key := accumulatorKey{spend.Denomination, spend.AccumulatorHeight}
	entry, ok := accs.rebuilt[key]
	if !ok {
		mints, err := p.accStore.MintsUpTo(spend.Denomination,
			spend.AccumulatorHeight)
		if err != nil {
			return nil, fmt.Errorf("unable to load %v mints up to "+
				"height %d: %w", spend.Denomination,
				spend.AccumulatorHeight, err)
		}
		confirmed := make([]*chain.ZerocoinMint, 0, len(mints))
		for _, m := range mints {
			if m.Height+p.mintConfirmations <= spend.AccumulatorHeight {
				confirmed = append(confirmed, m)
			}
		}
		entry = accumulatorEntry{
			value: p.acc.Recompute(spend.Denomination, confirmed),
			count: len(confirmed),
		}
		accs.rebuilt[key] = entry
		accs.recomputed++
	}
	return p.checkAccumulation(spend, entry)
}

func (p *Policy) checkAccumulation(spend *chain.ZerocoinSpend,
	entry accumulatorEntry) (*big.Int, error) {

	if entry.value == nil || entry.count < p.requiredAcc {
		return nil, chain.RuleErrorf(chain.ErrAccumulatorProofInvalid,
			"%v accumulator at height %d holds %d mints, need %d",
			spend.Denomination, spend.AccumulatorHeight, entry.count,
			p.requiredAcc)
	}
	return entry.value, nil
}

type accumulatorKey struct {
	denom  chain.Denomination
	height int32
}

type accumulatorEntry struct {
	value *big.Int
	count int
}

// accumulatorCache holds the accumulator values looked up while checking one
// block.
type accumulatorCache struct {
	stored     map[accumulatorKey]accumulatorEntry
	rebuilt    map[accumulatorKey]accumulatorEntry
	recomputed int
}

func newAccumulatorCache() *accumulatorCache {
	return &accumulatorCache{
		stored:  make(map[accumulatorKey]accumulatorEntry),
		rebuilt: make(map[accumulatorKey]accumulatorEntry),
	}
}

func notYetActive(height int32) chain.RuleError {
	return chain.RuleErrorf(chain.ErrZerocoinNotYetActive,
		"zerocoin spend at height %d before activation", height)
}

func invalidProof(spend *chain.ZerocoinSpend) chain.RuleError {
	return chain.RuleErrorf(chain.ErrAccumulatorProofInvalid,
		"membership proof of %v does not verify", spend)
}
