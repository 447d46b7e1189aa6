package masternode

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/Umbracoindevs/UMBRA-v2/chain"
	"github.com/Umbracoindevs/UMBRA-v2/chaincfg"
	"github.com/btcsuite/btcutil"
)

// ErrPayeeUnknown is returned by a PayeeSource that cannot tell who should
// be paid at a height, for example while the masternode list is syncing.
// Payments are not enforced for such heights.
var ErrPayeeUnknown = errors.New("masternode payee unknown")

// PayeeSource selects the masternode to be paid in a block.  The selection
// algorithm lives with the masternode list, outside the consensus engine.
type PayeeSource interface {
	ExpectedPayee(height int32) (pkScript []byte, amount btcutil.Amount, err error)
}

// Scheduler decides when masternode payments are mandatory.
type Scheduler struct {
	start       time.Time
	budgetConfs int
	payees      PayeeSource
}

// New returns a scheduler for params.  payees may be nil, in which case
// payment presence is never checked.
func New(params *chaincfg.Params, payees PayeeSource) *Scheduler {
	return &Scheduler{
		start:       params.StartMasternodePayments(),
		budgetConfs: params.BudgetFeeConfirmations(),
		payees:      payees,
	}
}

// IsPaymentRequired reports whether the block at height with the passed
// timestamp must pay a masternode.  The genesis block never does.
func (s *Scheduler) IsPaymentRequired(height int32, blockTime time.Time) bool {
	return height > 0 && !blockTime.Before(s.start)
}

// FinalizationConfirmationsRequired returns the confirmations a budget
// finalization fee transaction needs before its vote counts.
func (s *Scheduler) FinalizationConfirmationsRequired() int {
	return s.budgetConfs
}

// CheckPayment checks that b pays the expected masternode at least the
// expected amount in its generation transaction: the coinbase, or the
// coinstake of a proof of stake block.
func (s *Scheduler) CheckPayment(b *chain.Block) error {
	height := b.Height()
	if s.payees == nil || !s.IsPaymentRequired(height, b.Header().Timestamp) {
		return nil
	}

	script, amount, err := s.payees.ExpectedPayee(height)
	if errors.Is(err, ErrPayeeUnknown) {
		log.Debugf("No masternode payee known for height %d, not "+
			"enforcing payment", height)
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to select masternode payee for "+
			"height %d: %w", height, err)
	}

	gen := b.GenerationTx()
	if gen == nil {
		return chain.RuleErrorf(chain.ErrMasternodePaymentMissing,
			"block %v has no generation transaction", b.Hash())
	}
	for _, out := range gen.MsgTx().TxOut {
		if bytes.Equal(out.PkScript, script) &&
			btcutil.Amount(out.Value) >= amount {

			return nil
		}
	}
	return chain.RuleErrorf(chain.ErrMasternodePaymentMissing,
		"block %v does not pay %v to masternode script %x",
		b.Hash(), amount, script)
}
