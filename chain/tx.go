package chain

import (
	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil"
)

// TxIndexUnknown is the value returned for a transaction index that is unknown.
// This is typically because the transaction has not been inserted into a block
// yet.
const TxIndexUnknown = -1

// Tx wraps a wire transaction together with its decoded zerocoin inputs and
// outputs and the fee it pays.  The fee is resolved by the caller from the
// spent outputs, which the consensus engine does not own.
type Tx struct {
	msgTx   *wire.MsgTx
	txHash  *chainhash.Hash
	txIndex int

	spends []*ZerocoinSpend
	mints  []*ZerocoinMint
	fee    btcutil.Amount
}

// NewTx returns a new Tx wrapping msgTx.
func NewTx(msgTx *wire.MsgTx, spends []*ZerocoinSpend, mints []*ZerocoinMint,
	fee btcutil.Amount) *Tx {

	return &Tx{
		msgTx:   msgTx,
		txIndex: TxIndexUnknown,
		spends:  spends,
		mints:   mints,
		fee:     fee,
	}
}

// MsgTx returns the underlying wire.MsgTx.
func (t *Tx) MsgTx() *wire.MsgTx {
	return t.msgTx
}

// Hash returns the transaction hash, computed on first use.
func (t *Tx) Hash() *chainhash.Hash {
	if t.txHash != nil {
		return t.txHash
	}
	hash := t.msgTx.TxHash()
	t.txHash = &hash
	return &hash
}

// Index returns the saved index of the transaction within a block.
func (t *Tx) Index() int {
	return t.txIndex
}

// SetIndex sets the index of the transaction in within a block.
func (t *Tx) SetIndex(index int) {
	t.txIndex = index
}

// ZerocoinSpends returns the zerocoin spends of the transaction.
func (t *Tx) ZerocoinSpends() []*ZerocoinSpend {
	return t.spends
}

// ZerocoinMints returns the zerocoin mints of the transaction.
func (t *Tx) ZerocoinMints() []*ZerocoinMint {
	return t.mints
}

// Fee returns the fee paid by the transaction.
func (t *Tx) Fee() btcutil.Amount {
	return t.fee
}

// IsCoinBase reports whether the transaction is a coinbase.
func (t *Tx) IsCoinBase() bool {
	return blockchain.IsCoinBaseTx(t.msgTx)
}

// IsCoinStake reports whether the transaction is a coinstake: it spends
// real inputs and marks itself with an empty first output.
func (t *Tx) IsCoinStake() bool {
	tx := t.msgTx
	if len(tx.TxIn) == 0 || len(tx.TxOut) < 2 || t.IsCoinBase() {
		return false
	}
	first := tx.TxOut[0]
	return first.Value == 0 && len(first.PkScript) == 0
}
