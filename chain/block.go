package chain

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// OutOfRangeError describes an error due to accessing an element that is out
// of range.
type OutOfRangeError string

// BlockHeightUnknown is the value returned for a block height that is unknown.
// This is typically because the block has not been inserted into the main chain
// yet.
const BlockHeightUnknown = int32(-1)

// Error satisfies the error interface and prints human-readable errors.
func (e OutOfRangeError) Error() string {
	return string(e)
}

// Block is a candidate block as handed to the consensus engine.  Its hash is
// computed by the network layer, since the hashing algorithm depends on the
// header version, and is carried along with the block.
type Block struct {
	header wire.BlockHeader

	// accumulatorCheckpoint is the hash committing to the zerocoin
	// accumulators, present in zerocoin era headers.
	accumulatorCheckpoint chainhash.Hash

	blockHash    chainhash.Hash
	blockHeight  int32
	transactions []*Tx
}

// NewBlock returns a candidate block at the given height.
func NewBlock(header wire.BlockHeader, hash chainhash.Hash, height int32,
	txs []*Tx) *Block {

	for i, tx := range txs {
		tx.SetIndex(i)
	}
	return &Block{
		header:       header,
		blockHash:    hash,
		blockHeight:  height,
		transactions: txs,
	}
}

// SetAccumulatorCheckpoint sets the header accumulator commitment.
func (b *Block) SetAccumulatorCheckpoint(h chainhash.Hash) {
	b.accumulatorCheckpoint = h
}

// AccumulatorCheckpoint returns the header accumulator commitment.
func (b *Block) AccumulatorCheckpoint() chainhash.Hash {
	return b.accumulatorCheckpoint
}

// Header returns a copy of the block header.
func (b *Block) Header() wire.BlockHeader {
	return b.header
}

// Hash returns the block identifier hash.
func (b *Block) Hash() *chainhash.Hash {
	return &b.blockHash
}

// Version returns the header version.
func (b *Block) Version() int32 {
	return b.header.Version
}

// Height returns the height the block would have if accepted.
func (b *Block) Height() int32 {
	return b.blockHeight
}

// Tx returns the transaction at the specified index in the Block.  The
// supplied index is 0 based.  That is to say, the first transaction in the
// block is txNum 0.
func (b *Block) Tx(txNum int) (*Tx, error) {
	numTx := len(b.transactions)
	if txNum < 0 || txNum >= numTx {
		str := fmt.Sprintf("transaction index %d is out of range - max %d",
			txNum, numTx-1)
		return nil, OutOfRangeError(str)
	}
	return b.transactions[txNum], nil
}

// Transactions returns all transactions in block order.
func (b *Block) Transactions() []*Tx {
	return b.transactions
}

// IsProofOfStake reports whether the second transaction is a coinstake.
func (b *Block) IsProofOfStake() bool {
	return len(b.transactions) > 1 && b.transactions[1].IsCoinStake()
}

// GenerationTx returns the transaction that carries the block reward: the
// coinstake of a proof of stake block, otherwise the coinbase.  It returns
// nil for a block without transactions.
func (b *Block) GenerationTx() *Tx {
	if b.IsProofOfStake() {
		return b.transactions[1]
	}
	if len(b.transactions) == 0 {
		return nil
	}
	return b.transactions[0]
}

// String returns the hash and height for log lines.
func (b *Block) String() string {
	return fmt.Sprintf("%v (height %d)", b.blockHash, b.blockHeight)
}
