package chain

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

func coinbaseTx() *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Index: wire.MaxPrevOutIndex},
		SignatureScript:  []byte{0x51, 0x51},
	})
	tx.AddTxOut(wire.NewTxOut(250, []byte{0x51}))
	return tx
}

func coinstakeTx() *wire.MsgTx {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Hash: chainhash.Hash{1}},
	})
	tx.AddTxOut(&wire.TxOut{})
	tx.AddTxOut(wire.NewTxOut(100, []byte{0x52}))
	return tx
}

func TestGenerationTx(t *testing.T) {
	cb := NewTx(coinbaseTx(), nil, nil, 0)
	cs := NewTx(coinstakeTx(), nil, nil, 0)

	require.True(t, cb.IsCoinBase())
	require.False(t, cb.IsCoinStake())
	require.True(t, cs.IsCoinStake())

	pow := NewBlock(wire.BlockHeader{}, chainhash.Hash{}, 5, []*Tx{cb})
	require.False(t, pow.IsProofOfStake())
	require.Equal(t, cb, pow.GenerationTx())

	pos := NewBlock(wire.BlockHeader{}, chainhash.Hash{}, 500,
		[]*Tx{NewTx(coinbaseTx(), nil, nil, 0), cs})
	require.True(t, pos.IsProofOfStake())
	require.Equal(t, cs, pos.GenerationTx())
	require.Equal(t, 1, cs.Index())

	empty := NewBlock(wire.BlockHeader{}, chainhash.Hash{}, 1, nil)
	require.Nil(t, empty.GenerationTx())
}

func TestBlockTxOutOfRange(t *testing.T) {
	b := NewBlock(wire.BlockHeader{}, chainhash.Hash{}, 1,
		[]*Tx{NewTx(coinbaseTx(), nil, nil, 0)})

	_, err := b.Tx(1)
	require.IsType(t, OutOfRangeError(""), err)

	tx, err := b.Tx(0)
	require.NoError(t, err)
	require.Equal(t, 0, tx.Index())
}

func TestDenominations(t *testing.T) {
	require.True(t, DenomFiveThousand.IsValid())
	require.False(t, Denomination(2).IsValid())
	require.Equal(t, int64(500000000), int64(DenomFive.Amount()))
}
