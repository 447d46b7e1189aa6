package masternode

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Umbracoindevs/UMBRA-v2/chain"
	"github.com/Umbracoindevs/UMBRA-v2/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil"
	"github.com/stretchr/testify/require"
)

var payeeScript = []byte{0x76, 0xa9, 0x14, 0x01, 0x02}

type fixedPayee struct {
	amount btcutil.Amount
	err    error
}

func (f fixedPayee) ExpectedPayee(int32) ([]byte, btcutil.Amount, error) {
	return payeeScript, f.amount, f.err
}

func coinbase(outs ...*wire.TxOut) *chain.Tx {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Index: math.MaxUint32},
		SignatureScript:  []byte{0x01, 0x02},
	})
	for _, out := range outs {
		tx.AddTxOut(out)
	}
	return chain.NewTx(tx, nil, nil, 0)
}

func coinstake(outs ...*wire.TxOut) *chain.Tx {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Hash: chainhash.Hash{0x09}},
	})
	tx.AddTxOut(&wire.TxOut{})
	for _, out := range outs {
		tx.AddTxOut(out)
	}
	return chain.NewTx(tx, nil, nil, 0)
}

func paidBlock(height int32, at time.Time, txs ...*chain.Tx) *chain.Block {
	header := wire.BlockHeader{Version: 4, Timestamp: at}
	return chain.NewBlock(header, chainhash.Hash{0x42}, height, txs)
}

func TestFinalizationConfirmations(t *testing.T) {
	require.Equal(t, 6, New(chaincfg.MainNetParams(), nil).
		FinalizationConfirmationsRequired())
	require.Equal(t, 3, New(chaincfg.TestNetParams(), nil).
		FinalizationConfirmationsRequired())
	require.Equal(t, 3, New(chaincfg.RegressionNetParams(), nil).
		FinalizationConfirmationsRequired())
}

func TestIsPaymentRequired(t *testing.T) {
	params := chaincfg.MainNetParams()
	s := New(params, nil)
	start := params.StartMasternodePayments()

	require.False(t, s.IsPaymentRequired(10, start.Add(-time.Second)))
	require.True(t, s.IsPaymentRequired(10, start))
	require.False(t, s.IsPaymentRequired(0, start.Add(time.Hour)))
}

func TestCheckPayment(t *testing.T) {
	params := chaincfg.MainNetParams()
	at := params.StartMasternodePayments().Add(time.Hour)
	s := New(params, fixedPayee{amount: 5 * chaincfg.COIN})

	paid := paidBlock(500, at, coinbase(
		&wire.TxOut{Value: int64(20 * chaincfg.COIN), PkScript: []byte{0x51}},
		&wire.TxOut{Value: int64(5 * chaincfg.COIN), PkScript: payeeScript},
	))
	require.NoError(t, s.CheckPayment(paid))

	under := paidBlock(500, at, coinbase(
		&wire.TxOut{Value: int64(4 * chaincfg.COIN), PkScript: payeeScript},
	))
	err := s.CheckPayment(under)
	require.True(t, chain.IsErrorCode(err, chain.ErrMasternodePaymentMissing))

	missing := paidBlock(500, at, coinbase(
		&wire.TxOut{Value: int64(25 * chaincfg.COIN), PkScript: []byte{0x51}},
	))
	err = s.CheckPayment(missing)
	require.True(t, chain.IsErrorCode(err, chain.ErrMasternodePaymentMissing))

	err = s.CheckPayment(paidBlock(500, at))
	require.True(t, chain.IsErrorCode(err, chain.ErrMasternodePaymentMissing))

	// Before payments start nothing is required.
	early := paidBlock(500, params.StartMasternodePayments().Add(-time.Hour),
		coinbase(&wire.TxOut{Value: 1, PkScript: []byte{0x51}}))
	require.NoError(t, s.CheckPayment(early))
}

func TestCheckPaymentProofOfStake(t *testing.T) {
	params := chaincfg.MainNetParams()
	at := params.StartMasternodePayments().Add(time.Hour)
	s := New(params, fixedPayee{amount: 5 * chaincfg.COIN})

	// The payee is paid by the coinstake, the coinbase is empty.
	b := paidBlock(params.LastPOWBlock()+1, at,
		coinbase(&wire.TxOut{}),
		coinstake(
			&wire.TxOut{Value: int64(100 * chaincfg.COIN), PkScript: []byte{0x51}},
			&wire.TxOut{Value: int64(5 * chaincfg.COIN), PkScript: payeeScript},
		),
	)
	require.True(t, b.IsProofOfStake())
	require.NoError(t, s.CheckPayment(b))
}

func TestCheckPaymentPayeeUnknown(t *testing.T) {
	params := chaincfg.MainNetParams()
	at := params.StartMasternodePayments().Add(time.Hour)
	b := paidBlock(500, at, coinbase(&wire.TxOut{Value: 1}))

	s := New(params, fixedPayee{err: ErrPayeeUnknown})
	require.NoError(t, s.CheckPayment(b))

	s = New(params, fixedPayee{err: errors.New("list corrupt")})
	err := s.CheckPayment(b)
	require.Error(t, err)
	_, isRule := chain.AsRuleError(err)
	require.False(t, isRule)
}
