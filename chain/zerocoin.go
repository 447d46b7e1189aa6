package chain

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcutil"
)

// Denomination is the face value of a zerocoin in whole coins.
type Denomination int64

const (
	DenomOne          Denomination = 1
	DenomFive         Denomination = 5
	DenomTen          Denomination = 10
	DenomFifty        Denomination = 50
	DenomOneHundred   Denomination = 100
	DenomFiveHundred  Denomination = 500
	DenomOneThousand  Denomination = 1000
	DenomFiveThousand Denomination = 5000
)

// Denominations lists every valid denomination in ascending order.
var Denominations = []Denomination{
	DenomOne, DenomFive, DenomTen, DenomFifty,
	DenomOneHundred, DenomFiveHundred, DenomOneThousand, DenomFiveThousand,
}

// IsValid reports whether d is one of Denominations.
func (d Denomination) IsValid() bool {
	for _, v := range Denominations {
		if d == v {
			return true
		}
	}
	return false
}

// Amount returns the value of the denomination.
func (d Denomination) Amount() btcutil.Amount {
	return btcutil.Amount(int64(d) * btcutil.SatoshiPerBitcoin)
}

func (d Denomination) String() string {
	return fmt.Sprintf("zUMB-%d", int64(d))
}

// ZerocoinSpend is a transaction input redeeming an anonymous coin.  The
// serial is revealed to prevent double spends; the proof shows membership
// of the coin in the accumulator taken at AccumulatorHeight without
// revealing which mint it was.
type ZerocoinSpend struct {
	Serial            *big.Int
	Denomination      Denomination
	AccumulatorHeight int32
	Proof             []byte
}

// String identifies the spend by serial for log lines.
func (s *ZerocoinSpend) String() string {
	return fmt.Sprintf("%v spend serial %x", s.Denomination, s.Serial)
}

// ZerocoinMint is a transaction output creating an anonymous coin.  Height
// is the height of the block that mined it, or BlockHeightUnknown while it
// is unconfirmed.
type ZerocoinMint struct {
	Denomination Denomination
	Commitment   *big.Int
	Height       int32
}
