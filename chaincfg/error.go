package chaincfg

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParams   = errors.New("invalid chain parameters")
	ErrGenesisMismatch = errors.New("genesis hash mismatch")
	ErrUnknownNetwork  = errors.New("unknown network")
)

func errInvalidParams(net Network, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidParams, net,
		fmt.Sprintf(format, args...))
}

func errUnknownNetwork(n string) error {
	return fmt.Errorf("%w: %s", ErrUnknownNetwork, n)
}
