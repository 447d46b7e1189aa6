package chaincfg

import "fmt"

// UnitTestParams returns the parameters used by unit tests.  They are the
// main network parameters, sharing its checkpoints, with the overrides
// below.
func UnitTestParams() *Params {
	p := MainNetParams().clone()

	p.net = UnitTestNet
	p.defaultPort = "18878"
	p.defaultConsistencyChecks = true
	p.allowMinDifficultyBlocks = false
	p.mineBlocksOnDemand = true
	return p
}

// ParamsForNet returns a fresh copy of the parameters of the passed
// network.
func ParamsForNet(n Network) (*Params, error) {
	switch n {
	case MainNet:
		return MainNetParams(), nil
	case TestNet:
		return TestNetParams(), nil
	case RegressionNet:
		return RegressionNetParams(), nil
	case UnitTestNet:
		return UnitTestParams(), nil
	default:
		return nil, errUnknownNetwork(fmt.Sprintf("%d", int(n)))
	}
}
