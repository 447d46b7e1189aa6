package chaincfg

import (
	"math/big"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

var (
	bigOne = big.NewInt(1)

	// mainPowLimit is the easiest proof of work target on the main
	// network, 2^236 - 1.
	mainPowLimit = new(big.Int).Sub(new(big.Int).Lsh(bigOne, 236), bigOne)
)

// mainZerocoinModulus is the RSA-2048 challenge modulus, whose factors are
// unknown, used as the trusted accumulator modulus.
const mainZerocoinModulus = "25195908475657893494027183240048398571429282126204032027777137836043662020707595556264018525880784" +
	"4069182906412495150821892985591491761845028084891200728449926873928072877767359714183472702618963750149718246911" +
	"6507761337985909570009733045974880842840179742910064245869181719511874612151517265463228221686998754918242243363" +
	"7259085141865462043576798423387184774447920739934236584823824281198163815010674810451660377306056201619676256133" +
	"8441436038339044149526344321901146575444541784240209246165157233507787077498171257724679629263863563732899121548" +
	"31438167899885040445364023527381951378636564391212010397122822120720357"

var mainCheckpoints = CheckpointData{
	Checkpoints: []Checkpoint{
		{0, newHashFromStr("983187781fecc3181af6fc5211abbd2feb62e09fadf971970353cf98e6b2fc10")},
		{1, newHashFromStr("00000fa538e56e9bd6b0a4c06019b82d16bb1400f6e7edcdbc67e6c88514dfb6")},
		{2, newHashFromStr("00000785b3ee2eec1fd5f5862ab0c12b73c0c804e80c438271d4c0080005c68d")},
		{3, newHashFromStr("00000306b123fc64cb76630286043cd316fa17e03d055cfa0ed6df7d5b57a90e")},
		{4, newHashFromStr("0000090723b6ec9bdcd445a905b505cee99d18f6739d1491c8cee9deaade9bb1")},
		{5, newHashFromStr("00000684a89d81490521936df24658ce25ecf26ff6c34053d1f5fb5f1b9d3c0c")},
		{6, newHashFromStr("000008b887f7bdd417a2243c3590c8a33949f4eb5c9ddc0bec911e2c9c52d252")},
		{7, newHashFromStr("0000071a27e992df12af84c11a1403052d1921f14d87db6735bd4c6ac99b06f2")},
		{8, newHashFromStr("00000d705aa419c4562a551b30518d8eb09c11973f56354aecab755515bda153")},
		{9, newHashFromStr("000007f7b475e3a58483815753917e1d5e5e51b143f02652ab846bf1dcc14afb")},
		{10, newHashFromStr("000008f68b2dd90f1974c128039802319b0224e057f7aa27cf91e7bc0977493f")},
		{11, newHashFromStr("00000625199f686bfdb9b75bd64a4d60f059ed9bd69edecd1d8f001bbe76dba7")},
		{12, newHashFromStr("00000b58960b18aa47b8bda5641e5758cb12260c488ddb72e885b4850cd639ba")},
		{13, newHashFromStr("00000d194268b10138578c8eebe84b700ed5e0b3b75a14434081c73fe47bb60a")},
		{14, newHashFromStr("000009b19560ed19488e98665aeb2329cd0f318b07d29437ee6513b07761d78a")},
		{15, newHashFromStr("000007eddd61e08f5c0c2ab19b493c832d071d1881ed10ba8c8c4c9f5ffa4ba2")},
		{16, newHashFromStr("000003ceb1556bf246421fb18c04be371f389013c6a51ff08cd1faf5d2a468f0")},
		{17, newHashFromStr("0000055d1c7358d5c00cf568c50a516420c783dd1e223036d4089c5c398de11b")},
		{18, newHashFromStr("0000044982de4b31c88ab1f5917fe600fb2f86a6af8d2476332af0ee8078ea73")},
		{19, newHashFromStr("00000236037a71a70f43d9d3284a62b2297ed864768ef849f7eee6146c218b31")},
		{20, newHashFromStr("0000040bf71af77340466eb441f24746172f660eb2943b5957cf21d8dc778c1e")},
		{21, newHashFromStr("00000daacc730ab8ada8ec863795a2d99fe43acfac8ea6d6c909f4b2b64e8f02")},
		{22, newHashFromStr("000006e7d1c2559529c5052b7dcd167a461a043210e46ac18021ab8993d545cd")},
		{23, newHashFromStr("000009bef300979b85e22895a4b17eeedffa23230578f9a1f2eafc3d9ae87591")},
		{24, newHashFromStr("00000ccf86804a27d94d2fe819575521310cfdf965511d7eeaf71f62d0c4bf0e")},
		{25, newHashFromStr("000002842d0f81d18a00a131f2b757f95408a36c2d989e96c96b011372144728")},
		{26, newHashFromStr("00000099692c0804828760c5d3357c979f38309a45627cdf6917f61dc569b9a7")},
		{27, newHashFromStr("000001ddcfd31e9a767cbdbcd5e905316bc70e315ceae712a6f021e1dcad1099")},
		{28, newHashFromStr("00000236a5aaa9117e1ce2e57e8f93c2e3477da67a2d790d37248dcc583c6860")},
		{29, newHashFromStr("00000355fb660684cb73e57da9093d61eb416a53e4369d5ae47ddeea4391ba17")},
		{30, newHashFromStr("000003db5733392f57d6da6e5c5552e44b6d43e22d57dd9b1616193b1ea725db")},
		{31, newHashFromStr("000001733224f54b91b74734689857c29c37eda58739625880ef6080af921720")},
		{32, newHashFromStr("0000015f85c38328113a7bd6cfabe0c852f7dca27db0b7c2c408491b619e4933")},
		{33, newHashFromStr("00000150687bf2da9551cd8c7478595f8f07a2b97ee884c947a8b490fa395f3e")},
		{34, newHashFromStr("0000033597b810ab66092a78653543e78da94106986c1c284987800b52008acf")},
		{35, newHashFromStr("000003adf2a36d9f72a954ec2deba720ede29b16b0dd18716ea77cf7321dd4fe")},
		{36, newHashFromStr("0000050ca19dceb5958f705a78ce1e19af923918ce91be2460fd0c4ab0d28655")},
		{37, newHashFromStr("000003c445daec9b8ad35ceff5f4845ba1252d41cdda2bb2a281b714f4fc125f")},
		{38, newHashFromStr("0000059297d7d2e846b2d890650e0f98edcd5bff6e2fec517c0ab47962c47f3f")},
		{39, newHashFromStr("0000063d57f23ffa7f02f0059fc4afcb3de5b49aa24a450cb5532a0afd1813d6")},
		{301, newHashFromStr("00000027dcdfdf4f27fafb5aa7da398cae981b8afe6d9b9a4fbd8d257a411e55")},
	},
	LastCheckpointTime:         1546214086,
	TransactionsLastCheckpoint: 301,
	TransactionsPerDay:         1000,
}

// MainNetParams returns the parameters of the main network.  Every call
// builds a fresh value.
func MainNetParams() *Params {
	genesisHash := newHashFromStr("983187781fecc3181af6fc5211abbd2feb62e09fadf971970353cf98e6b2fc10")
	return &Params{
		net:         MainNet,
		magic:       wire.BitcoinNet(0x08e9393f),
		defaultPort: "18878",
		sporkKey:    "042feb9a8e026467a8316c1f140440af99e4b5fdbb6949eea83e8eae76ab82bc91d63ffb857938aad23d2cc949dbc6bc1ab1661f7501f2ddeddacd307774e6dd50",

		genesisHeader: wire.BlockHeader{
			Version:    1,
			PrevBlock:  chainhash.Hash{},
			MerkleRoot: *newHashFromStr("e5b9c9a658a89f8a7af6b01443045f7423345fb3ab17dc3436335a98a3fec70b"),
			Timestamp:  time.Unix(1545453420, 0),
			Bits:       0x1e0ffff0,
			Nonce:      118011,
		},
		genesisHash: genesisHash,

		powLimit:                 new(big.Int).Set(mainPowLimit),
		powLimitBits:             0x1e0fffff,
		targetTimespan:           2 * time.Minute,
		targetSpacing:            2 * time.Minute,
		retargetAdjustmentFactor: 4,
		allowMinDifficultyBlocks: false,
		skipProofOfWorkCheck:     false,

		subsidyHalvingInterval: 99999999,
		maxReorganizationDepth: 100,
		lastPOWBlock:           400,
		masternodeCountDrift:   20,
		coinbaseMaturity:       30,
		maxMoneyOut:            25000000 * COIN,

		enforceBlockUpgradeMajority: 750,
		rejectBlockOutdatedMajority: 950,
		toCheckBlockUpgradeMajority: 1000,

		checkpoints: mainCheckpoints.clone(),

		zerocoinStartHeight:             5120000,
		zerocoinStartTime:               time.Unix(1545453420, 0),
		accumulatorStartHeight:          1,
		blockEnforceSerialRange:         1,
		blockRecalculateAccumulators:    Never,
		blockFirstFraudulent:            Never,
		blockLastGoodCheckpoint:         Never,
		maxZerocoinSpendsPerTransaction: 7,
		minZerocoinMintFee:              1 * ZCENT,
		mintRequiredConfirmations:       20,
		requiredAccumulation:            1,
		defaultSecurityLevel:            100,
		zerocoinHeaderVersion:           4,
		zerocoinModulus:                 newIntFromStr(mainZerocoinModulus),

		startMasternodePayments: time.Unix(1545453420, 0),
		budgetFeeConfirmations:  6,

		requireStandard: true,
	}
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash.  It only differs from the one available in chainhash in
// that it panics on an error since it will only (and must only) be called
// with hard-coded, and therefore known good, hashes.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}

// newIntFromStr parses a hard-coded decimal integer and panics if it is
// malformed.
func newIntFromStr(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid hard-coded integer " + s)
	}
	return n
}
