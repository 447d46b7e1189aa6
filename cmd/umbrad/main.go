package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Umbracoindevs/UMBRA-v2/chain"
	"github.com/Umbracoindevs/UMBRA-v2/consensus"
	"github.com/Umbracoindevs/UMBRA-v2/zerocoin/serialdb"
	"github.com/urfave/cli"
)

var (
	app       = cli.NewApp()
	coreFlags = []cli.Flag{
		ConfigFileFlag,
		DataDirFlag,
		LogDirFlag,
		DebugLevelFlag,
		TestNetFlag,
		RegTestFlag,
		NoReorgCheckFlag,
	}
)

// init initializes CLI
func init() {
	app.Action = umbrad
	app.Name = "umbrad"
	app.Usage = "Umbra consensus daemon"
	app.Version = "2.0.0"
	app.Flags = append(app.Flags, coreFlags...)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "umbrad: %v\n", err)
		os.Exit(1)
	}
}

// umbrad is the main entrypoint.  It selects the network once, refuses to
// start on an inconsistent parameter set, opens the spent serial database,
// builds the consensus engine and runs until interrupted.
func umbrad(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	logs, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer logs.Close()

	params, err := cfg.Params()
	if err != nil {
		return err
	}
	log.Infof("Starting umbrad on the %s network", params.Name())

	serials, err := serialdb.Open(cfg.SerialDBPath())
	if err != nil {
		return err
	}
	defer serials.Close()

	engine, err := consensus.New(&consensus.Config{
		Params:         params,
		Accumulator:    newUnavailableAccumulator(params),
		Accumulators:   unavailableAccumulators{},
		Serials:        serials,
		SkipReorgCheck: cfg.NoReorgCheck,
		TipHeight:      -1,
	})
	if err != nil {
		return err
	}

	if err := checkGenesis(engine); err != nil {
		return err
	}

	genesisTime := params.GenesisHeader().Timestamp
	progress := engine.SyncProgress(0, genesisTime, 0, time.Now())
	log.Infof("Sync progress %.2f%%, about %d blocks behind",
		progress.Fraction*100, progress.BlocksRemaining)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	log.Info("Shutting down")
	return nil
}

// checkGenesis runs the network's genesis block through the engine.
func checkGenesis(engine *consensus.Engine) error {
	params := engine.Params()
	hash := engine.GenesisHash()

	genesis := chain.NewBlock(params.GenesisHeader(), *hash, 0, nil)
	v, err := engine.ValidateBlock(context.Background(),
		&consensus.Candidate{Block: genesis}, emptyView{})
	if err != nil {
		return err
	}
	if !v.Accepted {
		log.Criticalf("Genesis block rejected: %v", v)
		return v.Err()
	}
	log.Infof("Genesis block %v accepted", hash)
	return nil
}
