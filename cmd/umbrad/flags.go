package main

import (
	"github.com/Umbracoindevs/UMBRA-v2/config"
	"github.com/urfave/cli"
)

var (
	ConfigFileFlag = cli.StringFlag{
		Name:  "configfile, C",
		Usage: "Path to configuration file",
		Value: config.DefaultConfigFile,
	}
	DataDirFlag = cli.StringFlag{
		Name:  "datadir, b",
		Usage: "Directory to store data",
	}
	LogDirFlag = cli.StringFlag{
		Name:  "logdir",
		Usage: "Directory to log output",
	}
	DebugLevelFlag = cli.StringFlag{
		Name:  "debuglevel, d",
		Usage: "Logging level for all subsystems, or <subsystem>=<level>,...",
	}
	TestNetFlag = cli.BoolFlag{
		Name:  "testnet",
		Usage: "Use the test network",
	}
	RegTestFlag = cli.BoolFlag{
		Name:  "regtest",
		Usage: "Use the regression test network",
	}
	NoReorgCheckFlag = cli.BoolFlag{
		Name:  "noreorgcheck",
		Usage: "Do not limit the depth of chain reorganizations",
	}
)

// loadConfig reads the config file named on the command line and overlays
// the flags that were set.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.GlobalString("configfile"))
	if err != nil {
		return nil, err
	}

	if ctx.GlobalIsSet("datadir") {
		cfg.DataDir = ctx.GlobalString("datadir")
	}
	if ctx.GlobalIsSet("logdir") {
		cfg.LogDir = ctx.GlobalString("logdir")
	}
	if ctx.GlobalIsSet("debuglevel") {
		cfg.DebugLevel = ctx.GlobalString("debuglevel")
	}
	if ctx.GlobalBool("testnet") {
		cfg.TestNet = true
	}
	if ctx.GlobalBool("regtest") {
		cfg.RegTest = true
	}
	if ctx.GlobalBool("noreorgcheck") {
		cfg.NoReorgCheck = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
