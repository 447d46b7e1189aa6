package main

import (
	"github.com/Umbracoindevs/UMBRA-v2/checkpoints"
	"github.com/Umbracoindevs/UMBRA-v2/config"
	"github.com/Umbracoindevs/UMBRA-v2/consensus"
	ulog "github.com/Umbracoindevs/UMBRA-v2/log"
	"github.com/Umbracoindevs/UMBRA-v2/masternode"
	"github.com/Umbracoindevs/UMBRA-v2/zerocoin"
	"github.com/Umbracoindevs/UMBRA-v2/zerocoin/serialdb"
	"github.com/btcsuite/btclog"
)

// log is the logger of umbrad itself.  It is replaced once logging is set
// up.
var log = btclog.Disabled

// subsystemLoggers maps each subsystem tag to the function installing its
// logger.
var subsystemLoggers = map[string]func(btclog.Logger){
	"UMBD": func(l btclog.Logger) { log = l },
	"CKPT": checkpoints.UseLogger,
	"CONS": consensus.UseLogger,
	"MNPY": masternode.UseLogger,
	"SRDB": serialdb.UseLogger,
	"ZERC": zerocoin.UseLogger,
}

// setupLogging creates the subsystem loggers, starts the log file rotator
// and applies the configured debug level.
func setupLogging(cfg *config.Config) (*ulog.Loggers, error) {
	tags := make([]string, 0, len(subsystemLoggers))
	for tag := range subsystemLoggers {
		tags = append(tags, tag)
	}
	logs := ulog.New(tags...)

	err := logs.InitRotator(cfg.LogFile(), int64(cfg.MaxLogFileSize)*1024,
		cfg.MaxLogFiles)
	if err != nil {
		return nil, err
	}
	if err := logs.SetLogLevels(cfg.DebugLevel); err != nil {
		logs.Close()
		return nil, err
	}

	for tag, use := range subsystemLoggers {
		use(logs.Logger(tag))
	}
	return logs, nil
}
