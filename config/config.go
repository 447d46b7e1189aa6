// Package config holds the umbrad configuration.  Values come from
// defaults, then the INI config file, then command line flags applied by
// the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/Umbracoindevs/UMBRA-v2/chaincfg"
	"github.com/btcsuite/btcutil"
	"github.com/jessevdk/go-flags"
)

const (
	defaultConfigFilename = "umbra.conf"
	defaultDataDirname    = "data"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "umbrad.log"
	defaultLogLevel       = "info"
	defaultMaxLogFileSize = 10
	defaultMaxLogFiles    = 3
	serialDBDirname       = "serials"
)

var (
	// DefaultHomeDir is the default umbra home directory.
	DefaultHomeDir = btcutil.AppDataDir("umbra", false)

	// DefaultConfigFile is the default path of the config file.
	DefaultConfigFile = filepath.Join(DefaultHomeDir, defaultConfigFilename)

	defaultDataDir = filepath.Join(DefaultHomeDir, defaultDataDirname)
	defaultLogDir  = filepath.Join(DefaultHomeDir, defaultLogDirname)
)

// ErrConflictingNetworks is returned when more than one network is selected.
var ErrConflictingNetworks = errors.New("only one network may be selected")

// Config is the umbrad configuration.
type Config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir    string `short:"b" long:"datadir" description:"Directory to store data"`
	LogDir     string `long:"logdir" description:"Directory to log output"`

	MaxLogFileSize int    `long:"maxlogfilesize" description:"Maximum logfile size in MB"`
	MaxLogFiles    int    `long:"maxlogfiles" description:"Maximum logfiles to keep (0 for no rotation)"`
	DebugLevel     string `short:"d" long:"debuglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`

	TestNet bool `long:"testnet" description:"Use the test network"`
	RegTest bool `long:"regtest" description:"Use the regression test network"`

	NoReorgCheck bool `long:"noreorgcheck" description:"Do not limit the depth of chain reorganizations"`
}

// Default returns a config with default values.
func Default() Config {
	return Config{
		ConfigFile:     DefaultConfigFile,
		DataDir:        defaultDataDir,
		LogDir:         defaultLogDir,
		MaxLogFileSize: defaultMaxLogFileSize,
		MaxLogFiles:    defaultMaxLogFiles,
		DebugLevel:     defaultLogLevel,
	}
}

// Load returns the defaults overlaid with the config file at path.  A missing
// file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.ConfigFile = CleanAndExpandPath(path)

	err := flags.IniParse(cfg.ConfigFile, &cfg)
	if err != nil {
		if _, ok := err.(*flags.IniError); ok {
			return nil, err
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("unable to read %s: %w",
				cfg.ConfigFile, err)
		}
	}
	return &cfg, nil
}

// Validate checks the config and expands its paths.
func (c *Config) Validate() error {
	if c.TestNet && c.RegTest {
		return ErrConflictingNetworks
	}
	if c.MaxLogFileSize <= 0 {
		return fmt.Errorf("maxlogfilesize must be positive, got %d",
			c.MaxLogFileSize)
	}
	if c.MaxLogFiles < 0 {
		return fmt.Errorf("maxlogfiles must not be negative, got %d",
			c.MaxLogFiles)
	}
	c.DataDir = CleanAndExpandPath(c.DataDir)
	c.LogDir = CleanAndExpandPath(c.LogDir)
	return nil
}

// Network returns the selected network.
func (c *Config) Network() chaincfg.Network {
	switch {
	case c.TestNet:
		return chaincfg.TestNet
	case c.RegTest:
		return chaincfg.RegressionNet
	default:
		return chaincfg.MainNet
	}
}

// Params returns a fresh parameter set for the selected network.
func (c *Config) Params() (*chaincfg.Params, error) {
	if c.TestNet && c.RegTest {
		return nil, ErrConflictingNetworks
	}
	return chaincfg.ParamsForNet(c.Network())
}

// SerialDBPath returns the directory of the spent serial database of the
// selected network.
func (c *Config) SerialDBPath() string {
	return filepath.Join(c.DataDir, c.Network().String(), serialDBDirname)
}

// LogFile returns the log file of the selected network.
func (c *Config) LogFile() string {
	return filepath.Join(c.LogDir, c.Network().String(), defaultLogFilename)
}

// CleanAndExpandPath expands environment variables and a leading ~ in the
// passed path, cleans the result, and returns it.
func CleanAndExpandPath(path string) string {
	if path == "" {
		return ""
	}

	// Expand initial ~ to OS specific home directory.
	if strings.HasPrefix(path, "~") {
		var homeDir string
		u, err := user.Current()
		if err == nil {
			homeDir = u.HomeDir
		} else {
			homeDir = os.Getenv("HOME")
		}

		path = strings.Replace(path, "~", homeDir, 1)
	}

	// NOTE: The os.ExpandEnv doesn't work with Windows-style %VARIABLE%,
	// but the variables can still be expanded via POSIX-style $VARIABLE.
	return filepath.Clean(os.ExpandEnv(path))
}
