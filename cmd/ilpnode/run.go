// Copyright (c) 2023 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/interledger-labs/ilp-node
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/interledger-labs/ilp-node"
	"github.com/interledger-labs/ilp-node/directory/local"
	"github.com/interledger-labs/ilp-node/ledger/memledger"
	"github.com/interledger-labs/ilp-node/log"
)

const (
	// flag names for run command.
	loglevelF         = "loglevel"
	logfileF          = "logfile"
	ledgerconfigfileF = "ledgerconfigfile"
	directoryfileF    = "directoryfile"
	configfileF       = "configfile" // can only be specified in flag, not via config file.

	// default values for flags in run command.
	defaultConfigFile = "node.yaml"
	defaultLogLevel   = "debug"
)

// nodeConfig defines the node level configuration parameters. The parameters
// of the ledger itself live in a separate file parsed by the memledger
// package.
type nodeConfig struct {
	LogLevel         string
	LogFile          string
	LedgerConfigFile string
	DirectoryFile    string
}

var (
	// Viper instance for parsing node configuration file. Each flag in the nodeCfgFlags list (that are defined
	// on the run command) will also be attached to the viper instance, so that the values from flags (when
	// specified), override the values defined in the configuration files.
	nodeCfgViper *viper.Viper

	// Flags corresponding to node configuration parameters. Each of this flag can individually override the
	// default values in config file. Also, the node configuration can be fully specified by using all of these
	// flags, in which case no config file is needed and configFile flag can be unspecified.
	nodeCfgFlags = []string{
		loglevelF,
		logfileF,
		ledgerconfigfileF,
		directoryfileF,
	}
)

func init() {
	rootCmd.AddCommand(runCmd)
	defineFlags()

	nodeCfgViper = viper.New()

	// Bind the configuration flags to viper instance,
	// values in flags (when specified), takes precedence over those in config file.
	var err error
	for i := range nodeCfgFlags {
		if err = nodeCfgViper.BindPFlag(nodeCfgFlags[i], runCmd.Flags().Lookup(nodeCfgFlags[i])); err != nil {
			panic(err)
		}
	}
}

func defineFlags() {
	runCmd.Flags().String(configfileF, defaultConfigFile, "node config file")

	// All these flags should have zero values for defaults, as their only purpose is allow the user to
	// explicitly specify the configuration.
	runCmd.Flags().String(loglevelF, "", "Log level. Supported levels: debug, info, error")
	runCmd.Flags().String(logfileF, "", "Log file path. Use empty string for stdout")
	runCmd.Flags().String(ledgerconfigfileF, "", "Config file of the in-memory ledger to host")
	runCmd.Flags().String(directoryfileF, "", "Yaml file listing the connector addresses on the ledger")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the ilpnode",
	Long: `Start the interledger node. It hosts the configured in-memory ledger,
attaches one adaptor per account and logs all ledger events until interrupted.

Configuration can be specified in the config file or via flags. Values in the
flags override that in the config file.

If no flags are specified, default path for config file is used. However, if
all the config flags are specified, config file is ignored.`,
	Run: run,
}

func run(cmd *cobra.Command, args []string) {
	nodeCfg := parseNodeConfig(cmd.LocalNonPersistentFlags(), nodeCfgViper)

	if nodeCfg.LogLevel == "" {
		nodeCfg.LogLevel = defaultLogLevel
	}
	if err := log.InitLogger(nodeCfg.LogLevel, nodeCfg.LogFile); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	ledgerCfg, err := memledger.ParseConfig(nodeCfg.LedgerConfigFile)
	if err != nil {
		fmt.Printf("Error reading ledger config file: %v\n", err)
		os.Exit(1)
	}
	if nodeCfg.DirectoryFile != "" {
		ledgerCfg.DirectoryFile = nodeCfg.DirectoryFile
	}

	var connectorDir ilp.ConnectorDirectory
	if ledgerCfg.DirectoryFile != "" {
		if connectorDir, err = local.New(ledgerCfg.DirectoryFile); err != nil {
			fmt.Printf("Error reading connector directory file: %v\n", err)
			os.Exit(1)
		}
	}

	l, apiErr := memledger.New(ledgerCfg, connectorDir)
	if apiErr != nil {
		fmt.Printf("Error initializing ledger: %v\n", apiErr)
		os.Exit(1)
	}

	adaptors, apiErr := attachAdaptors(l, ledgerCfg)
	if apiErr != nil {
		fmt.Printf("Error attaching adaptors: %v\n", apiErr)
		os.Exit(1)
	}

	fmt.Printf("Running ilp node hosting ledger %s with %d accounts. Press Ctrl-C to stop.\n",
		ledgerCfg.LedgerPrefix, len(ledgerCfg.Accounts))

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	for _, a := range adaptors {
		a.Disconnect()
		a.Close()
	}
	if connectorDir != nil {
		if err := connectorDir.UpdateStorage(); err != nil {
			fmt.Printf("Error updating connector directory storage: %v\n", err)
		}
	}
	fmt.Println("Stopped ilp node.")
}

// attachAdaptors sets up one connected adaptor per configured account, each
// logging the events it receives.
func attachAdaptors(l *memledger.Ledger, cfg memledger.Config) ([]*memledger.Adaptor, ilp.APIError) {
	prefix, apiErr := ilp.ParseAddress(cfg.LedgerPrefix)
	if apiErr != nil {
		return nil, apiErr
	}

	adaptors := make([]*memledger.Adaptor, 0, len(cfg.Accounts))
	for _, acc := range cfg.Accounts {
		addr, apiErr := prefix.WithSegment(acc.Segment)
		if apiErr != nil {
			return nil, apiErr
		}
		a, apiErr := l.NewAdaptor(addr)
		if apiErr != nil {
			return nil, apiErr
		}

		logger := log.NewLoggerWithField("account", addr.String())
		a.SetEventHandler(func(e ilp.LedgerEvent) {
			logger.WithField("event", fmt.Sprintf("%T", e)).Infof("%+v", e)
		})
		a.Connect()
		adaptors = append(adaptors, a)
	}
	return adaptors, nil
}

func parseNodeConfig(fs *pflag.FlagSet, v *viper.Viper) nodeConfig {
	// Ignore config file, if all config flags are specified.
	if !areAllFlagsSpecified(fs, nodeCfgFlags...) {
		nodeCfgFile, err := fs.GetString(configfileF)
		if err != nil {
			panic("unknown flag configfile\n")
		}

		// Read config from file.
		v.SetConfigFile(filepath.Clean(nodeCfgFile))
		v.SetConfigType("yaml")
		err = v.ReadInConfig()
		if err != nil {
			fmt.Printf("Error reading node config file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Using node config file - %s\n", nodeCfgFile)
	}

	// Copy the configuration from viper to struct.
	var nodeCfg nodeConfig
	err := v.Unmarshal(&nodeCfg)
	if err != nil {
		fmt.Printf("Error marshaling node config from viper instance: %v\n", err)
		os.Exit(1)
	}
	return nodeCfg
}
