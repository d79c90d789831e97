// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/txcoord/configuration"
)

type metadata struct {
	file    string
	options *configuration.Options
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "txcoord-cli"
	app.Usage = "assemble, sign and broadcast chain transactions"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "config, c",
			Value: "",
			Usage: " configuration `FILE` [default: $XDG_CONFIG_HOME/txcoord-cli/txcoord.conf]",
		},
		cli.StringFlag{
			Name:  "node, N",
			Value: "",
			Usage: " node `HOST:PORT` or dns:`DOMAIN`, overrides configuration",
		},
		cli.BoolFlag{
			Name:  "offline, o",
			Usage: " do not connect to a node",
		},
		cli.StringFlag{
			Name:  "password, p",
			Value: "",
			Usage: " wallet `PASSWORD`",
		},
		cli.StringFlag{
			Name:  "use-agent, u",
			Value: "",
			Usage: " executable program that returns the password `EXE`",
		},
		cli.BoolFlag{
			Name:  "zero-agent-cache, z",
			Usage: " force re-entry of agent password",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate a new seed and its key pair, nothing is stored",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "testnet, t",
					Usage: " make a test network seed",
				},
			},
			Action: runGenerate,
		},
		{
			Name:      "wallet-create",
			Usage:     "create the keystore",
			ArgsUsage: "\n   (* = required)",
			Action:    runWalletCreate,
		},
		{
			Name:      "add-key",
			Usage:     "store a signing key for an account",
			ArgsUsage: "\n   (* = required, + = select one)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: "*account `NAME`",
				},
				cli.StringFlag{
					Name:  "permission, P",
					Value: "",
					Usage: " permission `LEVEL` [owner|active|memo] (default active)",
				},
				cli.StringFlag{
					Name:  "seed, s",
					Value: "",
					Usage: "+existing `SEED`",
				},
				cli.BoolFlag{
					Name:  "new, n",
					Usage: "+generate a new seed",
				},
			},
			Action: runAddKey,
		},
		{
			Name:      "set",
			Usage:     "store a configuration value",
			ArgsUsage: "KEY VALUE\n   KEY is one of: " + keyList(),
			Action:    runSet,
		},
		{
			Name:      "get",
			Usage:     "show configuration values",
			ArgsUsage: "[KEY]",
			Action:    runGet,
		},
		{
			Name:   "info",
			Usage:  "show session and chain information",
			Action: runInfo,
		},
		{
			Name:      "finalize",
			Usage:     "finalize an operation",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "name, n",
					Value: "",
					Usage: "*operation `NAME`",
				},
				cli.StringFlag{
					Name:  "fields, f",
					Value: "{}",
					Usage: " operation body as a `JSON` object",
				},
				cli.StringFlag{
					Name:  "account, a",
					Value: "",
					Usage: " authorizing `ACCOUNT` (default: default_account)",
				},
				cli.StringFlag{
					Name:  "permission, P",
					Value: "",
					Usage: " permission `LEVEL` [owner|active|memo] (default active)",
				},
				cli.StringFlag{
					Name:  "proposer, r",
					Value: "",
					Usage: " wrap in a proposal paid by `ACCOUNT`",
				},
				cli.BoolFlag{
					Name:  "unsigned, U",
					Usage: " return the buffer with signing information",
				},
				cli.BoolFlag{
					Name:  "bundle, B",
					Usage: " return the buffer snapshot without signing",
				},
				cli.BoolFlag{
					Name:  "nobroadcast, x",
					Usage: " sign but do not broadcast",
				},
				cli.StringFlag{
					Name:  "fee-asset, F",
					Value: "",
					Usage: " pay fees in `ASSET`",
				},
				cli.StringFlag{
					Name:  "blocking, b",
					Value: "",
					Usage: " wait for inclusion `LEVEL` [head|irreversible]",
				},
				cli.IntFlag{
					Name:  "timeout, t",
					Value: configuration.DefaultBlockingTimeout,
					Usage: " maximum wait in `SECONDS`, overrides configuration",
				},
			},
			Action: runFinalize,
		},
		{
			Name:  "version",
			Usage: "display txcoord-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	// read the configuration
	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress reading config file if certain commands
		command := c.Args().Get(0)
		if "version" == command || "help" == command || "" == command {
			return nil
		}

		file, err := configurationFile(c.GlobalString("config"))
		if nil != err {
			return err
		}

		if verbose {
			fmt.Fprintf(e, "reading config file: %s\n", file)
		}

		options, err := readOptions(file)
		if nil != err {
			return err
		}

		if node := c.GlobalString("node"); "" != node {
			options.Node = node
		}
		if c.GlobalBool("offline") {
			options.Offline = true
		}

		if err := os.MkdirAll(options.Logging.Directory, 0750); nil != err {
			return err
		}
		if err := logger.Initialise(options.Logging); nil != err {
			return err
		}

		c.App.Metadata["config"] = &metadata{
			file:    file,
			options: options,
			verbose: verbose,
			e:       e,
			w:       w,
		}

		return nil
	}

	app.After = func(c *cli.Context) error {
		if _, ok := c.App.Metadata["config"].(*metadata); ok {
			logger.Finalise()
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

// default configuration is under XDG_CONFIG_HOME
func configurationFile(file string) (string, error) {
	if "" != file {
		return filepath.Abs(file)
	}

	p := os.Getenv("XDG_CONFIG_HOME")
	if "" == p {
		return "", fmt.Errorf("XDG_CONFIG_HOME environment is not set")
	}
	return filepath.Join(p, "txcoord-cli", "txcoord.conf"), nil
}

// options from the file, or the defaults if it does not exist
func readOptions(file string) (*configuration.Options, error) {
	if _, err := os.Stat(file); nil == err {
		return configuration.GetOptions(file)
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	options := configuration.NewOptions()
	if err := options.Validate(); nil != err {
		return nil, err
	}
	dir := filepath.Dir(file)
	options.Logging.Directory = filepath.Join(dir, options.Logging.Directory)
	if "" == options.Keystore {
		options.Keystore = filepath.Join(dir, "wallet.json")
	}
	if "" == options.Store {
		options.Store = filepath.Join(dir, "settings.leveldb")
	}
	return options, nil
}
