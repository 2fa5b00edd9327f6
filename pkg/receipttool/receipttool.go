// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

// Package receipttool adds receipttool commands to a parent cobra.Command.
package receipttool

import (
	"github.com/spf13/cobra"

	"github.com/sonate/trust-receipts/internal/app/receipttool"
)

// commandOpts contains configured options.
type commandOpts struct {
	rootPath string
}

// CommandOpt are used to configure optional command behavior.
type CommandOpt func(*commandOpts) error

// command contains options and state for the receipttool commands.
type command struct {
	opts commandOpts
	app  *receipttool.App
}

// initApp initializes the receipttool app, directing output to cmd.
func (c *command) initApp(cmd *cobra.Command, _ []string) error {
	app, err := receipttool.New(receipttool.OptAppOutput(cmd.OutOrStdout()))
	c.app = app
	return err
}

// AddCommands adds receipttool commands to cmd according to opts.
//
// Commands are provided to generate signing key pairs, sign and verify JSON
// documents, manage hash-chained receipt sessions, and generate nonces and
// API keys.
func AddCommands(cmd *cobra.Command, opts ...CommandOpt) error {
	c := command{
		opts: commandOpts{
			rootPath: cmd.CommandPath(),
		},
	}

	for _, opt := range opts {
		if err := opt(&c.opts); err != nil {
			return err
		}
	}

	cmd.AddCommand(
		c.getKeygen(),
		c.getSign(),
		c.getVerify(),
		c.getChain(),
		c.getNonce(),
		c.getAPIKey(),
	)

	return nil
}
