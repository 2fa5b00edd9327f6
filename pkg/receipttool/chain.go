// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package receipttool

import (
	"github.com/spf13/cobra"

	"github.com/sonate/trust-receipts/pkg/integrity"
)

// addDBFlag declares the --db flag on cmd, bound to p.
func addDBFlag(cmd *cobra.Command, p *string) {
	cmd.Flags().StringVar(p, "db", "receipts.db", "path to the receipt database")
}

// getChainAppend returns a command that appends a receipt to a session chain.
func (c *command) getChainAppend() *cobra.Command {
	var (
		algorithm string
		db        string
		keyPath   string
	)

	cmd := &cobra.Command{
		Use:     "append <session_id> <payload_path>",
		Short:   "Append receipt",
		Long:    "Sign a JSON payload and append the resulting receipt to a session chain.",
		Example: c.opts.rootPath + " chain append --db receipts.db --key key session-42 payload.json",
		Args:    cobra.ExactArgs(2),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ChainAppend(cmd.Context(), db, args[0], integrity.Algorithm(algorithm), keyPath, args[1])
		},
	}

	addAlgorithmFlag(cmd, &algorithm)
	addDBFlag(cmd, &db)
	cmd.Flags().StringVar(&keyPath, "key", "", "path to the private key")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

// getChainVerify returns a command that validates the linkage of a session
// chain.
func (c *command) getChainVerify() *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:     "verify <session_id>",
		Short:   "Verify chain",
		Long:    "Validate the hash-chain linkage of a session's receipts.",
		Example: c.opts.rootPath + " chain verify --db receipts.db session-42",
		Args:    cobra.ExactArgs(1),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return c.app.ChainVerify(cmd.Context(), db, args[0])
		},
	}

	addDBFlag(cmd, &db)

	return cmd
}

// getChainSessions returns a command that lists stored sessions.
func (c *command) getChainSessions() *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:     "sessions",
		Short:   "List sessions",
		Long:    "List the sessions stored in the receipt database.",
		Example: c.opts.rootPath + " chain sessions --db receipts.db",
		Args:    cobra.ExactArgs(0),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ChainSessions(cmd.Context(), db)
		},
	}

	addDBFlag(cmd, &db)

	return cmd
}

// getChain returns a command that groups chain subcommands.
func (c *command) getChain() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Manage receipt chains",
		Long:  "Append to, verify and list hash-chained receipt sessions.",
	}

	cmd.AddCommand(
		c.getChainAppend(),
		c.getChainVerify(),
		c.getChainSessions(),
	)

	return cmd
}
