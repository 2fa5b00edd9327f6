// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package receipttool

import (
	"github.com/spf13/cobra"

	"github.com/sonate/trust-receipts/pkg/secure"
)

// getNonce returns a command that generates a nonce.
func (c *command) getNonce() *cobra.Command {
	return &cobra.Command{
		Use:     "nonce",
		Short:   "Generate nonce",
		Long:    "Generate a single-use random nonce.",
		Example: c.opts.rootPath + " nonce",
		Args:    cobra.ExactArgs(0),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Nonce()
		},
		DisableFlagsInUseLine: true,
	}
}

// getAPIKey returns a command that generates an API key.
func (c *command) getAPIKey() *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:     "apikey",
		Short:   "Generate API key",
		Long:    "Generate a random API key.",
		Example: c.opts.rootPath + " apikey --length 32",
		Args:    cobra.ExactArgs(0),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.APIKey(length)
		},
	}

	cmd.Flags().IntVar(&length, "length", secure.APIKeySize, "number of random bytes in the key")

	return cmd
}
