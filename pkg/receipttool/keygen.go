// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package receipttool

import (
	"github.com/spf13/cobra"

	"github.com/sonate/trust-receipts/pkg/integrity"
)

// getKeygen returns a command that generates a signing key pair.
func (c *command) getKeygen() *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:     "keygen <private_key_path> <public_key_path>",
		Short:   "Generate key pair",
		Long:    "Generate a signing key pair for the selected proof type.",
		Example: c.opts.rootPath + " keygen --algorithm Ed25519Signature2020 key key.pub",
		Args:    cobra.ExactArgs(2),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Keygen(integrity.Algorithm(algorithm), args[0], args[1])
		},
	}

	addAlgorithmFlag(cmd, &algorithm)

	return cmd
}
