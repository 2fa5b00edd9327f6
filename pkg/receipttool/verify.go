// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package receipttool

import (
	"github.com/spf13/cobra"
)

// getVerify returns a command that verifies a signed JSON document.
func (c *command) getVerify() *cobra.Command {
	return &cobra.Command{
		Use:     "verify <document_path> <public_key_path>",
		Short:   "Verify document",
		Long:    "Verify the proof embedded in a signed JSON document.",
		Example: c.opts.rootPath + " verify signed.json key.pub",
		Args:    cobra.ExactArgs(2),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return c.app.Verify(args[0], args[1])
		},
		DisableFlagsInUseLine: true,
	}
}
