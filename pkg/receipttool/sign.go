// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package receipttool

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sonate/trust-receipts/pkg/integrity"
)

// addAlgorithmFlag declares the --algorithm flag on cmd, bound to p.
func addAlgorithmFlag(cmd *cobra.Command, p *string) {
	algs := make([]string, 0, len(integrity.SupportedAlgorithms()))
	for _, alg := range integrity.SupportedAlgorithms() {
		algs = append(algs, string(alg))
	}

	cmd.Flags().StringVar(p, "algorithm", string(integrity.Ed25519Signature2020),
		fmt.Sprintf("proof type (%v)", strings.Join(algs, ", ")))
}

// getSign returns a command that signs a JSON document.
func (c *command) getSign() *cobra.Command {
	var algorithm string

	cmd := &cobra.Command{
		Use:     "sign <key_path> <document_path>",
		Short:   "Sign document",
		Long:    "Sign a JSON document, producing the document with an embedded proof.",
		Example: c.opts.rootPath + " sign key doc.json",
		Args:    cobra.ExactArgs(2),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Sign(integrity.Algorithm(algorithm), args[0], args[1])
		},
	}

	addAlgorithmFlag(cmd, &algorithm)

	return cmd
}
