// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package receipttool

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sonate/trust-receipts/pkg/integrity"
)

// Verify checks the proof embedded in the JSON document at docPath against
// the public key at pubPath. A failed verification is reported on output and
// returned as an error so callers can exit non-zero.
func (a *App) Verify(docPath, pubPath string) error {
	doc, err := readDocument(docPath)
	if err != nil {
		return err
	}

	b, err := os.ReadFile(pubPath)
	if err != nil {
		return err
	}

	v, err := integrity.NewVerifier()
	if err != nil {
		return err
	}

	result := v.VerifyDocument(doc, strings.TrimSpace(string(b)))

	tw := tabwriter.NewWriter(a.opts.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Valid:\t%v\n", result.Valid())
	if alg := result.Algorithm(); alg != "" {
		fmt.Fprintf(tw, "Algorithm:\t%v\n", alg)
	}
	if err := result.Error(); err != nil {
		fmt.Fprintf(tw, "Error:\t%v\n", err)
	}
	tw.Flush()

	return result.Error()
}
