// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package receipttool

import (
	"fmt"

	"github.com/sonate/trust-receipts/pkg/secure"
)

// Nonce writes a freshly generated nonce to output.
func (a *App) Nonce() error {
	n, err := secure.GenerateNonce()
	if err != nil {
		return err
	}

	fmt.Fprintln(a.opts.out, n)
	return nil
}

// APIKey writes a freshly generated API key of n random bytes to output.
func (a *App) APIKey(n int) error {
	k, err := secure.GenerateAPIKey(n)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.opts.out, k)
	return nil
}
