// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package receipttool

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/sonate/trust-receipts/pkg/integrity"
)

// encodePrivateKey returns priv in its on-disk form. RSA private keys are
// already PEM; other key material is hex-encoded.
func encodePrivateKey(alg integrity.Algorithm, priv []byte) []byte {
	switch alg {
	case integrity.RsaSignature2018, integrity.JsonWebSignature2020:
		return priv
	default:
		return []byte(hex.EncodeToString(priv) + "\n")
	}
}

// decodePrivateKey parses key material previously written by encodePrivateKey.
func decodePrivateKey(alg integrity.Algorithm, b []byte) ([]byte, error) {
	switch alg {
	case integrity.RsaSignature2018, integrity.JsonWebSignature2020:
		return b, nil
	default:
		return hex.DecodeString(strings.TrimSpace(string(b)))
	}
}

// Keygen generates a key pair for alg, writing the private key to privPath
// and the encoded public key to pubPath.
func (a *App) Keygen(alg integrity.Algorithm, privPath, pubPath string) error {
	kp, err := integrity.GenerateKeyPair(alg)
	if err != nil {
		return err
	}

	s, err := integrity.NewSigner(alg, kp.Private)
	if err != nil {
		return err
	}

	if err := os.WriteFile(privPath, encodePrivateKey(alg, kp.Private), 0o600); err != nil {
		return err
	}

	pub := s.PublicEncoded()
	if !strings.HasSuffix(pub, "\n") {
		pub += "\n"
	}
	if err := os.WriteFile(pubPath, []byte(pub), 0o644); err != nil {
		return err
	}

	fmt.Fprintf(a.opts.out, "Private key written to %v\n", privPath)
	fmt.Fprintf(a.opts.out, "Public key written to %v\n", pubPath)

	return nil
}

// loadSigner reads the private key for alg from keyPath and returns a signer
// configured with it.
func loadSigner(alg integrity.Algorithm, keyPath string, opts ...integrity.SignerOpt) (*integrity.Signer, error) {
	b, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, err
	}

	priv, err := decodePrivateKey(alg, b)
	if err != nil {
		return nil, err
	}

	return integrity.NewSigner(alg, priv, opts...)
}
