// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/sigstore/sigstore/pkg/signature"
)

// ed25519Suite implements Ed25519Signature2020. Signature and public key are
// multibase-encoded with the mandatory z prefix (base58btc). Signing is
// deterministic per RFC 8032; no randomness is consumed at sign time.
type ed25519Suite struct{}

func (ed25519Suite) generateKeyPair() (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return KeyPair{}, err
	}

	return KeyPair{Private: priv, Public: pub}, nil
}

// privateKey accepts a 64-byte private key or a 32-byte seed.
func (ed25519Suite) privateKey(priv []byte) (ed25519.PrivateKey, error) {
	switch len(priv) {
	case ed25519.PrivateKeySize:
		return ed25519.PrivateKey(priv), nil
	case ed25519.SeedSize:
		return ed25519.NewKeyFromSeed(priv), nil
	default:
		return nil, &KeyDecodingError{
			Encoding: "multibase",
			Err:      fmt.Errorf("invalid ed25519 private key length %v", len(priv)),
		}
	}
}

func (s ed25519Suite) derivePublic(priv []byte) ([]byte, error) {
	sk, err := s.privateKey(priv)
	if err != nil {
		return nil, err
	}
	return sk.Public().(ed25519.PublicKey), nil
}

func (s ed25519Suite) sign(message, priv []byte) ([]byte, error) {
	sk, err := s.privateKey(priv)
	if err != nil {
		return nil, err
	}

	sv, err := signature.LoadED25519Signer(sk)
	if err != nil {
		return nil, err
	}

	return sv.SignMessage(bytes.NewReader(message))
}

func (ed25519Suite) verify(message, sig []byte, publicKey string) error {
	pub, err := multibaseDecode(publicKey)
	if err != nil {
		return err
	}

	if len(pub) != ed25519.PublicKeySize {
		return &KeyDecodingError{
			Encoding: "multibase",
			Err:      fmt.Errorf("invalid ed25519 public key length %v", len(pub)),
		}
	}

	v, err := signature.LoadED25519Verifier(ed25519.PublicKey(pub))
	if err != nil {
		return &KeyDecodingError{Encoding: "multibase", Err: err}
	}

	if err := v.VerifySignature(bytes.NewReader(sig), bytes.NewReader(message)); err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}

	return nil
}

func (ed25519Suite) decodeSignature(p *Proof) ([]byte, error) {
	return multibaseDecode(p.ProofValue)
}

func (ed25519Suite) attach(p *Proof, sig []byte) {
	p.ProofValue = multibaseEncode(sig)
}

func (ed25519Suite) encodePublic(pub []byte) string {
	return multibaseEncode(pub)
}
