// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// secp256k1Suite implements EcdsaSecp256k1Signature2019. Signature and
// public key are hex-encoded; the message is SHA-256 hashed before ECDSA
// verification over the secp256k1 curve.
type secp256k1Suite struct{}

const secpPrivateKeySize = 32

func (secp256k1Suite) generateKeyPair() (KeyPair, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return KeyPair{}, err
	}

	return KeyPair{
		Private: priv.Serialize(),
		Public:  priv.PubKey().SerializeCompressed(),
	}, nil
}

func (secp256k1Suite) privateKey(priv []byte) (*secp256k1.PrivateKey, error) {
	if len(priv) != secpPrivateKeySize {
		return nil, &KeyDecodingError{
			Encoding: "hex",
			Err:      fmt.Errorf("invalid secp256k1 private key length %v", len(priv)),
		}
	}
	return secp256k1.PrivKeyFromBytes(priv), nil
}

func (s secp256k1Suite) derivePublic(priv []byte) ([]byte, error) {
	sk, err := s.privateKey(priv)
	if err != nil {
		return nil, err
	}
	return sk.PubKey().SerializeCompressed(), nil
}

func (s secp256k1Suite) sign(message, priv []byte) ([]byte, error) {
	sk, err := s.privateKey(priv)
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(message)
	return secpecdsa.Sign(sk, digest[:]).Serialize(), nil
}

func (secp256k1Suite) verify(message, sig []byte, publicKey string) error {
	raw, err := hex.DecodeString(publicKey)
	if err != nil {
		return &KeyDecodingError{Encoding: "hex", Err: err}
	}

	pub, err := secp256k1.ParsePubKey(raw)
	if err != nil {
		return &KeyDecodingError{Encoding: "hex", Err: err}
	}

	es, err := parseECDSASignature(sig)
	if err != nil {
		return err
	}

	digest := sha256.Sum256(message)
	if !es.Verify(digest[:], pub) {
		return ErrSignatureInvalid
	}

	return nil
}

// parseECDSASignature accepts a DER-encoded signature or the compact
// 64-byte r||s form.
func parseECDSASignature(sig []byte) (*secpecdsa.Signature, error) {
	es, derErr := secpecdsa.ParseDERSignature(sig)
	if derErr == nil {
		return es, nil
	}

	if len(sig) != 64 {
		return nil, &KeyDecodingError{Encoding: "hex", Err: derErr}
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow {
		return nil, &KeyDecodingError{Encoding: "hex", Err: fmt.Errorf("signature r overflows curve order")}
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow {
		return nil, &KeyDecodingError{Encoding: "hex", Err: fmt.Errorf("signature s overflows curve order")}
	}

	return secpecdsa.NewSignature(&r, &s), nil
}

func (secp256k1Suite) decodeSignature(p *Proof) ([]byte, error) {
	sig, err := hex.DecodeString(p.ProofValue)
	if err != nil {
		return nil, &KeyDecodingError{Encoding: "hex", Err: err}
	}
	return sig, nil
}

func (secp256k1Suite) attach(p *Proof, sig []byte) {
	p.ProofValue = hex.EncodeToString(sig)
}

func (secp256k1Suite) encodePublic(pub []byte) string {
	return hex.EncodeToString(pub)
}
