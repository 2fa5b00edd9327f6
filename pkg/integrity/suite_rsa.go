// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"strings"

	"github.com/sigstore/sigstore/pkg/cryptoutils"
	"github.com/sigstore/sigstore/pkg/signature"
)

// rsaPSSSuite implements RsaSignature2018 and JsonWebSignature2020. The
// signature is RSASSA-PSS over SHA-256 with salt length equal to the digest
// length, base64-encoded in the jws field; the public key is PEM-encoded.
type rsaPSSSuite struct{}

const rsaKeyBits = 2048

func pssOptions() *rsa.PSSOptions {
	return &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: crypto.SHA256}
}

func (s rsaPSSSuite) generateKeyPair() (KeyPair, error) {
	sk, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return KeyPair{}, err
	}

	der, err := x509.MarshalPKCS8PrivateKey(sk)
	if err != nil {
		return KeyPair{}, err
	}
	priv := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	pub, err := cryptoutils.MarshalPublicKeyToPEM(sk.Public())
	if err != nil {
		return KeyPair{}, err
	}

	return KeyPair{Private: priv, Public: pub}, nil
}

func (rsaPSSSuite) privateKey(priv []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(priv)
	if block == nil {
		return nil, &KeyDecodingError{Encoding: "pem", Err: fmt.Errorf("no PEM block found")}
	}

	if sk, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		if rk, ok := sk.(*rsa.PrivateKey); ok {
			return rk, nil
		}
		return nil, &KeyDecodingError{Encoding: "pem", Err: fmt.Errorf("not an RSA private key")}
	}

	sk, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, &KeyDecodingError{Encoding: "pem", Err: err}
	}

	return sk, nil
}

func (s rsaPSSSuite) derivePublic(priv []byte) ([]byte, error) {
	sk, err := s.privateKey(priv)
	if err != nil {
		return nil, err
	}
	return cryptoutils.MarshalPublicKeyToPEM(sk.Public())
}

func (s rsaPSSSuite) sign(message, priv []byte) ([]byte, error) {
	sk, err := s.privateKey(priv)
	if err != nil {
		return nil, err
	}

	sv, err := signature.LoadRSAPSSSigner(sk, crypto.SHA256, pssOptions())
	if err != nil {
		return nil, err
	}

	return sv.SignMessage(bytes.NewReader(message))
}

func (s rsaPSSSuite) verify(message, sig []byte, publicKey string) error {
	pub, err := cryptoutils.UnmarshalPEMToPublicKey([]byte(publicKey))
	if err != nil {
		return &KeyDecodingError{Encoding: "pem", Err: err}
	}

	rpub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return &KeyDecodingError{Encoding: "pem", Err: fmt.Errorf("not an RSA public key")}
	}

	v, err := signature.LoadRSAPSSVerifier(rpub, crypto.SHA256, pssOptions())
	if err != nil {
		return &KeyDecodingError{Encoding: "pem", Err: err}
	}

	if err := v.VerifySignature(bytes.NewReader(sig), bytes.NewReader(message)); err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}

	return nil
}

// decodeSignature accepts the signature in the jws field (falling back to
// proofValue), base64-encoded in either standard or URL-safe form, padded or
// not. A detached JWS compact serialization is reduced to its final segment.
func (rsaPSSSuite) decodeSignature(p *Proof) ([]byte, error) {
	enc := p.JWS
	if enc == "" {
		enc = p.ProofValue
	}

	if i := strings.LastIndexByte(enc, '.'); i >= 0 {
		enc = enc[i+1:]
	}

	for _, e := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if b, err := e.DecodeString(enc); err == nil {
			return b, nil
		}
	}

	return nil, &KeyDecodingError{Encoding: "base64", Err: fmt.Errorf("malformed signature value")}
}

func (rsaPSSSuite) attach(p *Proof, sig []byte) {
	p.JWS = base64.StdEncoding.EncodeToString(sig)
}

func (rsaPSSSuite) encodePublic(pub []byte) string {
	return string(pub)
}
