// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

/*
Package integrity implements functions to create and verify digital-signature
proofs over trust-receipt payloads.

Payloads are reduced to canonical bytes (RFC 8785) before signing, so that
independent producers and verifiers of a structurally equal payload always
operate on identical input. A proof names its algorithm; the supported set is
closed: Ed25519Signature2020, EcdsaSecp256k1Signature2019, RsaSignature2018
and JsonWebSignature2020.

# Sign

To create a proof over a payload, create a Signer with algorithm-specific
private key material:

	s, err := integrity.NewSigner(integrity.Ed25519Signature2020, privateKey)

Optionally, supply additional options. For example, to set the verification
method named by the proof:

	s, err := integrity.NewSigner(alg, privateKey, integrity.OptSignWithVerificationMethod("did:key:..."))

Finally, to produce a proof:

	p, sig, err := s.SignDocument(doc)

# Verify

To verify a proof against a payload, create a Verifier:

	v, err := integrity.NewVerifier()

Verification runs on untrusted input, so it never fails with an error: all
decoding and cryptographic failures are converted into the returned result:

	r := v.Verify(payload, p, publicKey)
	if !r.Valid() {
		// r.Error() describes the reason.
	}

# Backend

Signer and Verifier share a Backend, which holds the one-time initialized
crypto handles. Construct one explicitly to share across instances or to
pre-warm at startup:

	b := integrity.NewBackend()
	if err := b.Up(); err != nil { ... }
	v, err := integrity.NewVerifier(integrity.OptVerifyWithBackend(b))

All operations after initialization are independent, side-effect-free and
safe for concurrent use.
*/
package integrity
