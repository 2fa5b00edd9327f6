// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package receipttool

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sonate/trust-receipts/pkg/integrity"
)

// readDocument reads a JSON object from path.
func readDocument(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse %v: %w", path, err)
	}

	return doc, nil
}

// Sign reads a JSON document from docPath, signs it with the alg key at
// keyPath, and writes the document with its proof embedded.
func (a *App) Sign(alg integrity.Algorithm, keyPath, docPath string) error {
	s, err := loadSigner(alg, keyPath)
	if err != nil {
		return err
	}

	doc, err := readDocument(docPath)
	if err != nil {
		return err
	}

	p, _, err := s.SignDocument(doc)
	if err != nil {
		return err
	}

	signed := integrity.WithoutProof(doc)
	signed["proof"] = p

	b, err := json.MarshalIndent(signed, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintf(a.opts.out, "%s\n", b)
	return nil
}
