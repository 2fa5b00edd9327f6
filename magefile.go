// Copyright (c) 2024-2026, Sonate Labs. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

//go:build mage
// +build mage

package main

import (
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// ldFlags returns linker flags that embed version metadata from git into the
// receipttool binary.
func ldFlags() string {
	vals := []string{
		"-X main.builtBy=mage",
		"-X main.date=" + time.Now().UTC().Format(time.RFC3339),
	}

	if d, err := describeHead(); err == nil {
		vals = append(vals, "-X main.commit="+d.ref.Hash().String())

		if d.isClean {
			vals = append(vals, "-X main.state=clean")
		} else {
			vals = append(vals, "-X main.state=dirty")
		}

		if v, err := getVersion(d); err == nil {
			vals = append(vals, "-X main.version="+v.String())
		}
	}

	return strings.Join(vals, " ")
}

// Build compiles all source code.
func Build() error {
	return sh.RunV(mg.GoCmd(), "build", "-ldflags", ldFlags(), "./...")
}

// Install installs the receipttool binary to GOBIN.
func Install() error {
	return sh.RunV(mg.GoCmd(), "install", "-ldflags", ldFlags(), "./cmd/receipttool")
}

// Test runs all unit tests.
func Test() error {
	return sh.RunV(mg.GoCmd(), "test", "-race", "-cover", "./...")
}

// Cover runs all unit tests, writing a coverage profile to path.
func Cover(path string) error {
	return sh.RunV(mg.GoCmd(), "test", "-race", "-coverprofile", path, "./...")
}

// Default is the mage target run when none is specified.
var Default = Build
