// Copyright 2026 The CoordKit Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/coordkit/coordkit/cmd"
)

var Version = "development"

func main() {
	cmd.Execute(Version)
}
