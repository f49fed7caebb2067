// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/colfilter/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context and whether stdout is a terminal.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	Interactive bool
	StartingDir string
}
