// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI surface for modeldiff. It wires flags,
// validators, output selection, and the interactive entry browser.
package command
