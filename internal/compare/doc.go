// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package compare orchestrates comparisons between files and directories,
// delegating parsing to the loaders and the actual tree walk to the differ.
package compare
