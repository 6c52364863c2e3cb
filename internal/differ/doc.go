// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes structural differences between two canonical value
// trees, producing an ordered list of change entries.
package differ
