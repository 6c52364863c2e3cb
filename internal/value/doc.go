// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package value defines the canonical tree representation that every compared
// input is converted into, plus the path type used to address nodes in it.
package value
