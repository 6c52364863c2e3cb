// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package loader turns files on disk into canonical value trees. Loaders are
// registered per file extension; anything unrecognized fails loudly rather
// than being treated as empty.
package loader
