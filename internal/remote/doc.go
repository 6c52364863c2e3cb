// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package remote fetches artifacts referenced by s3:// URIs into local
// files so the loaders can treat them like any other input. Downloads go
// through the on-disk cache to keep repeated diffs of the same object cheap.
package remote
