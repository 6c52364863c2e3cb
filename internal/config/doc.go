// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config loads the optional modeldiff.yaml configuration file and
// provides dotted-key typed getters over it.
package config
