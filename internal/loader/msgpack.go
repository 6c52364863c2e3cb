// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package loader

import (
	"fmt"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/modeldiff/modeldiff/internal/value"
)

// loadMsgpack parses a MessagePack document into the canonical tree.
// MessagePack maps carry no order guarantee here, so keys come out in the
// sorted order FromNative imposes on plain maps.
func loadMsgpack(path string) (*value.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err := msgpack.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("invalid msgpack document: %w", err)
	}

	v, err := value.FromNative(decoded)
	if err != nil {
		return nil, err
	}
	return v, nil
}
