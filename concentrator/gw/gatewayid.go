// Copyright 2024 The gwbridge Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gw

import (
	"encoding/hex"
	"fmt"
)

// A GatewayID is the 8-byte gateway identifier. The codec package carries
// it as a raw [8]byte; the concentrator RPC boundary carries it as a
// lowercase 16-character hex string instead.
type GatewayID [8]byte

// String returns the 16-character lowercase hex encoding used on the
// concentrator RPC boundary.
func (id GatewayID) String() string {
	return hex.EncodeToString(id[:])
}

// ParseGatewayID decodes the 16-character hex string the concentrator
// uses for gateway identifiers.
func ParseGatewayID(s string) (GatewayID, error) {
	var id GatewayID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("gw: invalid gateway id %q: %w", s, err)
	}
	if len(b) != len(id) {
		return id, fmt.Errorf("gw: invalid gateway id %q: want %d bytes, got %d", s, len(id), len(b))
	}
	copy(id[:], b)
	return id, nil
}
