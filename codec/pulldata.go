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

package codec

// A PullData is the keepalive frame a gateway sends upstream.
type PullData struct {
	RandomToken uint16
	GatewayMAC  [8]byte
}

// MarshalBinary implements encoding.BinaryMarshaler, producing exactly 12
// bytes: 0x02 | token | 0x02 | gateway_id[8].
func (p PullData) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 12)
	buf[0] = ProtocolVersion
	buf[1] = byte(p.RandomToken >> 8)
	buf[2] = byte(p.RandomToken)
	buf[3] = byte(FrameTypePullData)
	copy(buf[4:12], p.GatewayMAC[:])
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (p *PullData) UnmarshalBinary(b []byte) error {
	token, err := checkPrefix(b, 12, FrameTypePullData)
	if err != nil {
		return err
	}
	if len(b) != 12 {
		return malformed("expected exactly 12 bytes, got %d", len(b))
	}

	p.RandomToken = token
	copy(p.GatewayMAC[:], b[4:12])
	return nil
}
