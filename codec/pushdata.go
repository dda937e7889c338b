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

import "encoding/json"

// A PushDataPayload is the JSON body of a PUSH_DATA frame. Stat is
// omitted from the emitted JSON when nil; RXPK is always emitted, even
// when empty.
type PushDataPayload struct {
	RXPK []RXPK
	Stat *Stat
}

// MarshalJSON implements json.Marshaler.
func (p PushDataPayload) MarshalJSON() ([]byte, error) {
	rxpk := p.RXPK
	if rxpk == nil {
		rxpk = []RXPK{}
	}

	w := newObjectWriter()
	w.field("rxpk", rxpk)
	if p.Stat != nil {
		w.field("stat", *p.Stat)
	}
	return w.bytes()
}

// A PushData is the PUSH_DATA frame a gateway sends upstream, carrying
// uplink frames and/or gateway statistics.
type PushData struct {
	RandomToken uint16
	GatewayMAC  [8]byte
	Payload     PushDataPayload
}

// MarshalBinary implements encoding.BinaryMarshaler, producing
// 0x02 | token | 0x00 | gateway_id[8] | json(payload).
func (p PushData) MarshalBinary() ([]byte, error) {
	body, err := json.Marshal(p.Payload)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 4+8+len(body))
	buf[0] = ProtocolVersion
	buf[1] = byte(p.RandomToken >> 8)
	buf[2] = byte(p.RandomToken)
	buf[3] = byte(FrameTypePushData)
	copy(buf[4:12], p.GatewayMAC[:])
	copy(buf[12:], body)
	return buf, nil
}
