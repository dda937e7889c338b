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

// A TxAck reports the outcome of a scheduled downlink transmission. Error
// is "" for success, or one of the upstream error codes described in the
// Semtech protocol.
type TxAck struct {
	RandomToken uint16
	GatewayMAC  [8]byte
	Error       string
}

// MarshalBinary implements encoding.BinaryMarshaler, producing
// 0x02 | token | 0x05 | gateway_id[8] | json({"txpk_ack":{"error": ...}}).
func (a TxAck) MarshalBinary() ([]byte, error) {
	body, err := json.Marshal(struct {
		TxpkAck struct {
			Error string `json:"error"`
		} `json:"txpk_ack"`
	}{
		TxpkAck: struct {
			Error string `json:"error"`
		}{Error: a.Error},
	})
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 4+8+len(body))
	buf[0] = ProtocolVersion
	buf[1] = byte(a.RandomToken >> 8)
	buf[2] = byte(a.RandomToken)
	buf[3] = byte(FrameTypeTxAck)
	copy(buf[4:12], a.GatewayMAC[:])
	copy(buf[12:], body)
	return buf, nil
}
