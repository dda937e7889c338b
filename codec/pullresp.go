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

// A PullRespPayload is the JSON body of a PULL_RESP frame.
type PullRespPayload struct {
	TXPK TXPK `json:"txpk"`
}

// A PullResp schedules a downlink transmission. Unlike PUSH_DATA and
// TX_ACK, it carries no gateway identifier: the server already knows
// which gateway it is replying to.
type PullResp struct {
	RandomToken uint16
	Payload     PullRespPayload
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (p PullResp) MarshalBinary() ([]byte, error) {
	body, err := json.Marshal(p.Payload)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 4+len(body))
	buf[0] = ProtocolVersion
	buf[1] = byte(p.RandomToken >> 8)
	buf[2] = byte(p.RandomToken)
	buf[3] = byte(FrameTypePullResp)
	copy(buf[4:], body)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It fails with a
// *MalformedFrameError on a length/version/identifier mismatch, or a
// *MalformedJSONError if the body cannot be parsed.
func (p *PullResp) UnmarshalBinary(b []byte) error {
	token, err := checkPrefix(b, 5, FrameTypePullResp)
	if err != nil {
		return err
	}

	var payload PullRespPayload
	if err := json.Unmarshal(b[4:], &payload); err != nil {
		return &MalformedJSONError{Err: err}
	}

	p.RandomToken = token
	p.Payload = payload
	return nil
}
