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

// A PushAck acknowledges a PUSH_DATA frame carrying the same token.
type PushAck struct {
	RandomToken uint16
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a PushAck) MarshalBinary() ([]byte, error) {
	return []byte{ProtocolVersion, byte(a.RandomToken >> 8), byte(a.RandomToken), byte(FrameTypePushAck)}, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It fails with a
// *MalformedFrameError if b is not exactly 4 bytes, does not carry the
// expected protocol version, or does not carry the PUSH_ACK identifier.
func (a *PushAck) UnmarshalBinary(b []byte) error {
	token, err := checkPrefix(b, 4, FrameTypePushAck)
	if err != nil {
		return err
	}
	if len(b) != 4 {
		return malformed("expected exactly 4 bytes, got %d", len(b))
	}
	a.RandomToken = token
	return nil
}

// A PullAck acknowledges a PULL_DATA frame carrying the same token.
type PullAck struct {
	RandomToken uint16
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (a PullAck) MarshalBinary() ([]byte, error) {
	return []byte{ProtocolVersion, byte(a.RandomToken >> 8), byte(a.RandomToken), byte(FrameTypePullAck)}, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It fails with a
// *MalformedFrameError if b is not exactly 4 bytes, does not carry the
// expected protocol version, or does not carry the PULL_ACK identifier.
func (a *PullAck) UnmarshalBinary(b []byte) error {
	token, err := checkPrefix(b, 4, FrameTypePullAck)
	if err != nil {
		return err
	}
	if len(b) != 4 {
		return malformed("expected exactly 4 bytes, got %d", len(b))
	}
	a.RandomToken = token
	return nil
}
