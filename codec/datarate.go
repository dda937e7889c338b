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

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// alphaSplit matches a single alphabetic character, used to tokenize a
// LoRa datarate string into its numeric segments.
var alphaSplit = regexp.MustCompile(`[A-Za-z]`)

// A DataRate is either a LoRa spreading-factor/bandwidth pair, encoded as
// the string "SF{sf}BW{bw_khz}", or an FSK bitrate in bits/sec, encoded as
// a bare JSON number.
type DataRate struct {
	LoRa *LoRaRate

	// FSK is the bitrate in bits/sec. Only meaningful when LoRa is nil.
	FSK uint32
}

// A LoRaRate is a LoRa spreading factor and bandwidth.
type LoRaRate struct {
	SF uint8

	// Bandwidth is in Hz, e.g. 125000.
	Bandwidth uint32
}

// NewLoRaDataRate returns a DataRate for the given LoRa spreading factor
// and bandwidth (in Hz).
func NewLoRaDataRate(sf uint8, bandwidthHz uint32) DataRate {
	return DataRate{LoRa: &LoRaRate{SF: sf, Bandwidth: bandwidthHz}}
}

// NewFSKDataRate returns a DataRate for the given FSK bitrate (bits/sec).
func NewFSKDataRate(bitrate uint32) DataRate {
	return DataRate{FSK: bitrate}
}

// MarshalJSON implements json.Marshaler.
func (d DataRate) MarshalJSON() ([]byte, error) {
	if d.LoRa != nil {
		s := fmt.Sprintf("SF%dBW%d", d.LoRa.SF, d.LoRa.Bandwidth/1000)
		return json.Marshal(s)
	}
	return json.Marshal(d.FSK)
}

// UnmarshalJSON implements json.Unmarshaler. A JSON number decodes to an
// FSK bitrate, truncated to 32 bits. A JSON string must tokenize into
// exactly 5 segments when split on individual alphabetic characters
// ("", "", sf, "", bw_khz); anything else is a MalformedJSONError.
func (d *DataRate) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return &MalformedJSONError{Err: fmt.Errorf("empty datarate")}
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return &MalformedJSONError{Err: err}
		}

		parts := alphaSplit.Split(s, -1)
		if len(parts) != 5 {
			return &MalformedJSONError{Err: fmt.Errorf("invalid lora datarate %q", s)}
		}

		sf, err := strconv.ParseUint(parts[2], 10, 8)
		if err != nil {
			return &MalformedJSONError{Err: fmt.Errorf("invalid spreading factor in %q: %w", s, err)}
		}
		bwKHz, err := strconv.ParseUint(parts[4], 10, 32)
		if err != nil {
			return &MalformedJSONError{Err: fmt.Errorf("invalid bandwidth in %q: %w", s, err)}
		}

		d.LoRa = &LoRaRate{SF: uint8(sf), Bandwidth: uint32(bwKHz) * 1000}
		d.FSK = 0
		return nil
	}

	var n uint64
	if err := json.Unmarshal(b, &n); err != nil {
		return &MalformedJSONError{Err: err}
	}
	d.LoRa = nil
	d.FSK = uint32(n)
	return nil
}
