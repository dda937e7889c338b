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

// A CodingRate is a LoRa forward-error-correction coding rate.
//
// Unknown or missing coding rates decode to CodingRateUndefined rather
// than failing: the upstream must be able to round-trip a coding rate it
// does not recognize without dropping the surrounding frame.
type CodingRate int

// Coding rate values, per the Semtech protocol. CodingRateUndefined
// marshals as JSON null.
const (
	CodingRateUndefined CodingRate = iota
	CodingRate4_5
	CodingRate4_6
	CodingRate4_7
	CodingRate4_8
)

var codingRateStrings = map[CodingRate]string{
	CodingRate4_5: "4/5",
	CodingRate4_6: "4/6",
	CodingRate4_7: "4/7",
	CodingRate4_8: "4/8",
}

var codingRateValues = map[string]CodingRate{
	"4/5": CodingRate4_5,
	"4/6": CodingRate4_6,
	"4/7": CodingRate4_7,
	"4/8": CodingRate4_8,
}

// String returns the protocol string for r, or "" for CodingRateUndefined.
func (r CodingRate) String() string {
	return codingRateStrings[r]
}

// MarshalJSON implements json.Marshaler.
func (r CodingRate) MarshalJSON() ([]byte, error) {
	if r == CodingRateUndefined {
		return []byte("null"), nil
	}
	return json.Marshal(codingRateStrings[r])
}

// UnmarshalJSON implements json.Unmarshaler. Any string outside the four
// known coding rates, and JSON null, decode to CodingRateUndefined rather
// than returning an error.
func (r *CodingRate) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = CodingRateUndefined
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*r = CodingRateUndefined
		return nil
	}

	if cr, ok := codingRateValues[s]; ok {
		*r = cr
	} else {
		*r = CodingRateUndefined
	}
	return nil
}
