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
	"strconv"
	"strings"
)

// TimeLayout formats rxpk.time: a numeric-offset RFC 3339 timestamp. Unlike
// the stdlib's time.RFC3339, this never substitutes "Z" for a zero offset,
// matching the Semtech protocol's expected "+00:00" rendering.
const TimeLayout = "2006-01-02T15:04:05-07:00"

// StatTimeLayout formats stat.time: a space-separated timestamp with a
// trailing zone abbreviation.
const StatTimeLayout = "2006-01-02 15:04:05 MST"

// jsonFloat marshals f the way the protocol's float fields are written in
// every observed implementation: always with a decimal point, even for
// whole numbers (encoding/json alone would print "0" rather than "0.0").
func jsonFloat(f float64) json.RawMessage {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return json.RawMessage(s)
}
