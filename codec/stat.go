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

import "time"

// A Stat describes periodic gateway statistics, carried inside a
// PUSH_DATA payload.
type Stat struct {
	Time time.Time
	Lati float64
	Long float64
	Alti uint32
	Rxnb uint32
	Rxok uint32
	Rxfw uint32
	Ackr float64 // percentage, e.g. 100.0
	Dwnb uint32
	Txnb uint32
}

// MarshalJSON implements json.Marshaler.
func (s Stat) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.field("time", s.Time.Format(StatTimeLayout))
	w.raw("lati", jsonFloat(s.Lati))
	w.raw("long", jsonFloat(s.Long))
	w.field("alti", s.Alti)
	w.field("rxnb", s.Rxnb)
	w.field("rxok", s.Rxok)
	w.field("rxfw", s.Rxfw)
	w.raw("ackr", jsonFloat(s.Ackr))
	w.field("dwnb", s.Dwnb)
	w.field("txnb", s.Txnb)
	return w.bytes()
}
