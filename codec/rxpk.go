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

// An RXPK describes a single received radio frame, carried inside a
// PUSH_DATA payload. Tmms, CodR and LSNR are omitted from the emitted
// JSON when nil.
type RXPK struct {
	Time time.Time
	Tmms *uint64
	Tmst uint32
	Freq float64 // MHz
	Chan uint8
	RFCh uint8
	Stat CRCStatus
	Modu Modulation
	DatR DataRate
	CodR *CodingRate
	RSSI int32
	LSNR *float64
	Size uint8
	Data string // base64, standard alphabet
}

// MarshalJSON implements json.Marshaler.
func (p RXPK) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	w.field("time", p.Time.Format(TimeLayout))
	if p.Tmms != nil {
		w.field("tmms", *p.Tmms)
	}
	w.field("tmst", p.Tmst)
	w.raw("freq", jsonFloat(p.Freq))
	w.field("chan", p.Chan)
	w.field("rfch", p.RFCh)
	w.field("stat", p.Stat)
	w.field("modu", p.Modu)
	w.field("datr", p.DatR)
	if p.CodR != nil {
		w.field("codr", *p.CodR)
	}
	w.field("rssi", p.RSSI)
	if p.LSNR != nil {
		w.raw("lsnr", jsonFloat(*p.LSNR))
	}
	w.field("size", p.Size)
	w.field("data", p.Data)
	return w.bytes()
}
