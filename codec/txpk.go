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

// A TXPK describes a single scheduled downlink transmission, carried
// inside a PULL_RESP payload.
type TXPK struct {
	Imme *bool
	Tmst *uint32
	Tmms *uint64
	Freq float64 // MHz
	Rfch uint8
	Powe int
	Modu Modulation
	DatR DataRate
	CodR CodingRate
	Ipol *bool
	Size uint16
	Data string // base64, standard alphabet
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *TXPK) UnmarshalJSON(b []byte) error {
	var raw struct {
		Imme *bool      `json:"imme"`
		Tmst *uint32     `json:"tmst"`
		Tmms *uint64     `json:"tmms"`
		Freq float64    `json:"freq"`
		Rfch uint8      `json:"rfch"`
		Powe int        `json:"powe"`
		Modu Modulation `json:"modu"`
		DatR DataRate   `json:"datr"`
		CodR CodingRate `json:"codr"`
		Ipol *bool      `json:"ipol"`
		Size uint16     `json:"size"`
		Data string     `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return &MalformedJSONError{Err: err}
	}

	p.Imme = raw.Imme
	p.Tmst = raw.Tmst
	p.Tmms = raw.Tmms
	p.Freq = raw.Freq
	p.Rfch = raw.Rfch
	p.Powe = raw.Powe
	p.Modu = raw.Modu
	p.DatR = raw.DatR
	p.CodR = raw.CodR
	p.Ipol = raw.Ipol
	p.Size = raw.Size
	p.Data = raw.Data
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p TXPK) MarshalJSON() ([]byte, error) {
	w := newObjectWriter()
	if p.Imme != nil {
		w.field("imme", *p.Imme)
	}
	if p.Tmst != nil {
		w.field("tmst", *p.Tmst)
	}
	if p.Tmms != nil {
		w.field("tmms", *p.Tmms)
	}
	w.raw("freq", jsonFloat(p.Freq))
	w.field("rfch", p.Rfch)
	w.field("powe", p.Powe)
	w.field("modu", p.Modu)
	w.field("datr", p.DatR)
	w.field("codr", p.CodR)
	if p.Ipol != nil {
		w.field("ipol", *p.Ipol)
	}
	w.field("size", p.Size)
	w.field("data", p.Data)
	return w.bytes()
}
