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

package translator

import "fmt"

// InvalidUplink reports that an uplink frame could not be converted to
// an rxpk: a missing sub-record or a malformed field.
type InvalidUplink struct {
	Reason string
}

func (e *InvalidUplink) Error() string {
	return fmt.Sprintf("translator: invalid uplink: %s", e.Reason)
}

// InvalidDownlink reports that a txpk could not be converted to a
// downlink frame item: missing timing information, a modulation/datarate
// mismatch, or bad base64.
type InvalidDownlink struct {
	Reason string
}

func (e *InvalidDownlink) Error() string {
	return fmt.Sprintf("translator: invalid downlink: %s", e.Reason)
}

// UnsupportedModulation reports an uplink whose modulation this bridge
// cannot express in the legacy JSON (LR-FHSS today), or a txpk whose modu
// is neither LORA nor FSK.
type UnsupportedModulation struct {
	Modulation string
}

func (e *UnsupportedModulation) Error() string {
	return fmt.Sprintf("translator: unsupported modulation %q", e.Modulation)
}
