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

// A Modulation identifies the radio modulation of an rxpk/txpk entry. It
// marshals as the bare JSON string the protocol expects.
type Modulation string

// Modulation values, per the Semtech protocol.
const (
	ModulationLoRa Modulation = "LORA"
	ModulationFSK  Modulation = "FSK"
)
