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

// A CRCStatus reports whether a radio reception passed its physical-layer
// CRC check. It marshals as the bare JSON integer the protocol expects.
type CRCStatus int8

// CRC status values, per the Semtech protocol.
const (
	CRCOK      CRCStatus = 1
	CRCMissing CRCStatus = 0
	CRCInvalid CRCStatus = -1
)
