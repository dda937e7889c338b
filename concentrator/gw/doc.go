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

// Package gw holds the concentrator RPC message shapes exchanged with a
// ChirpStack-Concentratord-style process: uplink frames, gateway stats,
// downlink frames, and downlink TX acknowledgements. The types are
// hand-defined Go structs rather than protoc-generated code, but the
// timestamp and GPS-duration fields use the real protobuf well-known
// types so callers get genuine time.Time/time.Duration conversions.
package gw
