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

// Package codec implements the Semtech packet-forwarder UDP protocol,
// version 2: bit-exact binary framing for the six frame types
// (PUSH_DATA, PUSH_ACK, PULL_DATA, PULL_ACK, PULL_RESP, TX_ACK) plus the
// JSON models (rxpk, stat, txpk) carried inside PUSH_DATA and PULL_RESP.
//
// Every encode method produces exactly the bytes the legacy protocol
// expects, including JSON key order and field omission for absent
// optionals; every decode method validates the fixed 4-byte prefix before
// attempting to interpret the remainder.
package codec
