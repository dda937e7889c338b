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

// Package translator converts between the concentrator's RPC message
// shapes (package gw) and the Semtech-UDP JSON models (package codec).
// All semantic quirks of the conversion - timing mode selection,
// coding-rate mapping, datarate formatting, base64 payload handling, and
// the tmst/tmms timestamp conventions - live here, leaving both the codec
// and the concentrator packages unaware of each other.
package translator
