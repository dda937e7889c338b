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

package forwarder

import "errors"

// ErrNoTxAck reports that the command socket did not reply to a
// send-downlink-frame request within the poll timeout. No upstream
// TX_ACK is emitted.
var ErrNoTxAck = errors.New("forwarder: no tx ack within command timeout")

// ErrInvalidTxAck reports that a command reply did not contain exactly
// one item. No upstream TX_ACK is emitted.
var ErrInvalidTxAck = errors.New("forwarder: command reply did not contain exactly one item")
