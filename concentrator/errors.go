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

package concentrator

import "errors"

// ErrNoReply reports that the concentrator did not reply within the
// command timeout. CommandClient.GetGatewayID returns it;
// CommandClient.SendDownlinkFrame reports the same condition as a nil
// *gw.DownlinkTxAck with a nil error instead.
var ErrNoReply = errors.New("concentrator: no reply within command timeout")

// ErrInvalidReply describes a command reply that does not carry exactly
// the number of items the caller expects (for SendDownlinkFrame: exactly
// one DownlinkTxAckItem). The zmq CommandClient does not return it; the
// forwarder checks the item count itself.
var ErrInvalidReply = errors.New("concentrator: invalid reply shape")
