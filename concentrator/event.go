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

// Package concentrator defines the transport-independent contract between
// a forwarder instance and the local radio concentrator process: a
// pull-based event iterator and a request/reply command client. The
// concrete ZeroMQ transport lives in the concentrator/zmq subpackage so
// forwarder and translator depend only on these interfaces.
package concentrator

import (
	"context"

	"github.com/brocaar/gwbridge/concentrator/gw"
)

// EventKind identifies which field of an Event is populated.
type EventKind int

const (
	// EventTimeout is produced when a poll elapses its deadline without a
	// message arriving. Callers treat it as a liveness tick: a chance to
	// check the stop signal.
	EventTimeout EventKind = iota
	// EventError is produced when the underlying transport fails.
	EventError
	// EventUplink carries a received radio frame.
	EventUplink
	// EventStats carries a periodic gateway statistics snapshot.
	EventStats
)

// An Event is the sum type yielded by EventReader.Next: exactly one of
// Err, Uplink or Stats is meaningful, selected by Kind.
type Event struct {
	Kind   EventKind
	Err    error
	Uplink *gw.UplinkFrame
	Stats  *gw.GatewayStats
}

// An EventReader delivers concentrator events to a forwarder instance. A
// single call to Next must not block longer than the reader's configured
// poll timeout, so the caller can observe a stop signal between calls.
type EventReader interface {
	Next(ctx context.Context) (Event, error)
	Close() error
}

// A CommandClient issues request/reply commands to the concentrator.
type CommandClient interface {
	// GetGatewayID fetches the gateway's 8-byte identifier. Called once at
	// forwarder startup.
	GetGatewayID(ctx context.Context) (gw.GatewayID, error)

	// SendDownlinkFrame schedules a transmission and returns the
	// concentrator's acknowledgement. A nil *gw.DownlinkTxAck with a nil
	// error indicates no reply arrived within the command timeout
	// (ErrNoReply).
	SendDownlinkFrame(ctx context.Context, frame *gw.DownlinkFrame) (*gw.DownlinkTxAck, error)

	Close() error
}
