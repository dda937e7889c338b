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

package zmq

import (
	"context"
	"fmt"
	"time"

	"github.com/go-zeromq/zmq4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/brocaar/gwbridge/concentrator"
	"github.com/brocaar/gwbridge/concentrator/gw"
)

// PollTimeout bounds every blocking wait this package performs, matching
// the 100 ms suspension-point budget the forwarder's activities assume.
const PollTimeout = 100 * time.Millisecond

var log = logrus.WithField("component", "concentrator/zmq")

// EventReader subscribes to the concentrator's event socket. zmq4's SUB
// socket has no built-in receive timeout, so a background goroutine
// performs the blocking Recv and Next multiplexes it against a timer.
type EventReader struct {
	sock zmq4.Socket
	msgs chan zmq4.Msg
	errs chan error
	done chan struct{}
}

// NewEventReader dials url as a SUB socket subscribed to all messages.
func NewEventReader(ctx context.Context, url string) (*EventReader, error) {
	sock := zmq4.NewSub(ctx)
	if err := sock.Dial(url); err != nil {
		return nil, errors.Wrapf(err, "zmq: dial event socket %s", url)
	}
	if err := sock.SetOption(zmq4.OptionSubscribe, ""); err != nil {
		_ = sock.Close()
		return nil, errors.Wrap(err, "zmq: subscribe")
	}

	r := &EventReader{
		sock: sock,
		msgs: make(chan zmq4.Msg),
		errs: make(chan error, 1),
		done: make(chan struct{}),
	}
	go r.recvLoop()
	return r, nil
}

func (r *EventReader) recvLoop() {
	for {
		msg, err := r.sock.Recv()
		select {
		case <-r.done:
			return
		default:
		}
		if err != nil {
			select {
			case r.errs <- err:
			case <-r.done:
			}
			return
		}
		select {
		case r.msgs <- msg:
		case <-r.done:
			return
		}
	}
}

// Next implements concentrator.EventReader. It returns EventTimeout if no
// message arrives within PollTimeout.
func (r *EventReader) Next(ctx context.Context) (concentrator.Event, error) {
	timer := time.NewTimer(PollTimeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return concentrator.Event{}, ctx.Err()
	case err := <-r.errs:
		return concentrator.Event{Kind: concentrator.EventError, Err: err}, nil
	case <-timer.C:
		return concentrator.Event{Kind: concentrator.EventTimeout}, nil
	case msg := <-r.msgs:
		return decodeEvent(msg)
	}
}

func decodeEvent(msg zmq4.Msg) (concentrator.Event, error) {
	if len(msg.Frames) != 2 {
		return concentrator.Event{Kind: concentrator.EventError, Err: fmt.Errorf("zmq: event message has %d frames, want 2", len(msg.Frames))}, nil
	}

	tag, payload := string(msg.Frames[0]), msg.Frames[1]
	switch tag {
	case "up":
		uplink, err := gw.UnmarshalUplinkFrame(payload)
		if err != nil {
			return concentrator.Event{Kind: concentrator.EventError, Err: err}, nil
		}
		return concentrator.Event{Kind: concentrator.EventUplink, Uplink: uplink}, nil
	case "stats":
		stats, err := gw.UnmarshalGatewayStats(payload)
		if err != nil {
			return concentrator.Event{Kind: concentrator.EventError, Err: err}, nil
		}
		return concentrator.Event{Kind: concentrator.EventStats, Stats: stats}, nil
	default:
		log.WithField("tag", tag).Debug("ignoring unrecognized event type")
		return concentrator.Event{Kind: concentrator.EventTimeout}, nil
	}
}

// Close implements concentrator.EventReader.
func (r *EventReader) Close() error {
	close(r.done)
	return r.sock.Close()
}
