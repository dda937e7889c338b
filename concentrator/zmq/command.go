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
	"sync"
	"time"

	"github.com/go-zeromq/zmq4"
	"github.com/pkg/errors"

	"github.com/brocaar/gwbridge/concentrator"
	"github.com/brocaar/gwbridge/concentrator/gw"
)

// CommandClient issues request/reply commands over a ZeroMQ REQ socket.
//
// A REQ socket requires strict send/recv alternation. When a reply
// doesn't arrive within PollTimeout, the request gives up with
// concentrator.ErrNoReply but the socket is left waiting for the reply
// that may still come later; the next command would then read a stale
// reply. CommandClient works around this by reconnecting the socket
// whenever a timeout occurs.
type CommandClient struct {
	url string

	mu   sync.Mutex
	sock zmq4.Socket
}

// NewCommandClient dials url as a REQ socket.
func NewCommandClient(ctx context.Context, url string) (*CommandClient, error) {
	c := &CommandClient{url: url}
	if err := c.redial(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CommandClient) redial(ctx context.Context) error {
	if c.sock != nil {
		_ = c.sock.Close()
	}
	sock := zmq4.NewReq(ctx)
	if err := sock.Dial(c.url); err != nil {
		return errors.Wrapf(err, "zmq: dial command socket %s", c.url)
	}
	c.sock = sock
	return nil
}

// request sends tag+payload and waits up to PollTimeout for a two-frame
// reply, returning its second frame.
func (c *CommandClient) request(ctx context.Context, tag string, payload []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.sock.Send(zmq4.NewMsgFrom([]byte(tag), payload)); err != nil {
		return nil, errors.Wrap(err, "zmq: send command")
	}

	type result struct {
		msg zmq4.Msg
		err error
	}
	replies := make(chan result, 1)
	go func() {
		msg, err := c.sock.Recv()
		replies <- result{msg, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(PollTimeout):
		if err := c.redial(ctx); err != nil {
			return nil, err
		}
		return nil, concentrator.ErrNoReply
	case r := <-replies:
		if r.err != nil {
			return nil, errors.Wrap(r.err, "zmq: receive command reply")
		}
		if len(r.msg.Frames) != 2 {
			return nil, fmt.Errorf("zmq: command reply has %d frames, want 2", len(r.msg.Frames))
		}
		return r.msg.Frames[1], nil
	}
}

// GetGatewayID implements concentrator.CommandClient.
func (c *CommandClient) GetGatewayID(ctx context.Context) (gw.GatewayID, error) {
	payload, err := c.request(ctx, "gateway_id", nil)
	if err != nil {
		return gw.GatewayID{}, err
	}
	return gw.UnmarshalGetGatewayIDResponse(payload)
}

// SendDownlinkFrame implements concentrator.CommandClient.
func (c *CommandClient) SendDownlinkFrame(ctx context.Context, frame *gw.DownlinkFrame) (*gw.DownlinkTxAck, error) {
	body, err := gw.MarshalDownlinkFrame(frame)
	if err != nil {
		return nil, errors.Wrap(err, "zmq: marshal downlink frame")
	}

	payload, err := c.request(ctx, "down", body)
	if err != nil {
		if errors.Is(err, concentrator.ErrNoReply) {
			return nil, nil
		}
		return nil, err
	}

	return gw.UnmarshalDownlinkTxAck(payload)
}

// Close implements concentrator.CommandClient.
func (c *CommandClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sock.Close()
}
