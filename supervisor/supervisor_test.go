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

package supervisor

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/brocaar/gwbridge/codec"
	"github.com/brocaar/gwbridge/concentrator"
	"github.com/brocaar/gwbridge/concentrator/gw"
	"github.com/brocaar/gwbridge/config"
)

type fakeEventReader struct{}

func (fakeEventReader) Next(ctx context.Context) (concentrator.Event, error) {
	select {
	case <-time.After(10 * time.Millisecond):
		return concentrator.Event{Kind: concentrator.EventTimeout}, nil
	case <-ctx.Done():
		return concentrator.Event{}, ctx.Err()
	}
}
func (fakeEventReader) Close() error { return nil }

type fakeCommandClient struct{}

func (fakeCommandClient) GetGatewayID(ctx context.Context) (gw.GatewayID, error) {
	return gw.GatewayID{1, 2, 3, 4, 5, 6, 7, 8}, nil
}
func (fakeCommandClient) SendDownlinkFrame(ctx context.Context, frame *gw.DownlinkFrame) (*gw.DownlinkTxAck, error) {
	return &gw.DownlinkTxAck{Items: []*gw.DownlinkTxAckItem{{Status: gw.TxAckStatusOK}}}, nil
}
func (fakeCommandClient) Close() error { return nil }

// loopbackServer is a minimal Semtech UDP server that counts the PULL_DATA
// frames it receives and acks them.
type loopbackServer struct {
	conn *net.UDPConn

	mu  sync.Mutex
	got int
}

func newLoopbackServer(t *testing.T) *loopbackServer {
	t.Helper()
	addr, err := net.ResolveUDPAddr("udp", "127.0.0.1:0")
	require.NoError(t, err)
	conn, err := net.ListenUDP("udp", addr)
	require.NoError(t, err)
	s := &loopbackServer{conn: conn}
	go s.serve()
	return s
}

func (s *loopbackServer) serve() {
	buf := make([]byte, 2048)
	for {
		n, raddr, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		if ft, ok := codec.FrameTypeOf(buf[:n]); ok && ft == codec.FrameTypePullData {
			s.mu.Lock()
			s.got++
			s.mu.Unlock()

			var pd codec.PullData
			if pd.UnmarshalBinary(buf[:n]) == nil {
				ack := codec.PullAck{RandomToken: pd.RandomToken}
				b, _ := ack.MarshalBinary()
				s.conn.WriteToUDP(b, raddr)
			}
		}
	}
}

func (s *loopbackServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.got
}

func (s *loopbackServer) addr() string { return s.conn.LocalAddr().String() }
func (s *loopbackServer) close()       { s.conn.Close() }

func TestSupervisorRunsOneInstancePerServer(t *testing.T) {
	serverA := newLoopbackServer(t)
	defer serverA.close()
	serverB := newLoopbackServer(t)
	defer serverB.close()

	cfg := config.Config{
		Servers: []config.Server{
			{Server: serverA.addr(), KeepaliveInterval: 10 * time.Millisecond},
			{Server: serverB.addr(), KeepaliveInterval: 10 * time.Millisecond},
		},
	}

	sup := New(cfg,
		func(ctx context.Context) (concentrator.EventReader, error) { return fakeEventReader{}, nil },
		func(ctx context.Context) (concentrator.CommandClient, error) { return fakeCommandClient{}, nil },
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sup.Run(ctx)

	require.Eventually(t, func() bool {
		return serverA.count() >= 1 && serverB.count() >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestSupervisorRegistryReturnsSameRegistry(t *testing.T) {
	sup := New(config.Config{}, nil, nil)
	require.NotNil(t, sup.Registry())
	require.Same(t, sup.Registry(), sup.Registry())
}
