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

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/brocaar/gwbridge/codec"
	"github.com/brocaar/gwbridge/concentrator"
	"github.com/brocaar/gwbridge/concentrator/gw"
	"github.com/brocaar/gwbridge/internal/metrics"
)

// fakeEventReader lets a test inject events on demand, falling back to
// EventTimeout so the forwarder's events activity keeps polling the stop
// signal.
type fakeEventReader struct {
	events chan concentrator.Event
	closed chan struct{}
}

func newFakeEventReader() *fakeEventReader {
	return &fakeEventReader{events: make(chan concentrator.Event, 8), closed: make(chan struct{})}
}

func (f *fakeEventReader) Next(ctx context.Context) (concentrator.Event, error) {
	select {
	case ev := <-f.events:
		return ev, nil
	case <-time.After(20 * time.Millisecond):
		return concentrator.Event{Kind: concentrator.EventTimeout}, nil
	case <-ctx.Done():
		return concentrator.Event{}, ctx.Err()
	case <-f.closed:
		return concentrator.Event{}, context.Canceled
	}
}

func (f *fakeEventReader) Close() error {
	select {
	case <-f.closed:
	default:
		close(f.closed)
	}
	return nil
}

// fakeCommandClient always acknowledges a downlink as OK.
type fakeCommandClient struct{}

func (fakeCommandClient) GetGatewayID(ctx context.Context) (gw.GatewayID, error) {
	return gw.GatewayID{1, 2, 3, 4, 5, 6, 7, 8}, nil
}

func (fakeCommandClient) SendDownlinkFrame(ctx context.Context, frame *gw.DownlinkFrame) (*gw.DownlinkTxAck, error) {
	return &gw.DownlinkTxAck{
		GatewayID:  frame.GatewayID,
		DownlinkID: frame.DownlinkID,
		Items:      []*gw.DownlinkTxAckItem{{Status: gw.TxAckStatusOK}},
	}, nil
}

func (fakeCommandClient) Close() error { return nil }

// fakeUpstream is a loopback Semtech UDP server that acks every PULL_DATA
// and PUSH_DATA it receives, and records everything it reads.
type fakeUpstream struct {
	conn *net.UDPConn

	mu       sync.Mutex
	received [][]byte
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	addr, err := net.ResolveUDPAddr("udp", "127.0.0.1:0")
	require.NoError(t, err)
	conn, err := net.ListenUDP("udp", addr)
	require.NoError(t, err)
	u := &fakeUpstream{conn: conn}
	go u.serve()
	return u
}

func (u *fakeUpstream) addr() string {
	return u.conn.LocalAddr().String()
}

func (u *fakeUpstream) serve() {
	buf := make([]byte, 64*1024)
	for {
		n, raddr, err := u.conn.ReadFromUDP(buf)
		if err != nil {
			return
		}
		datagram := make([]byte, n)
		copy(datagram, buf[:n])

		u.mu.Lock()
		u.received = append(u.received, datagram)
		u.mu.Unlock()

		if n < 4 {
			continue
		}
		ft, _ := codec.FrameTypeOf(datagram)
		switch ft {
		case codec.FrameTypePullData:
			var pd codec.PullData
			if pd.UnmarshalBinary(datagram) == nil {
				ack := codec.PullAck{RandomToken: pd.RandomToken}
				b, _ := ack.MarshalBinary()
				u.conn.WriteToUDP(b, raddr)
			}
		case codec.FrameTypePushData:
			token := uint16(datagram[1])<<8 | uint16(datagram[2])
			ack := codec.PushAck{RandomToken: token}
			b, _ := ack.MarshalBinary()
			u.conn.WriteToUDP(b, raddr)
		}
	}
}

func (u *fakeUpstream) countFrameType(ft codec.FrameType) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, d := range u.received {
		if got, ok := codec.FrameTypeOf(d); ok && got == ft {
			n++
		}
	}
	return n
}

func (u *fakeUpstream) close() { u.conn.Close() }

func testConfig(server string) Config {
	return Config{
		Server:            server,
		KeepaliveInterval: 10 * time.Millisecond,
	}
}

func TestInstanceSendsKeepalive(t *testing.T) {
	upstream := newFakeUpstream(t)
	defer upstream.close()

	events := newFakeEventReader()
	inst := NewInstance(testConfig(upstream.addr()), gw.GatewayID{1, 2, 3, 4, 5, 6, 7, 8},
		func(ctx context.Context) (concentrator.EventReader, error) { return events, nil },
		func(ctx context.Context) (concentrator.CommandClient, error) { return fakeCommandClient{}, nil },
		metrics.New())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go inst.Start(ctx)

	require.Eventually(t, func() bool {
		return upstream.countFrameType(codec.FrameTypePullData) >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestInstanceForwardsUplink(t *testing.T) {
	upstream := newFakeUpstream(t)
	defer upstream.close()

	events := newFakeEventReader()
	cfg := testConfig(upstream.addr())
	cfg.FilterCRCOK = true
	inst := NewInstance(cfg, gw.GatewayID{1, 2, 3, 4, 5, 6, 7, 8},
		func(ctx context.Context) (concentrator.EventReader, error) { return events, nil },
		func(ctx context.Context) (concentrator.CommandClient, error) { return fakeCommandClient{}, nil },
		metrics.New())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go inst.Start(ctx)

	events.events <- concentrator.Event{
		Kind: concentrator.EventUplink,
		Uplink: &gw.UplinkFrame{
			PhyPayload: []byte{1, 2, 3},
			TxInfo: &gw.UplinkTxInfo{
				Frequency:  868300000,
				Modulation: &gw.Modulation{Lora: &gw.LoraModulationInfo{Bandwidth: 125000, SpreadingFactor: 7}},
			},
			RxInfo: &gw.UplinkRxInfo{
				Time:      &timestamppb.Timestamp{},
				CrcStatus: gw.CRCStatusOK,
			},
		},
	}

	require.Eventually(t, func() bool {
		return upstream.countFrameType(codec.FrameTypePushData) >= 1
	}, time.Second, 5*time.Millisecond)
}

func TestInstanceDropsFilteredUplink(t *testing.T) {
	upstream := newFakeUpstream(t)
	defer upstream.close()

	events := newFakeEventReader()
	cfg := testConfig(upstream.addr())
	cfg.FilterCRCOK = false
	inst := NewInstance(cfg, gw.GatewayID{1, 2, 3, 4, 5, 6, 7, 8},
		func(ctx context.Context) (concentrator.EventReader, error) { return events, nil },
		func(ctx context.Context) (concentrator.CommandClient, error) { return fakeCommandClient{}, nil },
		metrics.New())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go inst.Start(ctx)

	events.events <- concentrator.Event{
		Kind: concentrator.EventUplink,
		Uplink: &gw.UplinkFrame{
			PhyPayload: []byte{1, 2, 3},
			TxInfo: &gw.UplinkTxInfo{
				Frequency:  868300000,
				Modulation: &gw.Modulation{Lora: &gw.LoraModulationInfo{Bandwidth: 125000, SpreadingFactor: 7}},
			},
			RxInfo: &gw.UplinkRxInfo{
				Time:      &timestamppb.Timestamp{},
				CrcStatus: gw.CRCStatusOK,
			},
		},
	}

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, 0, upstream.countFrameType(codec.FrameTypePushData))
}

func TestStateCheckMissedAcks(t *testing.T) {
	s := NewState()
	require.EqualValues(t, 0, s.CheckMissedAcks())

	s.NewPullDataToken()
	require.EqualValues(t, 1, s.CheckMissedAcks())

	s.SetPullDataTokenAcked(s.PullDataToken())
	require.EqualValues(t, 0, s.CheckMissedAcks())
}

func TestStateFlushStats(t *testing.T) {
	s := NewState()
	s.IncrPushDataSent()
	s.IncrPushDataSent()
	s.AckPushData(s.NewPushDataToken())
	s.IncrRxfw()

	sent, acked, rxfw := s.FlushStats()
	require.EqualValues(t, 2, sent)
	require.EqualValues(t, 1, acked)
	require.EqualValues(t, 1, rxfw)

	sent, acked, rxfw = s.FlushStats()
	require.Zero(t, sent)
	require.Zero(t, acked)
	require.Zero(t, rxfw)
}

func TestAckr(t *testing.T) {
	require.Equal(t, 0.0, Ackr(0, 0))
	require.Equal(t, 50.0, Ackr(4, 2))
	require.Equal(t, 100.0, Ackr(3, 3))
}
