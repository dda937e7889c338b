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

// Package forwarder runs one Semtech UDP packet-forwarder instance per
// upstream server: a UDP socket plus a concentrator event/command pair,
// bridged by the translator package.
package forwarder

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/brocaar/gwbridge/codec"
	"github.com/brocaar/gwbridge/concentrator"
	"github.com/brocaar/gwbridge/concentrator/gw"
	"github.com/brocaar/gwbridge/internal/metrics"
	"github.com/brocaar/gwbridge/translator"
)

// OpenEventReader dials a fresh concentrator event stream.
type OpenEventReader func(ctx context.Context) (concentrator.EventReader, error)

// OpenCommandClient dials a fresh concentrator command channel.
type OpenCommandClient func(ctx context.Context) (concentrator.CommandClient, error)

// Instance runs the restart loop for one upstream server: bind socket,
// open concentrator handles, run the three activities, wait, repeat.
type Instance struct {
	Config            Config
	GatewayID         gw.GatewayID
	OpenEventReader   OpenEventReader
	OpenCommandClient OpenCommandClient
	Metrics           *metrics.Registry
	Translator        *translator.Translator

	log *logrus.Entry
}

// NewInstance returns an Instance ready to Start.
func NewInstance(cfg Config, gatewayID gw.GatewayID, openEvents OpenEventReader, openCommand OpenCommandClient, reg *metrics.Registry) *Instance {
	return &Instance{
		Config:            cfg,
		GatewayID:         gatewayID,
		OpenEventReader:   openEvents,
		OpenCommandClient: openCommand,
		Metrics:           reg,
		Translator:        translator.New(),
		log:               logrus.WithField("server", cfg.Server),
	}
}

// Start runs the outer restart loop until ctx is canceled.
func (inst *Instance) Start(ctx context.Context) error {
	for ctx.Err() == nil {
		if err := inst.runOnce(ctx); err != nil {
			inst.log.WithError(err).Error("forwarder setup failed, retrying")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}
		inst.log.Info("forwarder stopped")
	}
	return nil
}

// runOnce binds a fresh socket and concentrator handles, runs the three
// activities to completion, and tears everything down.
func (inst *Instance) runOnce(ctx context.Context) error {
	raddr, err := net.ResolveUDPAddr("udp", inst.Config.Server)
	if err != nil {
		return err
	}
	conn, err := net.DialUDP("udp", &net.UDPAddr{IP: net.IPv4zero, Port: 0}, raddr)
	if err != nil {
		return err
	}
	defer conn.Close()

	events, err := inst.OpenEventReader(ctx)
	if err != nil {
		return err
	}
	defer events.Close()

	commands, err := inst.OpenCommandClient(ctx)
	if err != nil {
		return err
	}
	defer commands.Close()

	state := NewState()
	stop := make(chan struct{})
	var stopOnce sync.Once
	broadcastStop := func() { stopOnce.Do(func() { close(stop) }) }

	go func() {
		select {
		case <-ctx.Done():
			broadcastStop()
		case <-stop:
		}
	}()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); inst.runKeepalive(conn, state, stop, broadcastStop) }()
	go func() { defer wg.Done(); inst.runUDPReceive(ctx, conn, state, stop, commands) }()
	go func() { defer wg.Done(); inst.runEvents(ctx, conn, state, stop, events) }()
	wg.Wait()

	return nil
}

// runKeepalive sends a PULL_DATA on every tick and restarts the instance
// after too many consecutive missed acks.
func (inst *Instance) runKeepalive(conn *net.UDPConn, state *State, stop chan struct{}, broadcastStop func()) {
	ticker := time.NewTicker(inst.Config.KeepaliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			missed := state.CheckMissedAcks()
			inst.log.WithField("missed_acks", missed).Debug("keepalive tick")

			if inst.Config.KeepaliveMaxFailures != 0 && uint(missed) > inst.Config.KeepaliveMaxFailures {
				inst.log.Warn("keepalive failures exceeded, restarting instance")
				broadcastStop()
				return
			}

			token := state.NewPullDataToken()
			frame := codec.PullData{RandomToken: token, GatewayMAC: [8]byte(inst.GatewayID)}
			b, _ := frame.MarshalBinary()
			if _, err := conn.Write(b); err != nil {
				inst.log.WithError(err).Warn("pull_data send failed")
				continue
			}
			inst.Metrics.SentDatagram(inst.Config.Server, codec.FrameTypePullData.String(), len(b))
		}
	}
}

// runUDPReceive reads datagrams from the upstream server and dispatches
// them by frame type.
func (inst *Instance) runUDPReceive(ctx context.Context, conn *net.UDPConn, state *State, stop chan struct{}, commands concentrator.CommandClient) {
	buf := make([]byte, 64*1024)

	for {
		select {
		case <-stop:
			return
		default:
		}

		if err := conn.SetReadDeadline(time.Now().Add(PollTimeout)); err != nil {
			inst.log.WithError(err).Warn("set read deadline failed")
			continue
		}
		n, err := conn.Read(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			inst.log.WithError(err).Warn("udp receive error")
			continue
		}
		if n < 4 {
			inst.log.WithField("n", n).Warn("received datagram shorter than frame prefix")
			continue
		}

		ft, _ := codec.FrameTypeOf(buf[:n])
		inst.Metrics.ReceivedDatagram(inst.Config.Server, ft.String(), n)

		switch ft {
		case codec.FrameTypePushAck:
			var ack codec.PushAck
			if err := ack.UnmarshalBinary(buf[:n]); err != nil {
				inst.log.WithError(err).Warn("malformed push_ack")
				continue
			}
			state.AckPushData(ack.RandomToken)
		case codec.FrameTypePullAck:
			var ack codec.PullAck
			if err := ack.UnmarshalBinary(buf[:n]); err != nil {
				inst.log.WithError(err).Warn("malformed pull_ack")
				continue
			}
			state.SetPullDataTokenAcked(ack.RandomToken)
			if ack.RandomToken == state.PullDataToken() {
				inst.log.Debug("pull_ack matches outstanding keepalive token")
			}
		case codec.FrameTypePullResp:
			var resp codec.PullResp
			if err := resp.UnmarshalBinary(buf[:n]); err != nil {
				inst.log.WithError(err).Warn("malformed pull_resp")
				continue
			}
			inst.handlePullResp(ctx, conn, resp, commands)
		default:
			inst.log.WithField("frame_type", buf[3]).Debug("ignoring unexpected frame type")
		}
	}
}

// handlePullResp translates a scheduled downlink, sends it to the
// concentrator, and reports the outcome upstream as a TX_ACK.
func (inst *Instance) handlePullResp(ctx context.Context, conn *net.UDPConn, resp codec.PullResp, commands concentrator.CommandClient) {
	item, err := inst.Translator.TXPKToDownlinkItem(resp.Payload.TXPK)
	if err != nil {
		inst.log.WithError(err).Error("invalid downlink")
		return
	}

	frame := &gw.DownlinkFrame{
		DownlinkID: uint32(resp.RandomToken),
		GatewayID:  inst.GatewayID,
		Items:      []*gw.DownlinkFrameItem{item},
	}

	ack, err := commands.SendDownlinkFrame(ctx, frame)
	if err != nil {
		inst.log.WithError(err).Error("send downlink frame failed")
		return
	}
	if ack == nil {
		inst.log.WithError(ErrNoTxAck).Warn("no tx ack within command timeout")
		return
	}
	if len(ack.Items) != 1 {
		inst.log.WithError(ErrInvalidTxAck).Warn("invalid tx ack")
		return
	}

	code := ack.Items[0].Status.String()
	txAck := codec.TxAck{RandomToken: resp.RandomToken, GatewayMAC: [8]byte(inst.GatewayID), Error: code}
	b, err := txAck.MarshalBinary()
	if err != nil {
		inst.log.WithError(err).Error("marshal tx_ack failed")
		return
	}
	if _, err := conn.Write(b); err != nil {
		inst.log.WithError(err).Warn("tx_ack send failed")
		return
	}

	typeLabel := "TX_ACK_OK"
	if code != "" {
		typeLabel = "TX_ACK_ERROR_" + code
	}
	inst.Metrics.SentDatagram(inst.Config.Server, typeLabel, len(b))
}

// runEvents drives the concentrator event stream, translating uplinks and
// stats snapshots into upstream PUSH_DATA frames.
func (inst *Instance) runEvents(ctx context.Context, conn *net.UDPConn, state *State, stop chan struct{}, events concentrator.EventReader) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		ev, err := events.Next(ctx)
		if err != nil {
			return
		}

		switch ev.Kind {
		case concentrator.EventTimeout:
			continue
		case concentrator.EventError:
			inst.log.WithError(ev.Err).Warn("concentrator event stream error")
		case concentrator.EventUplink:
			inst.handleUplink(conn, state, ev.Uplink)
		case concentrator.EventStats:
			inst.handleStats(conn, state, ev.Stats)
		}
	}
}

func (inst *Instance) handleUplink(conn *net.UDPConn, state *State, uplink *gw.UplinkFrame) {
	if uplink == nil || uplink.RxInfo == nil {
		return
	}
	if !inst.filterAllows(uplink.RxInfo.CrcStatus) {
		return
	}

	rxpk, err := inst.Translator.UplinkToRXPK(uplink)
	if err != nil {
		inst.log.WithError(err).Error("invalid uplink")
		return
	}

	token := state.NewPushDataToken()
	push := codec.PushData{
		RandomToken: token,
		GatewayMAC:  [8]byte(inst.GatewayID),
		Payload:     codec.PushDataPayload{RXPK: []codec.RXPK{rxpk}},
	}
	b, err := push.MarshalBinary()
	if err != nil {
		inst.log.WithError(err).Error("marshal push_data failed")
		return
	}
	if _, err := conn.Write(b); err != nil {
		inst.log.WithError(err).Warn("push_data send failed")
		return
	}

	state.IncrRxfw()
	state.IncrPushDataSent()
	inst.Metrics.SentDatagram(inst.Config.Server, "PUSH_DATA_RXPK", len(b))
}

func (inst *Instance) handleStats(conn *net.UDPConn, state *State, stats *gw.GatewayStats) {
	if stats == nil {
		return
	}

	sent, acked, rxfw := state.FlushStats()
	stat, err := inst.Translator.StatsToStat(stats, rxfw, Ackr(sent, acked))
	if err != nil {
		inst.log.WithError(err).Error("invalid stats")
		return
	}

	token := state.NewPushDataToken()
	push := codec.PushData{
		RandomToken: token,
		GatewayMAC:  [8]byte(inst.GatewayID),
		Payload:     codec.PushDataPayload{RXPK: []codec.RXPK{}, Stat: &stat},
	}
	b, err := push.MarshalBinary()
	if err != nil {
		inst.log.WithError(err).Error("marshal push_data failed")
		return
	}
	if _, err := conn.Write(b); err != nil {
		inst.log.WithError(err).Warn("push_data send failed")
		return
	}

	state.IncrPushDataSent()
	inst.Metrics.SentDatagram(inst.Config.Server, "PUSH_DATA_STATS", len(b))
}

func (inst *Instance) filterAllows(status gw.CRCStatus) bool {
	switch status {
	case gw.CRCStatusOK:
		return inst.Config.FilterCRCOK
	case gw.CRCStatusInvalid:
		return inst.Config.FilterCRCInvalid
	default:
		return inst.Config.FilterCRCMissing
	}
}
