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

package gw

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestCodeRateString(t *testing.T) {
	tests := []struct {
		cr   CodeRate
		want string
	}{
		{CodeRateUndefined, ""},
		{CodeRate4_5, "4/5"},
		{CodeRate4_6, "4/6"},
		{CodeRate4_7, "4/7"},
		{CodeRate4_8, "4/8"},
	}
	for _, tt := range tests {
		if got := tt.cr.String(); got != tt.want {
			t.Errorf("CodeRate(%d).String() = %q, want %q", tt.cr, got, tt.want)
		}
	}
}

func TestTxAckStatusString(t *testing.T) {
	tests := []struct {
		status TxAckStatus
		want   string
	}{
		{TxAckStatusOK, ""},
		{TxAckStatusIgnored, "IGNORED"},
		{TxAckStatusTooLate, "TOO_LATE"},
		{TxAckStatusTooEarly, "TOO_EARLY"},
		{TxAckStatusCollisionPacket, "COLLISION_PACKET"},
		{TxAckStatusCollisionBeacon, "COLLISION_BEACON"},
		{TxAckStatusTxFreq, "TX_FREQ"},
		{TxAckStatusTxPower, "TX_POWER"},
		{TxAckStatusGPSUnlocked, "GPS_UNLOCKED"},
		{TxAckStatusQueueFull, "QUEUE_FULL"},
		{TxAckStatusInternalError, "INTERNAL_ERROR"},
		{TxAckStatusDutyCycleOverflow, "DUTY_CYCLE_OVERFLOW"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("TxAckStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestGatewayIDRoundTrip(t *testing.T) {
	id := GatewayID{1, 2, 3, 4, 5, 6, 7, 8}
	s := id.String()
	if want := "0102030405060708"; s != want {
		t.Fatalf("String() = %s, want %s", s, want)
	}

	got, err := ParseGatewayID(s)
	if err != nil {
		t.Fatalf("ParseGatewayID: %v", err)
	}
	if got != id {
		t.Fatalf("ParseGatewayID(%s) = %v, want %v", s, got, id)
	}
}

func TestParseGatewayIDRejectsWrongLength(t *testing.T) {
	if _, err := ParseGatewayID("0102"); err == nil {
		t.Fatal("expected error for short gateway id")
	}
}

func TestUplinkFrameRoundTrip(t *testing.T) {
	want := &UplinkFrame{
		PhyPayload: []byte{1, 2, 3},
		TxInfo: &UplinkTxInfo{
			Frequency:  868300000,
			Modulation: &Modulation{Lora: &LoraModulationInfo{Bandwidth: 125000, SpreadingFactor: 12, CodeRate: CodeRate4_5, PolarizationInversion: true}},
		},
		RxInfo: &UplinkRxInfo{
			GatewayID: GatewayID{1, 2, 3, 4, 5, 6, 7, 8},
			UplinkID:  7,
			Time:      &timestamppb.Timestamp{Seconds: 1700000000, Nanos: 123000000},
			Rssi:      -110,
			Snr:       5.5,
			Channel:   1,
			RfChain:   1,
			Context:   []byte{1, 2, 3, 4},
			CrcStatus: CRCStatusOK,
		},
	}

	b, err := MarshalUplinkFrame(want)
	if err != nil {
		t.Fatalf("MarshalUplinkFrame: %v", err)
	}
	got, err := UnmarshalUplinkFrame(b)
	if err != nil {
		t.Fatalf("UnmarshalUplinkFrame: %v", err)
	}
	if diff := cmp.Diff(want, got, protocmp.Transform()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDownlinkFrameRoundTrip(t *testing.T) {
	want := &DownlinkFrame{
		DownlinkID: 42,
		GatewayID:  GatewayID{1, 2, 3, 4, 5, 6, 7, 8},
		Items: []*DownlinkFrameItem{
			{
				PhyPayload: []byte{9, 9, 9},
				TxInfo: &DownlinkTxInfo{
					Frequency:  864123456,
					Power:      14,
					Modulation: &Modulation{Lora: &LoraModulationInfo{Bandwidth: 125000, SpreadingFactor: 11, CodeRate: CodeRate4_5, PolarizationInversion: false}},
					Timing:     &Timing{Delay: &DelayTiming{Delay: durationpb.New(0)}},
					Context:    []byte{0, 76, 75, 64},
				},
			},
		},
	}

	b, err := MarshalDownlinkFrame(want)
	if err != nil {
		t.Fatalf("MarshalDownlinkFrame: %v", err)
	}
	got, err := UnmarshalDownlinkFrame(b)
	if err != nil {
		t.Fatalf("UnmarshalDownlinkFrame: %v", err)
	}
	if diff := cmp.Diff(want, got, protocmp.Transform()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDownlinkTxAckRoundTrip(t *testing.T) {
	want := &DownlinkTxAck{
		GatewayID:  GatewayID{1, 2, 3, 4, 5, 6, 7, 8},
		DownlinkID: 42,
		Items:      []*DownlinkTxAckItem{{Status: TxAckStatusTooLate}},
	}
	b, err := MarshalDownlinkTxAck(want)
	if err != nil {
		t.Fatalf("MarshalDownlinkTxAck: %v", err)
	}
	got, err := UnmarshalDownlinkTxAck(b)
	if err != nil {
		t.Fatalf("UnmarshalDownlinkTxAck: %v", err)
	}
	if diff := cmp.Diff(want, got, protocmp.Transform()); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
