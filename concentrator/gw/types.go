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
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// CRCStatus mirrors the concentrator's three-valued receive CRC outcome.
type CRCStatus int32

const (
	CRCStatusMissing CRCStatus = 0
	CRCStatusInvalid CRCStatus = 1
	CRCStatusOK      CRCStatus = 2
)

// CodeRate is the LoRa forward-error-correction coding rate, as carried
// across the concentrator RPC boundary.
type CodeRate int32

const (
	CodeRateUndefined CodeRate = 0
	CodeRate4_5       CodeRate = 1
	CodeRate4_6       CodeRate = 2
	CodeRate4_7       CodeRate = 3
	CodeRate4_8       CodeRate = 4
)

// String returns the Semtech-protocol coding rate string, or "" for
// CodeRateUndefined.
func (c CodeRate) String() string {
	switch c {
	case CodeRate4_5:
		return "4/5"
	case CodeRate4_6:
		return "4/6"
	case CodeRate4_7:
		return "4/7"
	case CodeRate4_8:
		return "4/8"
	default:
		return ""
	}
}

// TxAckStatus reports the outcome of a scheduled downlink transmission.
type TxAckStatus int32

const (
	TxAckStatusOK                 TxAckStatus = 0
	TxAckStatusIgnored            TxAckStatus = 1
	TxAckStatusTooLate            TxAckStatus = 2
	TxAckStatusTooEarly           TxAckStatus = 3
	TxAckStatusCollisionPacket    TxAckStatus = 4
	TxAckStatusCollisionBeacon    TxAckStatus = 5
	TxAckStatusTxFreq             TxAckStatus = 6
	TxAckStatusTxPower            TxAckStatus = 7
	TxAckStatusGPSUnlocked        TxAckStatus = 8
	TxAckStatusQueueFull          TxAckStatus = 9
	TxAckStatusInternalError     TxAckStatus = 10
	TxAckStatusDutyCycleOverflow TxAckStatus = 11
)

// String returns the Semtech-protocol TX_ACK error code for s: "" for
// success, an uppercase code otherwise.
func (s TxAckStatus) String() string {
	switch s {
	case TxAckStatusOK:
		return ""
	case TxAckStatusIgnored:
		return "IGNORED"
	case TxAckStatusTooLate:
		return "TOO_LATE"
	case TxAckStatusTooEarly:
		return "TOO_EARLY"
	case TxAckStatusCollisionPacket:
		return "COLLISION_PACKET"
	case TxAckStatusCollisionBeacon:
		return "COLLISION_BEACON"
	case TxAckStatusTxFreq:
		return "TX_FREQ"
	case TxAckStatusTxPower:
		return "TX_POWER"
	case TxAckStatusGPSUnlocked:
		return "GPS_UNLOCKED"
	case TxAckStatusQueueFull:
		return "QUEUE_FULL"
	case TxAckStatusInternalError:
		return "INTERNAL_ERROR"
	case TxAckStatusDutyCycleOverflow:
		return "DUTY_CYCLE_OVERFLOW"
	default:
		return "INTERNAL_ERROR"
	}
}

// LoraModulationInfo describes LoRa modulation parameters.
type LoraModulationInfo struct {
	Bandwidth             uint32
	SpreadingFactor       uint32
	CodeRate              CodeRate
	PolarizationInversion bool
}

// FskModulationInfo describes FSK modulation parameters.
type FskModulationInfo struct {
	Datarate uint32
}

// Modulation is a oneof: exactly one of Lora or Fsk is set.
type Modulation struct {
	Lora *LoraModulationInfo
	Fsk  *FskModulationInfo
}

// ImmediatelyTiming schedules a downlink for immediate transmission.
type ImmediatelyTiming struct{}

// DelayTiming schedules a downlink relative to the radio's internal clock.
// The concentrator reads the absolute timestamp from Context, not Delay;
// Delay exists for protocols that use a true relative offset.
type DelayTiming struct {
	Delay *durationpb.Duration
}

// GPSEpochTiming schedules a downlink at an absolute GPS time.
type GPSEpochTiming struct {
	TimeSinceGPSEpoch *durationpb.Duration
}

// Timing is a oneof: exactly one of Immediately, Delay or GpsEpoch is set.
type Timing struct {
	Immediately *ImmediatelyTiming
	Delay       *DelayTiming
	GpsEpoch    *GPSEpochTiming
}

// UplinkTxInfo carries the transmit-side parameters of a received frame
// (the parameters the gateway transmitted with, as observed on receive).
type UplinkTxInfo struct {
	Frequency  uint32
	Modulation *Modulation
}

// UplinkRxInfo carries the receive-side metadata of a received frame.
type UplinkRxInfo struct {
	GatewayID GatewayID
	UplinkID  uint32
	Time      *timestamppb.Timestamp

	// TimeSinceGPSEpoch is set only when the concentrator has a GPS lock;
	// nil otherwise.
	TimeSinceGPSEpoch *durationpb.Duration

	Rssi      int32
	Snr       float32
	Channel   uint32
	RfChain   uint32
	Context   []byte
	CrcStatus CRCStatus
}

// UplinkFrame is one received radio frame, as delivered on the
// concentrator's event stream.
type UplinkFrame struct {
	PhyPayload []byte
	TxInfo     *UplinkTxInfo
	RxInfo     *UplinkRxInfo
}

// GatewayStats is a periodic gateway statistics snapshot, as delivered on
// the concentrator's event stream.
type GatewayStats struct {
	GatewayID           GatewayID
	Time                *timestamppb.Timestamp
	Latitude            float64
	Longitude           float64
	Altitude            int32
	RxPacketsReceived   uint32
	RxPacketsReceivedOk uint32
	TxPacketsReceived   uint32
	TxPacketsEmitted    uint32
}

// DownlinkTxInfo carries the transmit parameters for one downlink
// opportunity.
type DownlinkTxInfo struct {
	Frequency  uint32
	Power      int32
	Modulation *Modulation
	Timing     *Timing
	Context    []byte
}

// DownlinkFrameItem is a single scheduled transmission opportunity.
type DownlinkFrameItem struct {
	PhyPayload []byte
	TxInfo     *DownlinkTxInfo
}

// DownlinkFrame schedules a radio transmission, sent as a command to the
// concentrator.
type DownlinkFrame struct {
	DownlinkID uint32
	GatewayID  GatewayID
	Items      []*DownlinkFrameItem
}

// DownlinkTxAckItem reports the outcome of a single scheduled item.
type DownlinkTxAckItem struct {
	Status TxAckStatus
}

// DownlinkTxAck is the concentrator's reply to a DownlinkFrame command.
type DownlinkTxAck struct {
	GatewayID  GatewayID
	DownlinkID uint32
	Items      []*DownlinkTxAckItem
}
