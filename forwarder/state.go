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
	"math/rand"
	"sync"
)

// State holds the mutable counters and tokens shared by a forwarder
// instance's three activities. A single mutex guards the whole block;
// every exported method does O(1) work under the lock.
type State struct {
	mu sync.Mutex

	pushDataToken      uint16
	pullDataToken      uint16
	pullDataTokenAcked uint16
	missedAcks         uint32

	pushDataSent  uint32
	pushDataAcked uint32
	rxfw          uint32
}

// NewState returns a State with all counters and tokens at zero.
func NewState() *State {
	return &State{}
}

// NewPushDataToken assigns and returns a new random PUSH_DATA token.
func (s *State) NewPushDataToken() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushDataToken = uint16(rand.Uint32())
	return s.pushDataToken
}

// NewPullDataToken assigns and returns a new random PULL_DATA token.
func (s *State) NewPullDataToken() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pullDataToken = uint16(rand.Uint32())
	return s.pullDataToken
}

// CheckMissedAcks compares the outstanding PULL_DATA token against the
// most recently acked one: equal resets the miss counter to zero, unequal
// increments it. It returns the counter's value after the update.
func (s *State) CheckMissedAcks() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pullDataToken == s.pullDataTokenAcked {
		s.missedAcks = 0
	} else {
		s.missedAcks++
	}
	return s.missedAcks
}

// SetPullDataTokenAcked unconditionally overwrites the last-acked
// PULL_DATA token, even if it does not match the currently outstanding
// one: a late ack still clears a run of misses on the next keepalive tick.
func (s *State) SetPullDataTokenAcked(token uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pullDataTokenAcked = token
}

// PullDataToken returns the currently outstanding PULL_DATA token.
func (s *State) PullDataToken() uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pullDataToken
}

// AckPushData increments push_data_acked if token matches the currently
// outstanding PUSH_DATA token, reporting whether it matched.
func (s *State) AckPushData(token uint16) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.pushDataToken {
		return false
	}
	s.pushDataAcked++
	return true
}

// IncrPushDataSent increments the count of PUSH_DATA datagrams sent since
// the last stats flush.
func (s *State) IncrPushDataSent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushDataSent++
}

// IncrRxfw increments the count of uplinks forwarded since the last stats
// flush.
func (s *State) IncrRxfw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rxfw++
}

// FlushStats atomically reads and resets the push_data_sent,
// push_data_acked and rxfw counters, returning their pre-reset values.
func (s *State) FlushStats() (sent, acked, rxfw uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sent, acked, rxfw = s.pushDataSent, s.pushDataAcked, s.rxfw
	s.pushDataSent, s.pushDataAcked, s.rxfw = 0, 0, 0
	return sent, acked, rxfw
}

// Ackr computes the PUSH_DATA ack ratio as a percentage, 0.0 when sent is
// zero.
func Ackr(sent, acked uint32) float64 {
	if sent == 0 {
		return 0.0
	}
	return float64(acked) / float64(sent) * 100.0
}
