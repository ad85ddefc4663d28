// gammu
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of gammu.
//
// gammu is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// gammu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with gammu; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package gammu

import (
	"sync/atomic"
	"time"
)

// ConnectionType tags the transport x protocol pair a Config resolves
// to.
type ConnectionType string

const (
	ConnNone        ConnectionType = "none"
	ConnAT          ConnectionType = "at"
	ConnBlueAT      ConnectionType = "blueat"
	ConnIrdaAT      ConnectionType = "irdaat"
	ConnDKU2AT      ConnectionType = "dku2at"
	ConnIrdaOBEX    ConnectionType = "irdaobex"
	ConnBlueOBEX    ConnectionType = "blueobex"
	ConnBlueGNAPBUS ConnectionType = "bluegnapbus"
	ConnIrdaGNAPBUS ConnectionType = "irdagnapbus"
	ConnBlueS60     ConnectionType = "blues60"
	ConnFBUS        ConnectionType = "fbus"
	ConnFBUSUSB     ConnectionType = "fbususb"
	ConnDKU5FBUS2   ConnectionType = "dku5fbus2"
	ConnBluePhonet  ConnectionType = "bluephonet"
)

// StateMachine is the coordinator: it binds the three function tables
// from configuration, runs the init/fallback ladder, issues requests,
// polls the device, and dispatches reconstructed frames.
//
// StateMachine is NOT thread-safe: exactly one request may be in
// flight at a time, by design.
type StateMachine struct {
	device   Device_Functions
	protocol Protocol_Functions
	phone    Phone_Functions

	lock *lockFile
	di   *DebugInfo

	Config        [MaxConfigNum]Config
	CurrentConfig *Config
	ConfigNum     int

	ConnectionType ConnectionType
	SkipDtrRts     bool
	NoPowerCable   bool
	Speed          int
	ReplyNum       int

	Phone PhoneData
	User  UserCallbacks

	opened bool
	abort  atomic.Bool

	// readPollInterval/waitPollInterval/readWallClockBound are
	// undocumented timing heuristics inherited from gsmstate.c; kept
	// as tunables rather than constants, defaulted to the ported
	// values.
	readPollInterval   time.Duration
	waitPollInterval   time.Duration
	readWallClockBound time.Duration

	// rmThreshold/rhThreshold are the unknown-model heuristic's "wild
	// guess" numeric thresholds, kept configurable rather than
	// hardcoded.
	rmThreshold int
	rhThreshold int
}

// AllocStateMachine creates a StateMachine with CurrentConfig pointing
// at slot 0 and Abort cleared, mirroring GSM_AllocStateMachine.
func AllocStateMachine() *StateMachine {
	s := &StateMachine{
		ReplyNum: 3,
		di:       NewDebugInfo(nil, DLNone),
	}
	s.CurrentConfig = &s.Config[0]
	for i := range s.Config {
		s.Config[i] = *DefaultConfig()
	}
	s.readPollInterval = defaultReadPollInterval
	s.waitPollInterval = defaultWaitPollInterval
	s.readWallClockBound = defaultReadWallClockBound
	s.rmThreshold = 167
	s.rhThreshold = 63
	return s
}

// FreeStateMachine is a no-op placeholder kept for symmetry with
// GSM_FreeStateMachine; Go's GC reclaims the struct once unreferenced.
// Present so callers that faithfully mirror the C lifecycle
// (Alloc -> ... -> Free) have something to call.
func FreeStateMachine(_ *StateMachine) {}

// GetUsedConnection returns the ConnectionType currently bound.
func (s *StateMachine) GetUsedConnection() ConnectionType { return s.ConnectionType }

// GetModelInfo returns the active phone's ModelInfo, if any.
func (s *StateMachine) GetModelInfo() *ModelInfo { return s.Phone.ModelInfo }

// GetDebug returns the StateMachine's bound DebugInfo.
func (s *StateMachine) GetDebug() *DebugInfo { return s.di }

// IsConnected reports whether the connection is currently open
// (mirrors GSM_IsConnected).
func (s *StateMachine) IsConnected() bool { return s.opened }

// Abort requests cancellation of any in-flight WaitFor/ReadDevice.
// It is a cooperative flag, checked at poll-step boundaries; it is not
// auto-cleared.
func (s *StateMachine) Abort() { s.abort.Store(true) }

// ResetAbort clears a previously set Abort flag so the machine can be
// reused.
func (s *StateMachine) ResetAbort() { s.abort.Store(false) }

func (s *StateMachine) aborted() bool { return s.abort.Load() }

// SetIncomingCallCallback installs callback, replacing any previous one.
func (s *StateMachine) SetIncomingCallCallback(cb IncomingCallCallback, userData any) {
	s.User.IncomingCall = cb
	s.User.IncomingCallUserData = userData
}

// SetIncomingSMSCallback installs callback, replacing any previous one.
func (s *StateMachine) SetIncomingSMSCallback(cb IncomingSMSCallback, userData any) {
	s.User.IncomingSMS = cb
	s.User.IncomingSMSUserData = userData
}

// SetIncomingCBCallback installs callback, replacing any previous one.
func (s *StateMachine) SetIncomingCBCallback(cb IncomingCBCallback, userData any) {
	s.User.IncomingCB = cb
	s.User.IncomingCBUserData = userData
}

// SetIncomingUSSDCallback installs callback, replacing any previous one.
func (s *StateMachine) SetIncomingUSSDCallback(cb IncomingUSSDCallback, userData any) {
	s.User.IncomingUSSD = cb
	s.User.IncomingUSSDUserData = userData
}

// SetSendSMSStatusCallback installs callback, replacing any previous one.
func (s *StateMachine) SetSendSMSStatusCallback(cb SendSMSStatusCallback, userData any) {
	s.User.SendSMSStatus = cb
	s.User.SendSMSStatusUserData = userData
}

// BindFunctions installs device/protocol/phone directly, bypassing the
// connection registry (connection.go) and phone-module selection
// (phoneselect.go) — for programs that wire a StateMachine by hand
// instead of driving it through Config/InitConnection.
func (s *StateMachine) BindFunctions(d Device_Functions, p Protocol_Functions, ph Phone_Functions) {
	s.device = d
	s.protocol = p
	s.phone = ph
}

// MarkOpened reports the connection as open (or closed) without
// touching the device, for BindFunctions callers that manage the
// device's own open/close lifecycle themselves.
func (s *StateMachine) MarkOpened(opened bool) { s.opened = opened }

// SetUserReplyFunctions installs a reply table DispatchMessage
// consults before the active phone module's.
func (s *StateMachine) SetUserReplyFunctions(table []ReplyEntry) {
	s.User.UserReplyFunctions = table
}
