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

import "time"

// RequestID tags which high-level operation is currently awaiting a
// reply. ID_None means idle; ID_IncomingFrame and ID_EachFrame are
// wildcards matched by CheckReplyFunctions regardless of what is
// outstanding.
type RequestID int

const (
	IDNone RequestID = iota
	IDIncomingFrame
	IDEachFrame
	// IDUser is the first value available to phone modules for their
	// own per-operation request IDs.
	IDUser
)

// Protocol_Message is the assembled unit a Protocol_Functions parser
// hands to the coordinator, and the shape WaitFor uses to hand an
// outgoing buffer to WriteMessage.
type Protocol_Message struct {
	Buffer []byte
	Type   byte
	Length int
}

// ReplyHandler processes a dispatched Protocol_Message against the
// current state machine, returning ErrNeedAnotherAnswer to keep the
// request pending or any other error/nil as the final outcome.
type ReplyHandler func(msg *Protocol_Message, s *StateMachine) error

// ReplyEntry is one row of a phone module's (or the user's) reply
// table: a frame-matching pattern bound to the request it answers and
// the handler that interprets it. Tables are static, ordered, and
// terminated by an empty entry (RequestID == IDNone and no Function).
//
// MsgType/SubtypeChar/Subtype encode three match kinds:
//   - long-ID frame: len(MsgType)==0 && SubtypeChar==0, matches on Subtype==msg.Type
//   - single-byte type: len(MsgType)==1, matches on MsgType[0]==msg.Type, optionally
//     requiring msg.Buffer[SubtypeChar]==Subtype when SubtypeChar!=0
//   - prefix frame: len(MsgType)>=2, matches when msg.Buffer has that prefix
type ReplyEntry struct {
	Function    ReplyHandler
	MsgType     []byte
	SubtypeChar byte
	Subtype     byte
	RequestID   RequestID
}

// terminator is the sentinel row table-walking code stops at.
func isTerminator(e ReplyEntry) bool {
	return e.RequestID == IDNone && e.Function == nil
}

// Device_Functions is the physical-endpoint capability table: open,
// close, read, write, and control-line toggles. Concrete
// implementations live under devices/ (e.g. devices/serial,
// devices/i2c).
type Device_Functions interface {
	// OpenDevice opens the physical endpoint named by device, honoring
	// skipDtrRts/noPowerCable the way the connection string requested.
	OpenDevice(device string, skipDtrRts, noPowerCable bool) error
	CloseDevice() error
	// ReadDevice performs one non-blocking-ish read attempt, returning
	// the bytes read (0 is a legal, non-error result).
	ReadDevice(buf []byte) (int, error)
	WriteDevice(buf []byte) (int, error)
	// SetDTR/SetRTS toggle modem control lines; implementations for
	// transports without control lines (e.g. I2C) may no-op.
	SetDTR(state bool) error
	SetRTS(state bool) error
}

// Protocol_Functions frames outgoing messages and reassembles incoming
// bytes into Protocol_Message values delivered through DispatchByte's
// call to the coordinator's DispatchMessage.
type Protocol_Functions interface {
	Initialise(s *StateMachine) error
	Terminate(s *StateMachine) error
	// WriteMessage frames buf (of the given message type) and writes it
	// to the device via s's bound Device_Functions.
	WriteMessage(s *StateMachine, buf []byte, msgType byte) error
	// DispatchByte feeds one received byte into the protocol's framing
	// state machine. When a complete frame is recognized it must call
	// s.DispatchMessage with the assembled Protocol_Message before
	// returning.
	DispatchByte(s *StateMachine, b byte) error
}

// Phone_Functions is a vendor phone module: lifecycle plus identity
// queries plus a static reply table.
type Phone_Functions interface {
	Initialise(s *StateMachine) error
	Terminate(s *StateMachine) error
	GetManufacturer(s *StateMachine) (string, error)
	GetModel(s *StateMachine) (string, error)
	GetFirmware(s *StateMachine) (string, error)
	// ReplyFunctions returns this module's static, ordered reply table.
	ReplyFunctions() []ReplyEntry
}

// StartInfoShower is the optional capability a Phone_Functions may
// implement to support the start-info banner; modules that don't
// support it simply don't implement it, checked via type assertion.
type StartInfoShower interface {
	ShowStartInfo(on bool) error
}

// ClockSetter is the optional capability backing a config's
// synchronizetime key: modules that can push the host clock to the
// phone implement it, checked the same way as StartInfoShower.
type ClockSetter interface {
	SetDateTime(s *StateMachine, t time.Time) error
}

// defaultReadPollInterval is the 5ms inner-retry sleep from
// gsmstate.c's GSM_ReadDevice.
const defaultReadPollInterval = 5 * time.Millisecond

// defaultWaitPollInterval is the ~10ms outer-loop sleep from
// gsmstate.c's GSM_WaitForOnce.
const defaultWaitPollInterval = 10 * time.Millisecond

// defaultReadWallClockBound is the one-second wall-clock bound
// gsmstate.c's GSM_ReadDevice polls within.
const defaultReadWallClockBound = 1 * time.Second
