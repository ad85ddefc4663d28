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

// Package atgen provides a generic AT-command gammu.Phone_Functions
// module (registered as "ATGEN"), the fallback for any phone reached
// over a plain AT-family connection.
package atgen

import (
	"strings"

	"github.com/bandyiet18/gammu"
)

// Frame types this module's reply table recognizes. These are
// coordinates of the invented framing this repository's reference
// protocol/fbus implementation carries AT command text in, not AT
// command bytes themselves.
const (
	msgOK              = 0x01
	msgIndicator       = 0x02
	msgCustomEvent     = 0x03
	msgGetManufacturer = 0x10
	msgGetModel        = 0x11
	msgGetFirmware     = 0x12
)

const (
	reqManufacturer gammu.RequestID = gammu.IDUser + iota
	reqModel
	reqFirmware
)

const requestTimeoutIterations = 200

// Module is a generic AT-command phone: CGMI/CGMM/CGMR-style identity
// queries plus a reply table exercising all three CheckReplyFunctions
// match kinds.
type Module struct {
	manufacturer string
	model        string
	firmware     string
}

// New returns an unregistered Module; call gammu.RegisterModule(New())
// to make it participate in phone-module selection.
func New() *Module {
	return &Module{}
}

func (m *Module) Name() string { return "ATGEN" }

// Models is empty: ATGEN is chosen by SelectPhoneModule's AT-family
// fallback rule, not by an explicit models-list match.
func (m *Module) Models() []string { return nil }

func (m *Module) Initialise(s *gammu.StateMachine) error {
	// Flush: fire-and-forget, no reply expected.
	return s.WaitFor([]byte("AT\r\n"), msgOK, requestTimeoutIterations, gammu.IDNone)
}

func (m *Module) Terminate(_ *gammu.StateMachine) error {
	return nil
}

func (m *Module) GetManufacturer(s *gammu.StateMachine) (string, error) {
	if err := s.WaitFor([]byte("AT+CGMI\r\n"), msgGetManufacturer, requestTimeoutIterations, reqManufacturer); err != nil {
		return "", gammu.NewStateMachineError("GetManufacturer", err, gammu.KindOperation)
	}
	return m.manufacturer, nil
}

func (m *Module) GetModel(s *gammu.StateMachine) (string, error) {
	if err := s.WaitFor([]byte("AT+CGMM\r\n"), msgGetModel, requestTimeoutIterations, reqModel); err != nil {
		return "", gammu.NewStateMachineError("GetModel", err, gammu.KindOperation)
	}
	return m.model, nil
}

func (m *Module) GetFirmware(s *gammu.StateMachine) (string, error) {
	if err := s.WaitFor([]byte("AT+CGMR\r\n"), msgGetFirmware, requestTimeoutIterations, reqFirmware); err != nil {
		return "", gammu.NewStateMachineError("GetFirmware", err, gammu.KindOperation)
	}
	return m.firmware, nil
}

// ReplyFunctions exercises all three match kinds:
// a long-ID unsolicited "OK" catch-all, a single-byte frame with a
// subtype-offset check for an incoming-call indicator, and a
// multi-byte prefix match for a vendor-specific event frame, alongside
// the three ordinary single-byte identity-query replies.
func (m *Module) ReplyFunctions() []gammu.ReplyEntry {
	return []gammu.ReplyEntry{
		{Function: m.handleManufacturer, MsgType: []byte{msgGetManufacturer}, RequestID: reqManufacturer},
		{Function: m.handleModel, MsgType: []byte{msgGetModel}, RequestID: reqModel},
		{Function: m.handleFirmware, MsgType: []byte{msgGetFirmware}, RequestID: reqFirmware},
		{Function: m.handleIncomingCall, MsgType: []byte{msgIndicator}, SubtypeChar: 1, Subtype: 0x01, RequestID: gammu.IDIncomingFrame},
		{Function: m.handleIncomingSMS, MsgType: []byte{msgIndicator}, SubtypeChar: 1, Subtype: 0x02, RequestID: gammu.IDIncomingFrame},
		{Function: m.handleCustomEvent, MsgType: []byte{msgCustomEvent, 0x00}, RequestID: gammu.IDEachFrame},
		{Function: m.handleOK, Subtype: msgOK, RequestID: gammu.IDEachFrame},
		{}, // terminator
	}
}

func (m *Module) handleManufacturer(msg *gammu.Protocol_Message, _ *gammu.StateMachine) error {
	m.manufacturer = strings.TrimSpace(string(msg.Buffer))
	return nil
}

func (m *Module) handleModel(msg *gammu.Protocol_Message, _ *gammu.StateMachine) error {
	m.model = strings.TrimSpace(string(msg.Buffer))
	return nil
}

func (m *Module) handleFirmware(msg *gammu.Protocol_Message, _ *gammu.StateMachine) error {
	m.firmware = strings.TrimSpace(string(msg.Buffer))
	return nil
}

// handleIncomingCall fires the user's IncomingCall callback, if any,
// leaving RequestID untouched since it matched as a wildcard, not as
// an owned request.
func (*Module) handleIncomingCall(_ *gammu.Protocol_Message, s *gammu.StateMachine) error {
	if s.User.IncomingCall != nil {
		s.User.IncomingCall(s, s.User.IncomingCallUserData)
	}
	return nil
}

func (*Module) handleIncomingSMS(_ *gammu.Protocol_Message, s *gammu.StateMachine) error {
	if s.User.IncomingSMS != nil {
		s.User.IncomingSMS(s, s.User.IncomingSMSUserData)
	}
	return nil
}

func (*Module) handleCustomEvent(_ *gammu.Protocol_Message, _ *gammu.StateMachine) error {
	return nil
}

func (*Module) handleOK(_ *gammu.Protocol_Message, _ *gammu.StateMachine) error {
	return nil
}
