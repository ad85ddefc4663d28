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

// Package nauto provides the Nokia-cable auto-probe module
// (registered as "NAUTO"): the provisional phone the coordinator runs
// a single GetModel through before real module selection. While it is
// active the dispatcher suppresses unmatched-frame diagnostics, since
// a probe against an unidentified phone is expected to see frames it
// cannot interpret.
package nauto

import (
	"strings"

	"github.com/bandyiet18/gammu"
)

// msgGetID is the identity-request frame type the probe sends; the
// phone answers with the same type carrying its product code
// ("RM-<n>"/"RH-<n>"/model string) as the payload.
const msgGetID = 0xD1

const reqGetID gammu.RequestID = gammu.IDUser

const probeTimeoutIterations = 100

// Module is the probe phone: GetModel only, everything else
// unsupported.
type Module struct {
	model string
}

// New returns an unregistered Module; call gammu.RegisterModule(New())
// to make it available to the auto-probe.
func New() *Module {
	return &Module{}
}

func (*Module) Name() string     { return "NAUTO" }
func (*Module) Models() []string { return nil }

func (*Module) Initialise(*gammu.StateMachine) error { return nil }
func (*Module) Terminate(*gammu.StateMachine) error  { return nil }

func (*Module) GetManufacturer(*gammu.StateMachine) (string, error) {
	return "", gammu.ErrNotSupported
}

func (m *Module) GetModel(s *gammu.StateMachine) (string, error) {
	if err := s.WaitFor([]byte{0x00, 0x01}, msgGetID, probeTimeoutIterations, reqGetID); err != nil {
		return "", gammu.NewStateMachineError("GetModel", err, gammu.KindOperation)
	}
	return m.model, nil
}

func (*Module) GetFirmware(*gammu.StateMachine) (string, error) {
	return "", gammu.ErrNotSupported
}

func (m *Module) ReplyFunctions() []gammu.ReplyEntry {
	return []gammu.ReplyEntry{
		{Function: m.handleID, MsgType: []byte{msgGetID}, RequestID: reqGetID},
		{}, // terminator
	}
}

func (m *Module) handleID(msg *gammu.Protocol_Message, _ *gammu.StateMachine) error {
	m.model = strings.TrimSpace(string(msg.Buffer))
	return nil
}
