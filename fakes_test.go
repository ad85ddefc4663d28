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

// fakeDevice is a Device_Functions test double driven by a queue of
// byte chunks to hand back from ReadDevice, one chunk per call.
type fakeDevice struct {
	opened  bool
	openErr error
	readErr error
	toRead  [][]byte
	writes  [][]byte
}

func (d *fakeDevice) OpenDevice(_ string, _, _ bool) error {
	if d.openErr != nil {
		return d.openErr
	}
	d.opened = true
	return nil
}

func (d *fakeDevice) CloseDevice() error {
	d.opened = false
	return nil
}

func (d *fakeDevice) ReadDevice(buf []byte) (int, error) {
	if d.readErr != nil {
		return 0, d.readErr
	}
	if len(d.toRead) == 0 {
		return 0, nil
	}
	chunk := d.toRead[0]
	d.toRead = d.toRead[1:]
	return copy(buf, chunk), nil
}

func (d *fakeDevice) WriteDevice(buf []byte) (int, error) {
	cp := append([]byte(nil), buf...)
	d.writes = append(d.writes, cp)
	return len(buf), nil
}

func (d *fakeDevice) SetDTR(bool) error { return nil }
func (d *fakeDevice) SetRTS(bool) error { return nil }

type writtenMsg struct {
	buf     []byte
	msgType byte
}

// fakeProtocol is a Protocol_Functions test double: WriteMessage
// records what was sent, DispatchByte delegates to onByte when set.
type fakeProtocol struct {
	written  []writtenMsg
	onByte   func(s *StateMachine, b byte) error
	initErr  error
	termErr  error
	writeErr error
}

func (p *fakeProtocol) Initialise(*StateMachine) error { return p.initErr }
func (p *fakeProtocol) Terminate(*StateMachine) error  { return p.termErr }

func (p *fakeProtocol) WriteMessage(_ *StateMachine, buf []byte, msgType byte) error {
	if p.writeErr != nil {
		return p.writeErr
	}
	p.written = append(p.written, writtenMsg{append([]byte(nil), buf...), msgType})
	return nil
}

func (p *fakeProtocol) DispatchByte(s *StateMachine, b byte) error {
	if p.onByte != nil {
		return p.onByte(s, b)
	}
	return nil
}

// fakePhoneModule is a PhoneModule test double.
type fakePhoneModule struct {
	name       string
	models     []string
	replyTable []ReplyEntry

	initErr, termErr                       error
	manufacturer, model, firmware          string
	manufacturerErr, modelErr, firmwareErr error
}

func (m *fakePhoneModule) Name() string       { return m.name }
func (m *fakePhoneModule) Models() []string   { return m.models }
func (m *fakePhoneModule) Initialise(*StateMachine) error { return m.initErr }
func (m *fakePhoneModule) Terminate(*StateMachine) error  { return m.termErr }

func (m *fakePhoneModule) GetManufacturer(*StateMachine) (string, error) {
	return m.manufacturer, m.manufacturerErr
}

func (m *fakePhoneModule) GetModel(*StateMachine) (string, error) {
	return m.model, m.modelErr
}

func (m *fakePhoneModule) GetFirmware(*StateMachine) (string, error) {
	return m.firmware, m.firmwareErr
}

func (m *fakePhoneModule) ReplyFunctions() []ReplyEntry { return m.replyTable }
