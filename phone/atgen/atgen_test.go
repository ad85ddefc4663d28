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

package atgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bandyiet18/gammu"
	"github.com/bandyiet18/gammu/phone/atgen"
)

// replyingProtocol answers each identity query with a canned payload
// of the same frame type as soon as the poll loop feeds it a byte.
type replyingProtocol struct {
	replies map[byte][]byte
	pending []byte
	typ     byte
}

func (*replyingProtocol) Initialise(*gammu.StateMachine) error { return nil }
func (*replyingProtocol) Terminate(*gammu.StateMachine) error  { return nil }

func (p *replyingProtocol) WriteMessage(_ *gammu.StateMachine, _ []byte, msgType byte) error {
	p.pending = p.replies[msgType]
	p.typ = msgType
	return nil
}

func (p *replyingProtocol) DispatchByte(s *gammu.StateMachine, _ byte) error {
	if p.pending == nil {
		return nil
	}
	reply := p.pending
	p.pending = nil
	return s.DispatchMessage(&gammu.Protocol_Message{Type: p.typ, Buffer: reply, Length: len(reply)})
}

// tickingDevice produces one byte per read so the poll loop always has
// something to feed the protocol.
type tickingDevice struct{}

func (*tickingDevice) OpenDevice(string, bool, bool) error { return nil }
func (*tickingDevice) CloseDevice() error                  { return nil }

func (*tickingDevice) ReadDevice(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	buf[0] = 0x00
	return 1, nil
}

func (*tickingDevice) WriteDevice(buf []byte) (int, error) { return len(buf), nil }
func (*tickingDevice) SetDTR(bool) error                   { return nil }
func (*tickingDevice) SetRTS(bool) error                   { return nil }

func newATMachine(m *atgen.Module, proto gammu.Protocol_Functions) *gammu.StateMachine {
	s := gammu.AllocStateMachine()
	s.BindFunctions(&tickingDevice{}, proto, m)
	s.MarkOpened(true)
	return s
}

func TestIdentityQueries(t *testing.T) {
	t.Parallel()

	m := atgen.New()
	proto := &replyingProtocol{replies: map[byte][]byte{
		0x10: []byte("Nokia\r\n"),
		0x11: []byte("6310i\r\n"),
		0x12: []byte("V 5.50\r\n"),
	}}
	s := newATMachine(m, proto)

	manufacturer, err := m.GetManufacturer(s)
	require.NoError(t, err)
	assert.Equal(t, "Nokia", manufacturer)

	model, err := m.GetModel(s)
	require.NoError(t, err)
	assert.Equal(t, "6310i", model)

	firmware, err := m.GetFirmware(s)
	require.NoError(t, err)
	assert.Equal(t, "V 5.50", firmware)
}

func TestIncomingCallIndicatorFiresUserCallback(t *testing.T) {
	t.Parallel()

	m := atgen.New()
	s := newATMachine(m, &replyingProtocol{})

	var calls int
	var gotUserData any
	s.SetIncomingCallCallback(func(_ *gammu.StateMachine, userData any) {
		calls++
		gotUserData = userData
	}, "user-data")

	// indicator frame: single-byte type with the subtype byte at
	// offset 1 flagging an incoming call.
	err := s.DispatchMessage(&gammu.Protocol_Message{
		Type: 0x02, Buffer: []byte{0xFF, 0x01}, Length: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "user-data", gotUserData)
}

func TestReplyTableIsTerminated(t *testing.T) {
	t.Parallel()

	table := atgen.New().ReplyFunctions()
	require.NotEmpty(t, table)
	last := table[len(table)-1]
	assert.Equal(t, gammu.IDNone, last.RequestID)
	assert.Nil(t, last.Function)
}

func TestIncomingSMSIndicatorFiresUserCallback(t *testing.T) {
	t.Parallel()

	m := atgen.New()
	s := newATMachine(m, &replyingProtocol{})

	var calls int
	s.SetIncomingSMSCallback(func(*gammu.StateMachine, any) { calls++ }, nil)

	err := s.DispatchMessage(&gammu.Protocol_Message{
		Type: 0x02, Buffer: []byte{0xFF, 0x02}, Length: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}
