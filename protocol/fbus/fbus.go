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

// Package fbus provides a gammu.Protocol_Functions implementing the
// Nokia FBUS-style length-prefixed, checksummed frame: a byte-fed
// assembler on receive and a single-shot framer on send.
package fbus

import (
	"fmt"

	"github.com/bandyiet18/gammu"
)

const (
	stx       = 0x1E
	destPhone = 0x00
	srcHost   = 0x0C
)

type parseState int

const (
	stateSTX parseState = iota
	stateDest
	stateSrc
	stateType
	stateLenHi
	stateLenLo
	statePayload
	stateChecksum
)

// Protocol implements gammu.Protocol_Functions over the frame:
//
//	STX(0x1E) | dest(1) | src(1) | msgType(1) | lenHi(1) | lenLo(1) | payload | checksum(1)
//
// checksum is the XOR of every byte from dest through the last payload
// byte.
type Protocol struct {
	state   parseState
	msgType byte
	length  int
	payload []byte
	sum     byte
}

// New returns a fresh, idle Protocol instance. A new instance should
// be built per connection (BindConnection's factory does this), since
// parser state is not reusable across connections.
func New() *Protocol {
	return &Protocol{}
}

func (p *Protocol) Initialise(_ *gammu.StateMachine) error {
	p.reset()
	return nil
}

func (p *Protocol) Terminate(_ *gammu.StateMachine) error {
	p.reset()
	return nil
}

func (p *Protocol) reset() {
	p.state = stateSTX
	p.msgType = 0
	p.length = 0
	p.payload = nil
	p.sum = 0
}

// WriteMessage frames buf and writes it to the device, emitting the
// Level2/Level3 debug dumps the same way gsmstate.c's GSM_WriteMessage
// traces a sent frame.
func (p *Protocol) WriteMessage(s *gammu.StateMachine, buf []byte, msgType byte) error {
	frame := make([]byte, 0, len(buf)+6)
	frame = append(frame, stx, destPhone, srcHost, msgType, byte(len(buf)/256), byte(len(buf)%256))
	frame = append(frame, buf...)

	sum := byte(0)
	for _, b := range frame[1:] {
		sum ^= b
	}
	frame = append(frame, sum)

	if d := s.GetDebug(); d != nil {
		d.DumpMessageLevel2(buf, int(msgType))
		d.DumpMessageLevel3(buf, int(msgType))
	}

	n, err := s.WriteRaw(frame)
	if err != nil {
		return err
	}
	if n != len(frame) {
		return gammu.NewStateMachineError("WriteMessage", fmt.Errorf("short write: wrote %d of %d bytes", n, len(frame)), gammu.KindDevice)
	}
	return nil
}

// DispatchByte feeds one received byte into the frame assembler,
// calling s.DispatchMessage once a complete, checksum-valid frame is
// recognized. A checksum mismatch drops the frame and resets to
// looking for the next STX, mirroring how a noisy line is recovered
// from in gsmstate.c's frame parsers.
func (p *Protocol) DispatchByte(s *gammu.StateMachine, b byte) error {
	switch p.state {
	case stateSTX:
		if b == stx {
			p.state = stateDest
		}
	case stateDest:
		p.sum = b
		p.state = stateSrc
	case stateSrc:
		p.sum ^= b
		p.state = stateType
	case stateType:
		p.msgType = b
		p.sum ^= b
		p.state = stateLenHi
	case stateLenHi:
		p.length = int(b) * 256
		p.sum ^= b
		p.state = stateLenLo
	case stateLenLo:
		p.length += int(b)
		p.sum ^= b
		p.payload = make([]byte, 0, p.length)
		if p.length == 0 {
			p.state = stateChecksum
		} else {
			p.state = statePayload
		}
	case statePayload:
		p.payload = append(p.payload, b)
		p.sum ^= b
		if len(p.payload) == p.length {
			p.state = stateChecksum
		}
	case stateChecksum:
		msgType, payload := p.msgType, p.payload
		checksumOK := b == p.sum
		p.reset()
		if !checksumOK {
			if d := s.GetDebug(); d != nil {
				d.DumpMessageLevel2Recv(payload, int(msgType))
			}
			return nil
		}
		msg := &gammu.Protocol_Message{Buffer: payload, Type: msgType, Length: len(payload)}
		if d := s.GetDebug(); d != nil {
			d.DumpMessageLevel2Recv(payload, int(msgType))
			d.DumpMessageLevel3Recv(payload, int(msgType))
		}
		return s.DispatchMessage(msg)
	}
	return nil
}
