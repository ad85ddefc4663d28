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
	"errors"
	"fmt"
)

// entryMatches tries a single ReplyEntry row's match kind against a
// reassembled frame:
//
//   - long-ID frame: len(MsgType) == 0 and SubtypeChar == 0; matches when
//     Subtype equals msg.Type (the frame's type byte IS the full identity).
//   - single-byte type: len(MsgType) == 1; matches when MsgType[0] equals
//     msg.Type, and, when SubtypeChar != 0, also requires the buffer byte
//     at offset SubtypeChar to equal Subtype.
//   - prefix frame: len(MsgType) >= 2; matches when msg.Buffer starts with
//     that exact byte sequence.
func entryMatches(e ReplyEntry, msg *Protocol_Message) bool {
	switch {
	case len(e.MsgType) == 0 && e.SubtypeChar == 0:
		return e.Subtype == msg.Type
	case len(e.MsgType) == 1:
		if e.MsgType[0] != msg.Type {
			return false
		}
		if e.SubtypeChar == 0 {
			return true
		}
		offset := int(e.SubtypeChar)
		return offset < len(msg.Buffer) && msg.Buffer[offset] == e.Subtype
	default:
		if len(msg.Buffer) < len(e.MsgType) {
			return false
		}
		for i, b := range e.MsgType {
			if msg.Buffer[i] != b {
				return false
			}
		}
		return true
	}
}

// CheckReplyFunctions walks table in order (the row order encodes
// precedence: first match wins) and returns the first entry matching
// msg, per the three kinds in entryMatches.
func CheckReplyFunctions(table []ReplyEntry, msg *Protocol_Message) (ReplyEntry, bool) {
	for _, e := range table {
		if isTerminator(e) {
			break
		}
		if entryMatches(e, msg) {
			return e, true
		}
	}
	return ReplyEntry{}, false
}

// isNAUTO reports whether the currently bound phone module is the
// NAUTO probe placeholder, which suppresses
// UnknownFrame/FrameNotRequested diagnostics since a probe against an
// unidentified phone is expected to see frames it cannot interpret.
func (s *StateMachine) isNAUTO() bool {
	m, ok := s.phone.(PhoneModule)
	return ok && m.Name() == "NAUTO"
}

// DispatchMessage is called by a Protocol_Functions implementation
// once per reassembled frame. It consults the user's reply table
// before the active phone module's, picks the first matching entry,
// and resolves it against the currently outstanding request:
//
//   - no entry matches at all: UnknownFrame, translated to Timeout.
//   - an entry matches but isn't for the outstanding request (and isn't
//     one of the IDIncomingFrame/IDEachFrame wildcards): FrameNotRequested,
//     translated to Timeout.
//   - a preferred match's handler returning ErrNeedAnotherAnswer leaves
//     RequestID pending for a following frame; any other outcome clears it
//     (unless the match was a wildcard, which never owns a request).
func (s *StateMachine) DispatchMessage(msg *Protocol_Message) error {
	s.Phone.RequestMsg = msg

	entry, ok := CheckReplyFunctions(s.User.UserReplyFunctions, msg)
	if !ok && s.phone != nil {
		entry, ok = CheckReplyFunctions(s.phone.ReplyFunctions(), msg)
	}
	if !ok {
		s.traceUnmatched(msg, "UnknownFrame")
		return s.translateToTimeout(ErrUnknownFrame)
	}

	wildcard := entry.RequestID == IDIncomingFrame || entry.RequestID == IDEachFrame
	preferred := wildcard || entry.RequestID == s.Phone.RequestID

	if !preferred {
		s.traceUnmatched(msg, "FrameNotRequested")
		return s.translateToTimeout(ErrFrameNotRequested)
	}

	err := entry.Function(msg, s)
	if errors.Is(err, ErrNeedAnotherAnswer) {
		s.Phone.DispatchError = err
		return nil
	}

	if !wildcard {
		s.Phone.RequestID = IDNone
	}
	s.Phone.DispatchError = err
	return err
}

// traceUnmatched dumps the last sent frame and the received one when a
// frame could not be resolved against the outstanding request,
// suppressed while the NAUTO probe is active.
func (s *StateMachine) traceUnmatched(msg *Protocol_Message, label string) {
	if s.isNAUTO() {
		return
	}
	s.debugf("%s: type=0x%02x", label, msg.Type)
	if s.di == nil {
		return
	}
	if sent := s.Phone.SentMsg; sent != nil {
		s.di.DumpMessageLevel2(sent.Buffer, int(sent.Type))
	}
	s.di.DumpMessageLevel2Recv(msg.Buffer, int(msg.Type))
}

// translateToTimeout wraps cause in ErrTimeout so the waiter's retry
// envelope re-sends instead of surfacing an unmatched-frame error.
// RequestID stays outstanding; the original cause remains visible
// through errors.Is.
func (s *StateMachine) translateToTimeout(cause error) error {
	return NewStateMachineError("DispatchMessage",
		fmt.Errorf("%w: %w", ErrTimeout, cause), KindProtocol)
}
