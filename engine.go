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
	"context"
	"errors"
	"time"
)

// WaitFor sends buf up to ReplyNum times (retrying on Timeout),
// waiting for requestID to clear after each send. requestID == IDNone
// means fire-and-forget: the message is written once and WaitFor
// returns immediately without waiting.
func (s *StateMachine) WaitFor(buf []byte, msgType byte, timeoutIterations int, requestID RequestID) error {
	s.tickStartInfo()

	s.Phone.RequestID = requestID
	s.Phone.DispatchError = NewStateMachineError("WaitFor", ErrTimeout, KindProtocol)
	// No caller is waiting once this returns, however it returns.
	defer func() { s.Phone.RequestID = IDNone }()

	var lastErr error
	for reply := 0; reply < s.ReplyNum; reply++ {
		if reply > 0 {
			s.debugf("retry %d/%d", reply, s.ReplyNum)
		}

		if err := s.protocol.WriteMessage(s, buf, msgType); err != nil {
			return NewStateMachineError("WaitFor", err, KindProtocol)
		}

		if requestID == IDNone {
			return nil
		}

		result := s.waitForOnce(buf, msgType, timeoutIterations, requestID)
		if !errors.Is(result, ErrTimeout) {
			return result
		}
		lastErr = result
	}

	if lastErr != nil {
		return lastErr
	}
	return NewStateMachineError("WaitFor", ErrTimeout, KindProtocol)
}

// waitForOnce parks a borrowed copy of the sent message for
// diagnostic dumps, polls ReadDevice up to timeoutIterations times at
// the configured outer pace, and returns as soon as the dispatcher
// clears RequestID or Abort fires.
func (s *StateMachine) waitForOnce(buf []byte, msgType byte, timeoutIterations int, requestID RequestID) error {
	if len(buf) > 0 {
		sent := &Protocol_Message{Buffer: buf, Type: msgType, Length: len(buf)}
		s.Phone.SentMsg = sent
		defer func() { s.Phone.SentMsg = nil }()
	}

	for i := 0; i < timeoutIterations; {
		if s.aborted() {
			return NewStateMachineError("WaitForOnce", ErrAborted, KindProtocol)
		}

		n, err := s.ReadDevice(true)
		if err != nil {
			return err
		}

		if s.Phone.RequestID != requestID {
			// Dispatcher cleared (or changed) the outstanding request.
			return s.Phone.DispatchError
		}

		// A slow-trickling device keeps the wait alive: only idle
		// iterations count toward the timeout.
		if n > 0 {
			i = 0
		} else {
			i++
		}

		time.Sleep(s.waitPollInterval)
	}

	return NewStateMachineError("WaitForOnce", ErrTimeout, KindProtocol)
}

// ReadDevice reads whatever is available from the device, feeding
// every byte into the protocol's byte-fed parser.
// When waitForReply is true it polls with readPollInterval between
// empty reads until data arrives or readWallClockBound elapses;
// otherwise it makes a single attempt. Returns the number of bytes
// consumed.
func (s *StateMachine) ReadDevice(waitForReply bool) (int, error) {
	if !s.opened {
		return 0, NewStateMachineError("ReadDevice", ErrDeviceNotWork, KindDevice)
	}

	start := time.Now()
	buf := make([]byte, 256)

	for {
		if s.aborted() {
			return 0, NewStateMachineError("ReadDevice", ErrAborted, KindProtocol)
		}

		n, err := s.device.ReadDevice(buf)
		if err != nil {
			s.di.LogOSError("reading from device", err)
			return 0, NewStateMachineError("ReadDevice", err, KindDevice)
		}

		if n > 0 {
			// A dispatch outcome translated to Timeout (unmatched frame)
			// must not abandon the rest of the chunk, or the parser would
			// fall out of sync with the byte stream.
			var dispatchErr error
			for _, b := range buf[:n] {
				err := s.protocol.DispatchByte(s, b)
				if err == nil {
					continue
				}
				if errors.Is(err, ErrTimeout) {
					dispatchErr = err
					continue
				}
				return n, err
			}
			return n, dispatchErr
		}

		if !waitForReply {
			return 0, nil
		}
		if time.Since(start) >= s.readWallClockBound {
			return 0, nil
		}
		time.Sleep(s.readPollInterval)
	}
}

// WriteRaw writes buf to the bound device exactly once, with no
// framing of its own. Protocol_Functions implementations use this from
// WriteMessage to hand off an already-framed buffer (device is
// unexported, so this is their only path to it).
func (s *StateMachine) WriteRaw(buf []byte) (int, error) {
	if !s.opened {
		return 0, NewStateMachineError("WriteRaw", ErrDeviceNotWork, KindDevice)
	}
	n, err := s.device.WriteDevice(buf)
	if err != nil {
		s.di.LogOSError("writing to device", err)
		return n, NewStateMachineError("WriteRaw", err, KindDevice)
	}
	return n, nil
}

// tickStartInfo decrements the start-info countdown and invokes the
// module's ShowStartInfo(false) exactly once it reaches zero.
func (s *StateMachine) tickStartInfo() {
	if s.Phone.StartInfoCount <= 0 {
		return
	}
	s.Phone.StartInfoCount--
	if s.Phone.StartInfoCount == 0 {
		if shower, ok := s.phone.(StartInfoShower); ok {
			_ = shower.ShowStartInfo(false)
		}
	}
}

// WaitForContext is a context-cancelable variant of WaitFor: it runs
// WaitFor on a background goroutine and races it against ctx.Done(),
// calling Abort to unwind the blocked poll loop on cancellation rather
// than leaking the goroutine.
func (s *StateMachine) WaitForContext(ctx context.Context, buf []byte, msgType byte, timeoutIterations int, requestID RequestID) error {
	type result struct{ err error }
	done := make(chan result, 1)

	go func() {
		done <- result{s.WaitFor(buf, msgType, timeoutIterations, requestID)}
	}()

	select {
	case <-ctx.Done():
		s.Abort()
		<-done // wait for WaitFor to observe Abort and return
		return ctx.Err()
	case r := <-done:
		return r.err
	}
}
