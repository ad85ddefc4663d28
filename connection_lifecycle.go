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

// OpenConnection optionally locks the device, opens it, marks the
// machine opened, then initialises the bound protocol. The
// Device_Functions/Protocol_Functions pair must already be bound
// (connection registration happens one level up in initladder.go
// since it also needs the connection string parsed).
func (s *StateMachine) OpenConnection(cfg *Config) error {
	if cfg.LockDevice {
		lock, err := acquireLock(cfg.Device)
		if err != nil {
			return err
		}
		s.lock = lock
	}

	if err := s.device.OpenDevice(cfg.Device, s.SkipDtrRts, s.NoPowerCable); err != nil {
		if s.lock != nil {
			_ = s.lock.release()
			s.lock = nil
		}
		s.di.LogOSError("opening device", err)
		return NewStateMachineError("OpenConnection", err, KindDevice)
	}

	s.opened = true

	if err := s.protocol.Initialise(s); err != nil {
		// A failed protocol Initialise leaves opened true; the caller
		// is expected to call CloseConnection.
		return NewStateMachineError("OpenConnection", err, KindProtocol)
	}

	return nil
}

// TerminateConnection ends the session: the active phone module is
// Terminate'd first, then the connection is closed. Idempotent once
// the connection is no longer open.
func (s *StateMachine) TerminateConnection() error {
	if !s.opened {
		return nil
	}
	if s.phone != nil {
		if err := s.phone.Terminate(s); err != nil {
			s.debugf("phone module terminate failed: %s", err)
		}
	}
	return s.CloseConnection()
}

// CloseConnection terminates the protocol, closes the device,
// releases the lock, and zeroes PhoneData's identity fields. It is
// idempotent once opened is false.
func (s *StateMachine) CloseConnection() error {
	if !s.opened {
		return nil
	}

	var firstErr error
	if s.protocol != nil {
		if err := s.protocol.Terminate(s); err != nil && firstErr == nil {
			firstErr = NewStateMachineError("CloseConnection", err, KindProtocol)
		}
	}
	if s.device != nil {
		if err := s.device.CloseDevice(); err != nil {
			s.di.LogOSError("closing device", err)
			if firstErr == nil {
				firstErr = NewStateMachineError("CloseConnection", err, KindDevice)
			}
		}
	}
	if s.lock != nil {
		_ = s.lock.release()
		s.lock = nil
	}

	s.opened = false
	s.Phone.reset()

	return firstErr
}
