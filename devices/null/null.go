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

// Package null provides the gammu.Device_Functions the "none"
// connection binds to: every operation succeeds and no I/O ever
// happens, pairing with the Dummy phone module for offline use.
package null

// Device is a Device_Functions that never performs I/O. Reads always
// report zero bytes, so any request waited on through it times out.
type Device struct{}

// New returns a Device. It is stateless; one instance may back any
// number of connections.
func New() *Device {
	return &Device{}
}

func (*Device) OpenDevice(_ string, _, _ bool) error { return nil }
func (*Device) CloseDevice() error                   { return nil }

func (*Device) ReadDevice(_ []byte) (int, error) { return 0, nil }

func (*Device) WriteDevice(buf []byte) (int, error) { return len(buf), nil }

func (*Device) SetDTR(bool) error { return nil }
func (*Device) SetRTS(bool) error { return nil }
