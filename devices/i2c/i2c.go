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

// Package i2c provides a gammu.Device_Functions over an I2C bus, the
// physical endpoint the DKU5/FBUS2 cable profile binds to.
package i2c

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/bandyiet18/gammu"
)

// defaultAddr is the DKU5/FBUS2 cable's fixed I2C slave address.
const defaultAddr = 0x48

// maxClockFreq caps the bus speed; the DKU5 cable is conservative
// about clock stretching.
const maxClockFreq = 400 * physic.KiloHertz

// Device implements gammu.Device_Functions over periph.io/x/conn's i2c
// package. Device does not have DTR/RTS lines, so SetDTR/SetRTS no-op.
type Device struct {
	dev     *i2c.Dev
	readBuf []byte
}

// New returns an unopened Device. OpenDevice's device-string argument
// is interpreted as the I2C bus name (e.g. "/dev/i2c-1" on Linux).
func New() *Device {
	return &Device{}
}

func (d *Device) OpenDevice(device string, _, _ bool) error {
	if _, err := host.Init(); err != nil {
		return gammu.NewStateMachineError("OpenDevice", fmt.Errorf("%w: %w", gammu.ErrDeviceOpenError, err), gammu.KindDevice)
	}

	bus, err := i2creg.Open(device)
	if err != nil {
		return gammu.NewStateMachineError("OpenDevice", fmt.Errorf("%w: %w", gammu.ErrDeviceNotExist, err), gammu.KindDevice)
	}
	_ = bus.SetSpeed(maxClockFreq)

	d.dev = &i2c.Dev{Addr: defaultAddr, Bus: bus}
	d.readBuf = make([]byte, 0, 256)
	return nil
}

func (d *Device) CloseDevice() error {
	d.dev = nil
	return nil
}

// ReadDevice performs one I2C transaction reading len(buf) bytes. A
// bus with nothing new to offer returns 0, nil, matching
// Device_Functions' "0 is a legal, non-error result" contract.
func (d *Device) ReadDevice(buf []byte) (int, error) {
	if d.dev == nil {
		return 0, gammu.NewStateMachineError("ReadDevice", gammu.ErrDeviceNotWork, gammu.KindDevice)
	}
	if err := d.dev.Tx(nil, buf); err != nil {
		return 0, gammu.NewStateMachineError("ReadDevice", err, gammu.KindDevice)
	}
	return len(buf), nil
}

func (d *Device) WriteDevice(buf []byte) (int, error) {
	if d.dev == nil {
		return 0, gammu.NewStateMachineError("WriteDevice", gammu.ErrDeviceNotWork, gammu.KindDevice)
	}
	if err := d.dev.Tx(buf, nil); err != nil {
		return 0, gammu.NewStateMachineError("WriteDevice", err, gammu.KindDevice)
	}
	return len(buf), nil
}

// SetDTR/SetRTS no-op: I2C has no control lines.
func (d *Device) SetDTR(bool) error { return nil }
func (d *Device) SetRTS(bool) error { return nil }
