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

// Package serial provides a gammu.Device_Functions over a real UART,
// the physical endpoint the "at"/"fbus"/"fbususb" connection families
// bind to.
package serial

import (
	"fmt"
	"strings"
	"time"

	gosuart "go.bug.st/serial"

	"github.com/bandyiet18/gammu"
)

const (
	defaultBaud        = 19200
	defaultReadTimeout = 200 * time.Millisecond
)

// Device implements gammu.Device_Functions over go.bug.st/serial.
type Device struct {
	port gosuart.Port
	baud int
}

// New returns an unopened Device. baud <= 0 picks the 19200 default
// gsmstate.c's AT family connections use absent an "atNNNN" suffix.
func New(baud int) *Device {
	if baud <= 0 {
		baud = defaultBaud
	}
	return &Device{baud: baud}
}

// OpenDevice opens the named serial port and, unless skipDtrRts is
// set, raises DTR (and RTS, unless noPowerCable is set) the way
// gsmstate.c's GSM_OpenDevice does for cable-powered phones.
func (d *Device) OpenDevice(device string, skipDtrRts, noPowerCable bool) error {
	mode := &gosuart.Mode{
		BaudRate: d.baud,
		DataBits: 8,
		Parity:   gosuart.NoParity,
		StopBits: gosuart.OneStopBit,
	}

	port, err := gosuart.Open(device, mode)
	if err != nil {
		return translateOpenError(err)
	}
	if err := port.SetReadTimeout(defaultReadTimeout); err != nil {
		_ = port.Close()
		return gammu.NewStateMachineError("OpenDevice", err, gammu.KindDevice)
	}

	if !skipDtrRts {
		if err := port.SetDTR(true); err != nil {
			_ = port.Close()
			return gammu.NewStateMachineError("OpenDevice", err, gammu.KindDevice)
		}
		if !noPowerCable {
			if err := port.SetRTS(true); err != nil {
				_ = port.Close()
				return gammu.NewStateMachineError("OpenDevice", err, gammu.KindDevice)
			}
		}
	}

	d.port = port
	return nil
}

func (d *Device) CloseDevice() error {
	if d.port == nil {
		return nil
	}
	err := d.port.Close()
	d.port = nil
	if err != nil {
		return gammu.NewStateMachineError("CloseDevice", err, gammu.KindDevice)
	}
	return nil
}

func (d *Device) ReadDevice(buf []byte) (int, error) {
	if d.port == nil {
		return 0, gammu.NewStateMachineError("ReadDevice", gammu.ErrDeviceNotWork, gammu.KindDevice)
	}
	n, err := d.port.Read(buf)
	if err != nil {
		return n, gammu.NewStateMachineError("ReadDevice", err, gammu.KindDevice)
	}
	return n, nil
}

func (d *Device) WriteDevice(buf []byte) (int, error) {
	if d.port == nil {
		return 0, gammu.NewStateMachineError("WriteDevice", gammu.ErrDeviceNotWork, gammu.KindDevice)
	}
	n, err := d.port.Write(buf)
	if err != nil {
		return n, gammu.NewStateMachineError("WriteDevice", err, gammu.KindDevice)
	}
	return n, nil
}

func (d *Device) SetDTR(state bool) error {
	if d.port == nil {
		return nil
	}
	if err := d.port.SetDTR(state); err != nil {
		return gammu.NewStateMachineError("SetDTR", err, gammu.KindDevice)
	}
	return nil
}

func (d *Device) SetRTS(state bool) error {
	if d.port == nil {
		return nil
	}
	if err := d.port.SetRTS(state); err != nil {
		return gammu.NewStateMachineError("SetRTS", err, gammu.KindDevice)
	}
	return nil
}

// translateOpenError classifies go.bug.st/serial's open error text
// into the recoverable device-error taxonomy the init ladder falls
// back past, since the library doesn't expose typed errno-equivalent
// values itself.
func translateOpenError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "busy"):
		return gammu.NewStateMachineError("OpenDevice", fmt.Errorf("%w: %w", gammu.ErrDeviceBusy, err), gammu.KindDevice)
	case strings.Contains(msg, "permission"):
		return gammu.NewStateMachineError("OpenDevice", fmt.Errorf("%w: %w", gammu.ErrDeviceNoPermission, err), gammu.KindDevice)
	case strings.Contains(msg, "no such file"), strings.Contains(msg, "not found"), strings.Contains(msg, "cannot find"):
		return gammu.NewStateMachineError("OpenDevice", fmt.Errorf("%w: %w", gammu.ErrDeviceNotExist, err), gammu.KindDevice)
	default:
		return gammu.NewStateMachineError("OpenDevice", fmt.Errorf("%w: %w", gammu.ErrDeviceOpenError, err), gammu.KindDevice)
	}
}
