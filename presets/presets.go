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

// Package presets wires the reference devices/protocol/phone packages
// into the core's connection and phone-module registries. Importing it
// for its side effects (a blank import, the way database/sql drivers
// register themselves) is enough to make the
// "at"/"fbus"/"fbususb"/"dku5"/"none" connections and the
// ATGEN/Dummy/NAUTO phone modules available to
// StateMachine.InitConnection; a program wiring its own modules instead
// does not need this package at all.
package presets

import (
	"github.com/bandyiet18/gammu"
	"github.com/bandyiet18/gammu/devices/i2c"
	"github.com/bandyiet18/gammu/devices/null"
	"github.com/bandyiet18/gammu/devices/serial"
	"github.com/bandyiet18/gammu/phone/atgen"
	"github.com/bandyiet18/gammu/phone/dummy"
	"github.com/bandyiet18/gammu/phone/nauto"
	"github.com/bandyiet18/gammu/protocol/fbus"
)

// serialFBUS binds a UART at the parsed speed (an "atNNNN" suffix)
// with the FBUS-style framing.
func serialFBUS(p gammu.ParsedConnection) (gammu.Device_Functions, gammu.Protocol_Functions, error) {
	return serial.New(p.Speed), fbus.New(), nil
}

func init() {
	gammu.RegisterConnection(gammu.ConnAT, serialFBUS)
	gammu.RegisterConnection(gammu.ConnFBUS, serialFBUS)
	gammu.RegisterConnection(gammu.ConnFBUSUSB, serialFBUS)
	gammu.RegisterConnection(gammu.ConnDKU5FBUS2, func(_ gammu.ParsedConnection) (gammu.Device_Functions, gammu.Protocol_Functions, error) {
		return i2c.New(), fbus.New(), nil
	})
	gammu.RegisterConnection(gammu.ConnNone, func(_ gammu.ParsedConnection) (gammu.Device_Functions, gammu.Protocol_Functions, error) {
		return null.New(), fbus.New(), nil
	})

	gammu.RegisterModule(atgen.New())
	gammu.RegisterModule(dummy.New())
	gammu.RegisterModule(nauto.New())
}
