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
	"strconv"
	"strings"
)

// connectionEntry is one row of the static connection table,
// analogous to gsmstate.c's GSM_Connections[].
type connectionEntry struct {
	Name              string
	Type              ConnectionType
	SkipDtrRtsDefault bool
}

// connectionTable is the canonical name -> (type, default SkipDtrRts)
// table. Order matters only in that it is searched linearly; names are
// unique so order has no precedence effect here (unlike the reply
// table in dispatch.go).
// Bluetooth and IrDA sockets have no modem control lines, so those
// entries default to skipping the DTR/RTS dance.
var connectionTable = []connectionEntry{
	{Name: "at", Type: ConnAT},
	{Name: "blueat", Type: ConnBlueAT, SkipDtrRtsDefault: true},
	{Name: "irdaat", Type: ConnIrdaAT, SkipDtrRtsDefault: true},
	{Name: "dku2at", Type: ConnDKU2AT},
	{Name: "irdaobex", Type: ConnIrdaOBEX, SkipDtrRtsDefault: true},
	{Name: "blueobex", Type: ConnBlueOBEX, SkipDtrRtsDefault: true},
	{Name: "bluegnapbus", Type: ConnBlueGNAPBUS, SkipDtrRtsDefault: true},
	{Name: "irdagnapbus", Type: ConnIrdaGNAPBUS, SkipDtrRtsDefault: true},
	{Name: "blues60", Type: ConnBlueS60, SkipDtrRtsDefault: true},
	{Name: "fbus", Type: ConnFBUS},
	{Name: "fbususb", Type: ConnFBUSUSB},
	{Name: "dku5", Type: ConnDKU5FBUS2},
	{Name: "bluephonet", Type: ConnBluePhonet, SkipDtrRtsDefault: true},
	{Name: "none", Type: ConnNone},
}

// connectionAliases maps alternate spellings onto a canonical name in
// connectionTable, so e.g. "fbusdlr3" resolves bit-identically to
// "dlr3".
var connectionAliases = map[string]string{
	"fbusdlr3":  "dku5",
	"dlr3":      "dku5",
	"dku5fbus2": "dku5",
}

// ParsedConnection is the result of parsing a connection string.
type ParsedConnection struct {
	Type         ConnectionType
	SkipDtrRts   bool
	NoPowerCable bool
	Speed        int
}

// ParseConnectionString strips -nodtr/-nopower suffixes, looks up the
// remainder (through the alias table first), and falls back to parsing
// "at<speed>" when no table entry matches.
func ParseConnectionString(conn string) (ParsedConnection, error) {
	var p ParsedConnection

	remainder := strings.ToLower(strings.TrimSpace(conn))
	if strings.HasSuffix(remainder, "-nodtr") {
		p.SkipDtrRts = true
		remainder = strings.TrimSuffix(remainder, "-nodtr")
	}
	if strings.HasSuffix(remainder, "-nopower") {
		p.NoPowerCable = true
		remainder = strings.TrimSuffix(remainder, "-nopower")
	}

	if canonical, ok := connectionAliases[remainder]; ok {
		remainder = canonical
	}

	for _, entry := range connectionTable {
		if entry.Name == remainder {
			p.Type = entry.Type
			if entry.SkipDtrRtsDefault {
				p.SkipDtrRts = true
			}
			return p, nil
		}
	}

	if strings.HasPrefix(remainder, "at") {
		speedStr := strings.TrimPrefix(remainder, "at")
		if speed, err := strconv.Atoi(speedStr); err == nil && speed > 0 {
			p.Type = ConnAT
			p.Speed = speed
			return p, nil
		}
	}

	return ParsedConnection{}, NewStateMachineError("ParseConnectionString", ErrUnknownConnectionTypeString, KindLifecycle)
}

// ConnectionFactory builds the (Device_Functions, Protocol_Functions)
// pair a ConnectionType binds to, from the parsed connection string
// (so an "atNNNN" baud suffix reaches the device). Reference
// implementations register themselves through RegisterConnection from
// an init() in their own package (e.g. devices/serial paired with
// protocol/fbus), mirroring how gsmstate.c's GSM_RegisterAllConnections
// wires its static table.
type ConnectionFactory func(p ParsedConnection) (Device_Functions, Protocol_Functions, error)

var connectionBindings = map[ConnectionType]ConnectionFactory{}

// RegisterConnection installs factory as the binding for t, replacing
// any previous registration. Call from an importing program's init(),
// not from this package.
func RegisterConnection(t ConnectionType, factory ConnectionFactory) {
	connectionBindings[t] = factory
}

// BindConnection looks up p.Type's factory and builds a fresh
// device/protocol pair for it.
func BindConnection(p ParsedConnection) (Device_Functions, Protocol_Functions, error) {
	factory, ok := connectionBindings[p.Type]
	if !ok {
		return nil, nil, NewStateMachineError("BindConnection", ErrDisabled, KindLifecycle)
	}
	device, protocol, err := factory(p)
	if err != nil {
		return nil, nil, NewStateMachineError("BindConnection", err, KindDevice)
	}
	return device, protocol, nil
}
