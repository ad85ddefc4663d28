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

// Package dummy provides the phone module the "none" connection
// selects (registered as "Dummy"): canned identity answers, no wire
// traffic, so callers can exercise the full request lifecycle without
// hardware attached.
package dummy

import (
	"time"

	"github.com/bandyiet18/gammu"
)

// Module answers every identity query from fixed strings and records
// clock pushes (see LastSetTime) without sending anything.
type Module struct {
	lastSetTime time.Time
}

// New returns an unregistered Module; call gammu.RegisterModule(New())
// to make it selectable.
func New() *Module {
	return &Module{}
}

func (*Module) Name() string     { return "Dummy" }
func (*Module) Models() []string { return []string{"dummy"} }

func (*Module) Initialise(*gammu.StateMachine) error { return nil }
func (*Module) Terminate(*gammu.StateMachine) error  { return nil }

func (*Module) GetManufacturer(*gammu.StateMachine) (string, error) {
	return "Gammu", nil
}

func (*Module) GetModel(*gammu.StateMachine) (string, error) {
	return "Dummy", nil
}

func (*Module) GetFirmware(*gammu.StateMachine) (string, error) {
	return "1.0", nil
}

// SetDateTime records the pushed time so tests can observe the
// synchronizetime path end to end.
func (m *Module) SetDateTime(_ *gammu.StateMachine, t time.Time) error {
	m.lastSetTime = t
	return nil
}

// LastSetTime returns the most recent clock push, zero if none.
func (m *Module) LastSetTime() time.Time { return m.lastSetTime }

// ReplyFunctions is a bare terminator: nothing ever arrives on the
// null device, so there is nothing to match.
func (*Module) ReplyFunctions() []gammu.ReplyEntry {
	return []gammu.ReplyEntry{{}}
}
