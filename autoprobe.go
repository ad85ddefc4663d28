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

// TryGetModel picks a provisional phone module purely from
// ConnectionType, then runs Initialise -> GetModel -> Terminate on it
// solely to populate PhoneData.Model. The device is left open
// across the cycle so the real module selection can reuse the channel.
func (s *StateMachine) TryGetModel() error {
	module, ok := ProvisionalModuleFor(s.ConnectionType)
	if !ok {
		return nil
	}

	// The probe module must be the bound phone for the duration of the
	// cycle so DispatchMessage consults its reply table (and, for
	// NAUTO, suppresses unmatched-frame diagnostics). The final
	// selection rebinds s.phone afterwards.
	prev := s.phone
	s.phone = module
	defer func() { s.phone = prev }()

	if err := module.Initialise(s); err != nil {
		return NewStateMachineError("TryGetModel", err, KindProtocol)
	}

	model, err := module.GetModel(s)
	terminateErr := module.Terminate(s)

	if err != nil {
		return NewStateMachineError("TryGetModel", err, KindOperation)
	}
	if terminateErr != nil {
		return NewStateMachineError("TryGetModel", terminateErr, KindProtocol)
	}

	s.Phone.Model = model
	return nil
}
