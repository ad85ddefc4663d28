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

//go:build unix

package gammu

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireLockHeldLockFails(t *testing.T) {
	t.Parallel()

	device := filepath.Join(t.TempDir(), "ttyHeld")
	first, err := acquireLock(device)
	require.NoError(t, err)
	defer func() { _ = first.release() }()

	_, err = acquireLock(device)
	assert.True(t, errors.Is(err, ErrDeviceLocked))
}

func TestOpenConnectionDeviceFailureReleasesLock(t *testing.T) {
	t.Parallel()

	device := filepath.Join(t.TempDir(), "ttyFake")
	dev := &fakeDevice{openErr: ErrDeviceNotExist}
	s := AllocStateMachine()
	s.BindFunctions(dev, &fakeProtocol{}, nil)

	err := s.OpenConnection(&Config{Device: device, LockDevice: true})
	assert.True(t, errors.Is(err, ErrDeviceNotExist))
	assert.False(t, s.IsConnected())
	assert.Nil(t, s.lock)

	// the lock was released: a second acquisition must succeed.
	lock, err := acquireLock(device)
	require.NoError(t, err)
	require.NoError(t, lock.release())
}
