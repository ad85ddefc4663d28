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
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// lockFile is the OS-level advisory lock on the device path, acquired
// under Config.LockDevice.
type lockFile struct {
	f *os.File
}

// acquireLock opens (creating if needed) a sidecar lock file next to
// device and takes an exclusive, non-blocking flock on it.
func acquireLock(device string) (*lockFile, error) {
	path := device + ".lock"
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, NewStateMachineError("acquireLock", fmt.Errorf("%w: %w", ErrDeviceLocked, err), KindDevice)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = f.Close()
		return nil, NewStateMachineError("acquireLock", fmt.Errorf("%w: %w", ErrDeviceLocked, err), KindDevice)
	}
	return &lockFile{f: f}, nil
}

func (l *lockFile) release() error {
	if l == nil || l.f == nil {
		return nil
	}
	_ = unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	return l.f.Close()
}
