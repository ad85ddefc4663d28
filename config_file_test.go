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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindConfigFilePrefersOverride(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "myconfig")
	require.NoError(t, os.WriteFile(override, []byte("[gammu]\n"), 0o644))

	path, err := FindConfigFile(override)
	require.NoError(t, err)
	assert.Equal(t, override, path)
}

func TestFindConfigFileFallsBackToHomeGammurc(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", "")

	rc := filepath.Join(dir, ".gammurc")
	require.NoError(t, os.WriteFile(rc, []byte("[gammu]\n"), 0o644))

	path, err := FindConfigFile("")
	require.NoError(t, err)
	assert.Equal(t, rc, path)
}

func TestFindConfigFileNoneExist(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", "")

	_, err := FindConfigFile(filepath.Join(dir, "does-not-exist"))
	assert.True(t, errors.Is(err, ErrNoneSection))
}

func TestExpandUserPathTilde(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	assert.Equal(t, dir, expandUserPath("~"))
	assert.Equal(t, filepath.Join(dir, "logs", "x.log"), expandUserPath("~/logs/x.log"))
	assert.Equal(t, "/already/absolute", expandUserPath("/already/absolute"))
}

func TestReadConfigFileMissingFallsBackToDefaults(t *testing.T) {
	s := AllocStateMachine()
	err := s.ReadConfigFile(filepath.Join(t.TempDir(), "missing.ini"))
	assert.True(t, errors.Is(err, ErrUsingDefaults))
	assert.Equal(t, 1, s.ConfigNum)
	assert.Equal(t, *DefaultConfig(), s.Config[0])
}

func TestReadConfigFileParsesMultipleSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gammurc")
	contents := `
[gammu]
device = /dev/ttyUSB2
connection = fbus
model = auto
synchronizetime = true
use_locking = true
startinfo = true
features = SMS_FILES, notes

[gammu1]
device = /dev/ttyACM0
connection = at
model = 6310i
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	s := AllocStateMachine()
	err := s.ReadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, s.ConfigNum)

	assert.Equal(t, "/dev/ttyUSB2", s.Config[0].Device)
	assert.Equal(t, "fbus", s.Config[0].Connection)
	assert.Equal(t, "", s.Config[0].Model) // "auto" normalizes to empty
	assert.True(t, s.Config[0].SyncTime)
	assert.True(t, s.Config[0].LockDevice)
	assert.True(t, s.Config[0].StartInfo)
	assert.True(t, s.Config[0].Features.Has(FeatureSMSFiles))
	assert.True(t, s.Config[0].Features.Has(FeatureNotes))

	assert.Equal(t, "/dev/ttyACM0", s.Config[1].Device)
	assert.Equal(t, "6310i", s.Config[1].Model)
}

func TestReadConfigFilePortFallsBackWhenDeviceMissing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gammurc")
	contents := "[gammu]\nport = /dev/ttyS1\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	s := AllocStateMachine()
	err := s.ReadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyS1", s.Config[0].Device)
}

func TestReadConfigFileEmptyFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.ini")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	s := AllocStateMachine()
	err := s.ReadConfigFile(path)
	assert.True(t, errors.Is(err, ErrUsingDefaults))
	assert.Equal(t, 1, s.ConfigNum)
}

func TestParseFeaturesCommaAndSpaceSeparated(t *testing.T) {
	t.Parallel()

	fs := parseFeatures("sms_files, notes  radio")
	assert.True(t, fs.Has(FeatureSMSFiles))
	assert.True(t, fs.Has(FeatureNotes))
	assert.True(t, fs.Has(FeatureRadio))
	assert.False(t, fs.Has(FeatureOBEX))
}
