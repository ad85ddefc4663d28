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
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/ini.v1"
)

// FindConfigFile mirrors GSM_FindGammuRC's discovery order: an
// explicit override path first, then the platform/XDG candidates in
// order, returning the first one that exists and isn't a directory.
func FindConfigFile(override string) (string, error) {
	var candidates []string
	if override != "" {
		candidates = append(candidates, override)
	}

	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			candidates = append(candidates, filepath.Join(appdata, "gammurc"))
		}
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, "gammu", "config"))
	} else if home := os.Getenv("HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, ".config", "gammu", "config"))
	}

	if home := os.Getenv("HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, ".gammurc"))
	}
	if u, err := user.Current(); err == nil && u.HomeDir != "" {
		candidates = append(candidates, filepath.Join(u.HomeDir, ".gammurc"))
	}

	if runtime.GOOS == "windows" {
		if drive, hp := os.Getenv("HOMEDRIVE"), os.Getenv("HOMEPATH"); drive != "" || hp != "" {
			candidates = append(candidates, drive+hp+`\gammurc`)
		}
	}

	candidates = append(candidates, "/etc/gammurc", "gammurc")

	for _, c := range candidates {
		if c == "" {
			continue
		}
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c, nil
		}
	}

	return "", NewStateMachineError("FindConfigFile", ErrNoneSection, KindLifecycle)
}

// expandUserPath expands a leading "~" the way GSM_ExpandUserPath does,
// used for the logfile key.
func expandUserPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home := os.Getenv("HOME")
	if home == "" {
		if u, err := user.Current(); err == nil {
			home = u.HomeDir
		}
	}
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// ReadConfigFile parses path's `[gammu]`, `[gammu1]`, `[gammu2]`, ...
// sections in order, stopping at
// the first missing section number and setting ConfigNum to the count
// actually read. Failing to even open path falls back to hardcoded
// defaults for slot 0 and reports ErrUsingDefaults rather than failing
// outright, mirroring GSM_ReadConfig's slot-0 leniency; any other
// failure mode (no sections at all) does the same.
func (s *StateMachine) ReadConfigFile(path string) error {
	file, err := ini.Load(path)
	if err != nil {
		s.Config[0] = *DefaultConfig()
		s.ConfigNum = 1
		return NewStateMachineError("ReadConfigFile", ErrUsingDefaults, KindLifecycle)
	}

	count := 0
	for slot := 0; slot < MaxConfigNum; slot++ {
		name := "gammu"
		if slot > 0 {
			name = fmt.Sprintf("gammu%d", slot)
		}
		if !file.HasSection(name) {
			break
		}
		s.Config[slot] = readConfigSection(file.Section(name))
		count++
	}

	if count == 0 {
		s.Config[0] = *DefaultConfig()
		s.ConfigNum = 1
		return NewStateMachineError("ReadConfigFile", ErrUsingDefaults, KindLifecycle)
	}

	s.ConfigNum = count
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// readConfigSection fills a Config from one INI section, starting from
// DefaultConfig() and overriding only the keys present.
func readConfigSection(sec *ini.Section) Config {
	cfg := DefaultConfig()

	if v := firstNonEmpty(sec.Key("device").String(), sec.Key("port").String()); v != "" {
		cfg.Device = v
	}
	if v := sec.Key("connection").String(); v != "" {
		cfg.Connection = v
	}
	if v := sec.Key("model").String(); v != "" {
		if strings.EqualFold(v, "auto") {
			v = ""
		}
		cfg.Model = v
	}
	cfg.SyncTime = sec.Key("synchronizetime").MustBool(cfg.SyncTime)
	if v := sec.Key("logfile").String(); v != "" {
		cfg.DebugFile = expandUserPath(v)
	}
	if v := sec.Key("logformat").String(); v != "" {
		cfg.DebugLevel = v
	}
	cfg.LockDevice = sec.Key("use_locking").MustBool(cfg.LockDevice)
	cfg.StartInfo = sec.Key("startinfo").MustBool(cfg.StartInfo)
	if v := sec.Key("reminder").String(); v != "" {
		cfg.TextReminder = v
	}
	if v := sec.Key("meeting").String(); v != "" {
		cfg.TextMeeting = v
	}
	if v := sec.Key("call").String(); v != "" {
		cfg.TextCall = v
	}
	if v := sec.Key("birthday").String(); v != "" {
		cfg.TextBirthday = v
	}
	if v := sec.Key("memo").String(); v != "" {
		cfg.TextMemo = v
	}
	if v := sec.Key("features").String(); v != "" {
		cfg.Features = parseFeatures(v)
	}

	return *cfg
}

// parseFeatures splits a comma/space-separated "features" key into a
// FeatureSet, uppercasing tokens to match the PhoneFeature constants.
func parseFeatures(raw string) FeatureSet {
	fs := FeatureSet{}
	for _, tok := range strings.Fields(strings.ReplaceAll(raw, ",", " ")) {
		fs[PhoneFeature(strings.ToUpper(tok))] = true
	}
	return fs
}
