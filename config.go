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

import "strings"

// MaxConfigNum bounds the Config slots a StateMachine carries.
const MaxConfigNum = 6

// PhoneFeature is one bit of a phone module's feature bitset, as
// synthesized by the unknown-model heuristic or parsed from a config
// file's "features" key.
type PhoneFeature string

const (
	FeatureSeries4030  PhoneFeature = "SERIES40_30"
	FeatureFiles2      PhoneFeature = "FILES2"
	FeatureTodo66      PhoneFeature = "TODO66"
	FeatureRadio       PhoneFeature = "RADIO"
	FeatureNotes       PhoneFeature = "NOTES"
	FeatureSMSFiles    PhoneFeature = "SMS_FILES"
	Feature6230iCaller PhoneFeature = "6230iCALLER"
	FeatureAlcatel     PhoneFeature = "ALCATEL"
	FeatureOBEX        PhoneFeature = "OBEX"
)

// FeatureSet is an unordered bag of PhoneFeature values.
type FeatureSet map[PhoneFeature]bool

func (f FeatureSet) Has(feat PhoneFeature) bool { return f[feat] }

func (f FeatureSet) add(feats ...PhoneFeature) FeatureSet {
	for _, feat := range feats {
		f[feat] = true
	}
	return f
}

// Config is one named connection profile: where to connect, with
// which protocol-transport, to which (or auto-detected) phone module,
// plus per-profile debug/localization settings.
type Config struct {
	Device             string
	Connection         string
	Model              string
	DebugFile          string
	DebugLevel         string
	TextReminder       string
	TextMeeting        string
	TextCall           string
	TextBirthday       string
	TextMemo           string
	Features           FeatureSet
	SyncTime           bool
	LockDevice         bool
	StartInfo          bool
	UseGlobalDebugFile bool
}

// DefaultConfig returns a Config populated with gsmstate.c's
// documented defaults, used both as the GSM_ReadConfig fallback for
// slot 0 and as a starting point for programmatic configuration.
func DefaultConfig() *Config {
	return &Config{
		Device:       "/dev/ttyUSB0",
		Connection:   "at",
		Model:        "",
		SyncTime:     false,
		DebugFile:    "",
		DebugLevel:   "",
		LockDevice:   false,
		StartInfo:    false,
		TextReminder: "Reminder",
		TextMeeting:  "Meeting",
		TextCall:     "Call",
		TextBirthday: "Birthday",
		TextMemo:     "Memo",
		Features:     FeatureSet{},
	}
}

// trimmed returns a copy of cfg with Device/Model/Connection
// whitespace-trimmed, applied by the init ladder per slot.
func (cfg *Config) trimmed() *Config {
	out := *cfg
	out.Device = strings.TrimSpace(cfg.Device)
	out.Model = strings.TrimSpace(cfg.Model)
	out.Connection = strings.TrimSpace(cfg.Connection)
	return &out
}
