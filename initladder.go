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
	"strings"
	"time"
)

// InitConnection walks Config[0:ConfigNum] in order, trying each slot
// in full until one succeeds. A recoverable device error (or Timeout)
// on a slot moves on to the next one; any other error aborts the
// ladder immediately. Exhausting every slot without success returns
// the last slot's error; ErrUnconfigured is returned only when no slot
// is configured (ConfigNum <= 0).
func (s *StateMachine) InitConnection(replyNum int) error {
	if replyNum > 0 {
		s.ReplyNum = replyNum
	}
	if s.ConfigNum <= 0 {
		return NewStateMachineError("InitConnection", ErrUnconfigured, KindLifecycle)
	}

	var lastErr error
	for slot := 0; slot < s.ConfigNum; slot++ {
		cfg := s.Config[slot].trimmed()
		s.CurrentConfig = &s.Config[slot]
		s.bindDebug(cfg)

		err := s.initOneConfig(cfg)
		if err == nil {
			return nil
		}

		s.debugf("config slot %d failed to initialise: %s", slot, err)

		if !IsRecoverableDeviceError(err) {
			_ = s.CloseConnection()
			return err
		}
		lastErr = err
		_ = s.CloseConnection()
	}

	if lastErr != nil {
		return lastErr
	}
	return NewStateMachineError("InitConnection", ErrUnconfigured, KindLifecycle)
}

// bindDebug installs the DebugInfo a config slot requests: the shared
// global sink, a dedicated file, or a level-only sink with no
// destination.
func (s *StateMachine) bindDebug(cfg *Config) {
	if cfg.UseGlobalDebugFile {
		s.di = &DebugInfo{useGlobal: true}
		return
	}
	if cfg.DebugFile == "" {
		s.di = NewDebugInfo(nil, DebugLevel(cfg.DebugLevel))
		return
	}
	f, err := os.OpenFile(cfg.DebugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		s.di = NewDebugInfo(nil, DebugLevel(cfg.DebugLevel))
		s.di.LogOSError("opening debug file", err)
		return
	}
	s.di = NewDebugInfo(f, DebugLevel(cfg.DebugLevel))
}

// initOneConfig runs one already-trimmed Config slot through
// connection parsing, open, auto-probe, module selection, phone
// initialisation, the optional start-info banner and clock push, and
// the manufacturer/model/firmware identity queries, absorbing
// ErrNotSupported from any of the optional steps without failing the
// slot.
func (s *StateMachine) initOneConfig(cfg *Config) error {
	parsed, err := ParseConnectionString(cfg.Connection)
	if err != nil {
		return err
	}
	s.ConnectionType = parsed.Type
	s.SkipDtrRts = parsed.SkipDtrRts
	s.NoPowerCable = parsed.NoPowerCable
	s.Speed = parsed.Speed

	device, protocol, err := BindConnection(parsed)
	if err != nil {
		return err
	}
	s.device = device
	s.protocol = protocol

	if err := s.OpenConnection(cfg); err != nil {
		return err
	}

	module, err := s.resolveModule(parsed.Type, cfg)
	if err != nil {
		return err
	}
	s.phone = module

	if err := s.phone.Initialise(s); err != nil {
		return NewStateMachineError("InitConnection", err, KindProtocol)
	}

	if cfg.StartInfo {
		s.Phone.StartInfoCount = 30
		if shower, ok := s.phone.(StartInfoShower); ok {
			_ = shower.ShowStartInfo(true)
		}
	}

	if cfg.SyncTime {
		if setter, ok := s.phone.(ClockSetter); ok {
			if err := setter.SetDateTime(s, time.Now()); err != nil && !errors.Is(err, ErrNotSupported) {
				return NewStateMachineError("InitConnection", err, KindOperation)
			}
		}
	}

	if manufacturer, err := s.phone.GetManufacturer(s); err == nil {
		s.Phone.Manufacturer = manufacturer
	} else if !errors.Is(err, ErrNotSupported) {
		return NewStateMachineError("InitConnection", err, KindOperation)
	}
	if model, err := s.phone.GetModel(s); err == nil {
		s.Phone.Model = model
	} else if !errors.Is(err, ErrNotSupported) {
		return NewStateMachineError("InitConnection", err, KindOperation)
	}
	if firmware, err := s.phone.GetFirmware(s); err == nil {
		s.Phone.Version = firmware
	} else if !errors.Is(err, ErrNotSupported) {
		return NewStateMachineError("InitConnection", err, KindOperation)
	}

	return nil
}

// resolveModule auto-probes the model when none is pinned, selects a
// module, and, if selection can't resolve an explicitly configured
// model string, clears it and retries auto-detection exactly once
// (the goto autodetect path in gsmstate.c's GSM_InitConnection_Log).
// A non-empty cfg.Features (the gammurc "features" key) is merged on
// top of whatever the probe heuristic derived, so a user can force
// e.g. ALCATEL routing for a cable the heuristic doesn't know.
func (s *StateMachine) resolveModule(connType ConnectionType, cfg *Config) (PhoneModule, error) {
	model := cfg.Model
	retriedClear := false

	for {
		var info *ModelInfo
		if model == "" || strings.EqualFold(model, "auto") {
			if err := s.TryGetModel(); err != nil && !errors.Is(err, ErrNotSupported) {
				return nil, err
			}
			if s.Phone.Model != "" {
				info = &ModelInfo{Number: s.Phone.Model}
				if feats, ok := s.UnknownModelFeatures(s.Phone.Model); ok && nokiaCableConnections[connType] {
					info.Features = feats
				}
			}
		}

		if len(cfg.Features) > 0 {
			if info == nil {
				info = &ModelInfo{Number: model}
			}
			if info.Features == nil {
				info.Features = FeatureSet{}
			}
			for feat := range cfg.Features {
				info.Features[feat] = true
			}
		}
		if info != nil {
			s.Phone.ModelInfo = info
		}

		module, err := s.SelectPhoneModule(connType, model, info)
		if err != nil {
			if errors.Is(err, ErrUnknownModelString) && model != "" && !retriedClear {
				model = ""
				retriedClear = true
				continue
			}
			return nil, err
		}
		return module, nil
	}
}
