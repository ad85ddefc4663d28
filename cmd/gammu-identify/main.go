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

// gammu-identify connects to a phone using the discovered (or given)
// configuration and prints its manufacturer, model, and firmware.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/bandyiet18/gammu"
	// Import the reference devices/protocol/phone wiring.
	_ "github.com/bandyiet18/gammu/presets"
)

type config struct {
	configPath *string
	device     *string
	connection *string
	model      *string
	debug      *bool
}

func parseFlags() *config {
	cfg := &config{
		configPath: flag.String("config", "",
			"Config file path (default: standard gammurc discovery order)"),
		device:     flag.String("device", "", "Override the configured device path"),
		connection: flag.String("connection", "", "Override the configured connection string (e.g. at19200, fbus)"),
		model:      flag.String("model", "", "Force a phone module instead of auto-detecting"),
		debug:      flag.Bool("debug", false, "Trace sent/received frames to stderr"),
	}
	flag.Parse()
	return cfg
}

func loadConfig(s *gammu.StateMachine, cfg *config) error {
	path, err := gammu.FindConfigFile(*cfg.configPath)
	if err == nil {
		err = s.ReadConfigFile(path)
	}
	switch {
	case err == nil:
	case errors.Is(err, gammu.ErrUsingDefaults), errors.Is(err, gammu.ErrNoneSection):
		fmt.Fprintln(os.Stderr, "warning: no usable config file, using defaults")
		s.Config[0] = *gammu.DefaultConfig()
		s.ConfigNum = 1
	default:
		return err
	}

	if *cfg.device != "" {
		s.Config[0].Device = *cfg.device
	}
	if *cfg.connection != "" {
		s.Config[0].Connection = *cfg.connection
	}
	if *cfg.model != "" {
		s.Config[0].Model = *cfg.model
	}
	return nil
}

func run() error {
	cfg := parseFlags()

	s := gammu.AllocStateMachine()
	defer gammu.FreeStateMachine(s)

	if err := loadConfig(s, cfg); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	if *cfg.debug {
		gammu.SetGlobal(os.Stderr, gammu.DLText)
		for i := range s.Config {
			s.Config[i].UseGlobalDebugFile = true
		}
	}

	// Cable phones are routinely slow to enumerate after plug-in;
	// retry recoverable open failures with backoff before giving up.
	err := gammu.RetryWithConfig(context.Background(), gammu.DeviceRetryConfig(), func() error {
		return s.InitConnection(3)
	})
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	defer func() {
		if err := s.TerminateConnection(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: disconnect failed: %v\n", err)
		}
	}()

	fmt.Printf("Connection:   %s\n", s.GetUsedConnection())
	fmt.Printf("Manufacturer: %s\n", s.Phone.Manufacturer)
	fmt.Printf("Model:        %s\n", s.Phone.Model)
	fmt.Printf("Firmware:     %s\n", s.Phone.Version)

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gammu-identify: %v\n", err)
		os.Exit(1)
	}
}
