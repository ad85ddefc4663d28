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

// PhoneModule is a registrable vendor phone module: Phone_Functions
// plus the metadata phone-module selection needs. The
// well-known Name values "Alcatel", "ATOBEX", "ATGEN", "OBEXGEN",
// "Dummy", "GNAPGEN", "S60", "N6510", "NAUTO" participate in the
// first-match-wins rule table the same way gsmstate.c's
// GSM_RegisterAllPhoneModules hardcodes them; any other Name only
// participates in the final "models list contains the effective model
// string" fallback rule.
type PhoneModule interface {
	Phone_Functions
	Name() string
	// Models lists the space-separated model identifiers (as they'd
	// appear in a models table) this module claims explicit support
	// for.
	Models() []string
}

// phoneRegistry holds the modules RegisterModule has added, keyed by
// Name for the well-known lookups and walked in registration order for
// the generic models-list fallback.
var phoneRegistry = map[string]PhoneModule{}
var phoneRegistryOrder []PhoneModule

// RegisterModule adds m to the registry, mirroring gsmstate.c's
// GSM_RegisterModule. Re-registering a Name replaces the prior entry.
func RegisterModule(m PhoneModule) {
	if _, exists := phoneRegistry[m.Name()]; !exists {
		phoneRegistryOrder = append(phoneRegistryOrder, m)
	} else {
		for i, prev := range phoneRegistryOrder {
			if prev.Name() == m.Name() {
				phoneRegistryOrder[i] = m
			}
		}
	}
	phoneRegistry[m.Name()] = m
}

func claimsModel(m PhoneModule, model string) bool {
	for _, candidate := range m.Models() {
		if strings.EqualFold(candidate, model) {
			return true
		}
	}
	return false
}

// nokiaCableConnections is the set of ConnectionType values the
// Series40/30 rule and the unknown-model heuristic apply to.
var nokiaCableConnections = map[ConnectionType]bool{
	ConnFBUS:      true,
	ConnFBUSUSB:   true,
	ConnDKU5FBUS2: true,
}

var atFamilyConnections = map[ConnectionType]bool{
	ConnAT:     true,
	ConnBlueAT: true,
	ConnIrdaAT: true,
	ConnDKU2AT: true,
}

// SelectPhoneModule picks the phone module for a connection with
// first-match-wins rules, mirroring GSM_RegisterAllPhoneModules' order.
// info may be nil if no model info has been probed yet. The returned
// module is not yet Initialise'd; InitConnection (initladder.go) does
// that.
func (s *StateMachine) SelectPhoneModule(connType ConnectionType, configModel string, info *ModelInfo) (PhoneModule, error) {
	model := configModel
	auto := model == "" || strings.EqualFold(model, "auto")

	if auto {
		if m, ok := s.autoSelect(connType, info); ok {
			return m, nil
		}
	}

	effectiveModel := model
	if auto && info != nil {
		effectiveModel = info.Number
	}

	for _, m := range phoneRegistryOrder {
		if claimsModel(m, effectiveModel) {
			return m, nil
		}
	}

	return nil, NewStateMachineError("SelectPhoneModule", ErrUnknownModelString, KindLifecycle)
}

func (s *StateMachine) autoSelect(connType ConnectionType, info *ModelInfo) (PhoneModule, bool) {
	switch {
	case atFamilyConnections[connType] && info != nil && info.Features.Has(FeatureAlcatel):
		return lookupOptional("Alcatel")
	case atFamilyConnections[connType] && info != nil && info.Features.Has(FeatureOBEX):
		return lookupOptional("ATOBEX")
	case atFamilyConnections[connType]:
		return lookupOptional("ATGEN")
	case connType == ConnIrdaOBEX || connType == ConnBlueOBEX:
		return lookupOptional("OBEXGEN")
	case connType == ConnNone:
		return lookupOptional("Dummy")
	case connType == ConnBlueGNAPBUS || connType == ConnIrdaGNAPBUS:
		return lookupOptional("GNAPGEN")
	case connType == ConnBlueS60:
		return lookupOptional("S60")
	case nokiaCableConnections[connType] && info != nil && info.Features.Has(FeatureSeries4030):
		return lookupOptional("N6510")
	}
	return nil, false
}

func lookupOptional(name string) (PhoneModule, bool) {
	m, ok := phoneRegistry[name]
	return m, ok
}

// ProvisionalModuleFor picks TryGetModel's provisional module purely
// from ConnectionType, no model info needed yet.
func ProvisionalModuleFor(connType ConnectionType) (PhoneModule, bool) {
	switch {
	case atFamilyConnections[connType]:
		return lookupOptional("ATGEN")
	case connType == ConnIrdaOBEX || connType == ConnBlueOBEX:
		return lookupOptional("OBEXGEN")
	case connType == ConnBlueGNAPBUS || connType == ConnIrdaGNAPBUS:
		return lookupOptional("GNAPGEN")
	case connType == ConnBlueS60:
		return lookupOptional("S60")
	case nokiaCableConnections[connType]:
		return lookupOptional("NAUTO")
	case connType == ConnNone:
		return lookupOptional("Dummy")
	}
	return nil, false
}

// UnknownModelFeatures is the Nokia-cable unknown-model heuristic:
// it parses "RM-<n>"/"RH-<n>" prefixes and synthesizes a Series40/30
// feature bundle when n exceeds the state machine's configured
// threshold.
func (s *StateMachine) UnknownModelFeatures(probedModel string) (FeatureSet, bool) {
	probedModel = strings.TrimSpace(probedModel)
	var prefix string
	var threshold int
	switch {
	case strings.HasPrefix(probedModel, "RM-"):
		prefix, threshold = "RM-", s.rmThreshold
	case strings.HasPrefix(probedModel, "RH-"):
		prefix, threshold = "RH-", s.rhThreshold
	default:
		return nil, false
	}

	n, err := strconv.Atoi(strings.TrimPrefix(probedModel, prefix))
	if err != nil || n <= threshold {
		return nil, false
	}

	feats := FeatureSet{}.add(
		FeatureSeries4030, FeatureFiles2, FeatureTodo66,
		FeatureRadio, FeatureNotes, FeatureSMSFiles,
	)
	if prefix == "RM-" {
		feats.add(Feature6230iCaller)
	}
	return feats, true
}
