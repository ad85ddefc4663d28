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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NOTE: like initladder_test.go, these tests mutate the package-level
// phone registry, so they do not run with t.Parallel().

func registerNamed(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		RegisterModule(&fakePhoneModule{name: name})
	}
}

func TestSelectPhoneModuleATFamilyFeatureRouting(t *testing.T) {
	registerNamed(t, "Alcatel", "ATOBEX", "ATGEN")
	s := AllocStateMachine()

	got, err := s.SelectPhoneModule(ConnAT, "auto", &ModelInfo{Features: FeatureSet{FeatureAlcatel: true}})
	require.NoError(t, err)
	assert.Equal(t, "Alcatel", got.Name())

	got, err = s.SelectPhoneModule(ConnBlueAT, "auto", &ModelInfo{Features: FeatureSet{FeatureOBEX: true}})
	require.NoError(t, err)
	assert.Equal(t, "ATOBEX", got.Name())

	got, err = s.SelectPhoneModule(ConnIrdaAT, "auto", &ModelInfo{})
	require.NoError(t, err)
	assert.Equal(t, "ATGEN", got.Name())
}

func TestSelectPhoneModuleByConnectionFamily(t *testing.T) {
	registerNamed(t, "OBEXGEN", "Dummy", "GNAPGEN", "S60", "N6510")
	s := AllocStateMachine()

	tests := []struct {
		conn ConnectionType
		info *ModelInfo
		want string
	}{
		{ConnIrdaOBEX, nil, "OBEXGEN"},
		{ConnBlueOBEX, nil, "OBEXGEN"},
		{ConnNone, nil, "Dummy"},
		{ConnBlueGNAPBUS, nil, "GNAPGEN"},
		{ConnIrdaGNAPBUS, nil, "GNAPGEN"},
		{ConnBlueS60, nil, "S60"},
		{ConnFBUS, &ModelInfo{Features: FeatureSet{FeatureSeries4030: true}}, "N6510"},
	}
	for _, tt := range tests {
		got, err := s.SelectPhoneModule(tt.conn, "auto", tt.info)
		require.NoError(t, err, tt.conn)
		assert.Equal(t, tt.want, got.Name(), tt.conn)
	}
}

func TestSelectPhoneModuleExplicitModelsListFallback(t *testing.T) {
	module := &fakePhoneModule{name: "TESTSEL-6310", models: []string{"6310", "6310i"}}
	RegisterModule(module)
	s := AllocStateMachine()

	got, err := s.SelectPhoneModule(ConnFBUS, "6310i", nil)
	require.NoError(t, err)
	assert.Equal(t, module.Name(), got.Name())

	_, err = s.SelectPhoneModule(ConnFBUS, "no-such-model", nil)
	assert.True(t, errors.Is(err, ErrUnknownModelString))
}

func TestProvisionalModuleForNokiaCableIsNAUTO(t *testing.T) {
	registerNamed(t, "NAUTO")

	for _, conn := range []ConnectionType{ConnFBUS, ConnFBUSUSB, ConnDKU5FBUS2} {
		got, ok := ProvisionalModuleFor(conn)
		require.True(t, ok, conn)
		assert.Equal(t, "NAUTO", got.Name(), conn)
	}
}

func TestUnknownModelFeaturesThresholds(t *testing.T) {
	s := AllocStateMachine()

	feats, ok := s.UnknownModelFeatures("RM-168")
	require.True(t, ok)
	assert.True(t, feats.Has(FeatureSeries4030))
	assert.True(t, feats.Has(Feature6230iCaller))
	assert.True(t, feats.Has(FeatureSMSFiles))

	// at the threshold, not above it.
	_, ok = s.UnknownModelFeatures("RM-167")
	assert.False(t, ok)

	feats, ok = s.UnknownModelFeatures("RH-64")
	require.True(t, ok)
	assert.True(t, feats.Has(FeatureSeries4030))
	// the 6230i caller bundle is RM-only.
	assert.False(t, feats.Has(Feature6230iCaller))

	_, ok = s.UnknownModelFeatures("RH-63")
	assert.False(t, ok)

	_, ok = s.UnknownModelFeatures("6310i")
	assert.False(t, ok)
	_, ok = s.UnknownModelFeatures("RM-notanumber")
	assert.False(t, ok)
}

// The thresholds are tunables, not constants.
func TestUnknownModelFeaturesConfigurableThresholds(t *testing.T) {
	s := AllocStateMachine()
	s.rmThreshold = 10

	_, ok := s.UnknownModelFeatures("RM-11")
	assert.True(t, ok)
}
