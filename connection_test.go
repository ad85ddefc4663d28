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

func TestParseConnectionString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		conn string
		want ParsedConnection
	}{
		{
			name: "plain at",
			conn: "at",
			want: ParsedConnection{Type: ConnAT},
		},
		{
			name: "at with baud and nodtr suffix",
			conn: "at19200-nodtr",
			want: ParsedConnection{Type: ConnAT, Speed: 19200, SkipDtrRts: true},
		},
		{
			name: "dku5 with nopower suffix",
			conn: "dku5-nopower",
			want: ParsedConnection{Type: ConnDKU5FBUS2, NoPowerCable: true},
		},
		{
			name: "case insensitive",
			conn: "  FBUSUSB ",
			want: ParsedConnection{Type: ConnFBUSUSB},
		},
		{
			name: "bluephonet with nodtr",
			conn: "bluephonet-nodtr",
			want: ParsedConnection{Type: ConnBluePhonet, SkipDtrRts: true},
		},
		{
			name: "both suffixes",
			conn: "at115200-nopower-nodtr",
			want: ParsedConnection{Type: ConnAT, Speed: 115200, SkipDtrRts: true, NoPowerCable: true},
		},
		{
			name: "none",
			conn: "none",
			want: ParsedConnection{Type: ConnNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseConnectionString(tt.conn)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseConnectionStringAliases(t *testing.T) {
	t.Parallel()

	canonical, err := ParseConnectionString("dku5")
	require.NoError(t, err)

	for _, alias := range []string{"fbusdlr3", "dlr3", "dku5fbus2"} {
		got, err := ParseConnectionString(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, canonical, got, alias)
	}
}

// Repeated parses of the same string must produce identical results:
// the parser holds no state between calls.
func TestParseConnectionStringDeterministic(t *testing.T) {
	t.Parallel()

	for _, conn := range []string{"at19200-nodtr", "dku5-nopower", "fbus", "blues60"} {
		first, err := ParseConnectionString(conn)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			again, err := ParseConnectionString(conn)
			require.NoError(t, err)
			assert.Equal(t, first, again, conn)
		}
	}
}

func TestParseConnectionStringUnknown(t *testing.T) {
	t.Parallel()

	for _, conn := range []string{"bogus", "atxyz", "at0", ""} {
		_, err := ParseConnectionString(conn)
		assert.True(t, errors.Is(err, ErrUnknownConnectionTypeString), conn)
	}
}

func TestBindConnectionUnregisteredTypeIsDisabled(t *testing.T) {
	t.Parallel()

	_, _, err := BindConnection(ParsedConnection{Type: "never-registered-type"})
	assert.True(t, errors.Is(err, ErrDisabled))
}
