// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package clean_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tadawul-vault/tasidata/clean"
)

func TestNumeric(t *testing.T) {
	cases := []struct {
		input string
		want  float64
		null  bool
	}{
		{input: "1234.5", want: 1234.5},
		{input: "1,234,567", want: 1234567},
		{input: "12.5%", want: 12.5},
		{input: " -42 ", want: -42},
		{input: "", null: true},
		{input: "nan", null: true},
		{input: "N/A", null: true},
		{input: "abc", null: true},
		{input: "12..5", null: true},
	}

	for _, tc := range cases {
		got := clean.Numeric(tc.input)
		if tc.null {
			assert.Nil(t, got, "input %q", tc.input)
			continue
		}

		require.NotNil(t, got, "input %q", tc.input)
		assert.InDelta(t, tc.want, *got, 1e-9, "input %q", tc.input)
	}
}

func TestBoolean(t *testing.T) {
	assert.True(t, clean.Boolean("TRUE"))
	assert.True(t, clean.Boolean("yes"))
	assert.True(t, clean.Boolean("1"))
	assert.True(t, clean.Boolean(" t "))
	assert.False(t, clean.Boolean(""))
	assert.False(t, clean.Boolean("FALSE"))
	assert.False(t, clean.Boolean("2"))
	assert.False(t, clean.Boolean("maybe"))
}

func TestStatus(t *testing.T) {
	allowed := map[string]bool{"Profit": true, "Loss": true, "N/A": true}

	got := clean.Status("Profit", allowed)
	require.NotNil(t, got)
	assert.Equal(t, "Profit", *got)

	assert.Nil(t, clean.Status("nan", allowed))
	assert.Nil(t, clean.Status("", allowed))
	assert.Nil(t, clean.Status("none", allowed))
	assert.Nil(t, clean.Status("Breakeven", allowed))
}

func TestDate(t *testing.T) {
	got := clean.Date("12/31/2024")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), *got)

	got = clean.Date("2024-06-30")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), *got)

	// day/month/year only matches when month/day/year cannot
	got = clean.Date("31/12/2024")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), *got)

	assert.Nil(t, clean.Date(""))
	assert.Nil(t, clean.Date("yesterday"))
}
