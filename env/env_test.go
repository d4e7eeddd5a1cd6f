// Copyright (c) 2014-2015 The Notify Authors. All rights reserved.
// Use of this source code is governed by the MIT license that can be
// found in the LICENSE file.

package env

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetUnset(t *testing.T) {
	const name = "NOTIFY_ENV_TEST_VARIABLE"
	t.Cleanup(func() { Unset(name) })

	_, ok := Lookup(name)
	require.False(t, ok)

	require.NoError(t, Set(name, "VALID_RANDOM_ENV"))
	v, ok := Lookup(name)
	assert.True(t, ok)
	assert.Equal(t, "VALID_RANDOM_ENV", v)
	assert.Equal(t, "VALID_RANDOM_ENV", Get(name))
	assert.Equal(t, "VALID_RANDOM_ENV", Map()[name])

	require.NoError(t, Set(name, ""))
	v, ok = Lookup(name)
	assert.True(t, ok, "empty value is still set")
	assert.Empty(t, v)

	require.NoError(t, Unset(name))
	_, ok = Lookup(name)
	assert.False(t, ok)
	assert.NotContains(t, Map(), name)
}

func TestEnviron(t *testing.T) {
	cases := [...]struct {
		m   map[string]string
		env []string
	}{
		0: {nil, []string{}},
		1: {map[string]string{"A": "1"}, []string{"A=1"}},
		2: {map[string]string{"B": "x=y", "A": ""}, []string{"A=", "B=x=y"}},
	}
	for i, cas := range cases {
		env := Environ(cas.m)
		sort.Strings(env)
		assert.Equal(t, cas.env, env, "i=%d", i)
	}
}
