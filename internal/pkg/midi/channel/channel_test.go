package channel

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	for v := -300; v <= 300; v++ {
		assert.Equal(t, v >= 0 && v < 16, IsValid(v), "value %d", v)
	}
}

func TestName(t *testing.T) {
	for _, tc := range []struct {
		value    int
		expected string
	}{
		{value: 0, expected: "Channel 1"},
		{value: 1, expected: "Channel 2"},
		{value: 4, expected: "Channel 5"},
		{value: 8, expected: "Channel 9"},
		{value: 9, expected: "Channel 10"},
	} {
		t.Run(tc.expected, func(t *testing.T) {
			name, err := Name(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, name)
		})
	}
}

func TestNameOutOfRange(t *testing.T) {
	for _, v := range []int{-1, -128, 16, 17, 255, 1 << 20} {
		t.Run(fmt.Sprintf("%d", v), func(t *testing.T) {
			name, err := Name(v)
			assert.Equal(t, "", name)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.False(t, errors.Is(err, ErrUnnamed))
		})
	}
}

func TestNameUnnamed(t *testing.T) {
	for v := 10; v < 16; v++ {
		t.Run(fmt.Sprintf("%d", v), func(t *testing.T) {
			require.NoError(t, Validate(v))

			name, err := Name(v)
			assert.Equal(t, "", name)
			assert.True(t, errors.Is(err, ErrUnnamed))
			assert.False(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(0))
	assert.NoError(t, Validate(15))
	assert.ErrorIs(t, Validate(16), ErrInvalid)
	assert.ErrorIs(t, Validate(-1), ErrInvalid)
}

func TestNameIdempotent(t *testing.T) {
	for v := 0; v < 10; v++ {
		first, err := Name(v)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			again, err := Name(v)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
	}
}

func TestChannel_String(t *testing.T) {
	assert.Equal(t, "Channel 1", Channel1.String())
	assert.Equal(t, "Channel 10", Percussion.String())
	assert.Equal(t, "Channel 16", Channel16.String())
}

func TestChannel_Name(t *testing.T) {
	name, err := Percussion.Name()
	require.NoError(t, err)
	assert.Equal(t, "Channel 10", name)

	_, err = Channel11.Name()
	assert.ErrorIs(t, err, ErrUnnamed)
}

func TestNew(t *testing.T) {
	c, err := New(9)
	require.NoError(t, err)
	assert.Equal(t, Percussion, c)

	_, err = New(16)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestFromDisplay(t *testing.T) {
	c, err := FromDisplay(1)
	require.NoError(t, err)
	assert.Equal(t, Channel1, c)

	c, err = FromDisplay(16)
	require.NoError(t, err)
	assert.Equal(t, Channel16, c)
	assert.Equal(t, 16, c.Display())

	for _, n := range []int{0, 17, -1} {
		_, err = FromDisplay(n)
		assert.ErrorIs(t, err, ErrInvalid)
	}
}

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, Count)
	for i, c := range all {
		assert.Equal(t, Channel(i), c)
		assert.True(t, IsValid(int(c)))
	}
}
