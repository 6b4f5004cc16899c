package orderedmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/openapi-iots-gen/pkg/generrors"
)

func TestIterationIsSorted(t *testing.T) {
	tests := []struct {
		name   string
		insert []string
	}{
		{"already sorted", []string{"a", "b", "c"}},
		{"reversed", []string{"c", "b", "a"}},
		{"shuffled", []string{"b", "c", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New[string, int]()
			for i, k := range tt.insert {
				require.NoError(t, m.Insert(k, i))
			}

			assert.Equal(t, []string{"a", "b", "c"}, m.Keys())

			var seen []string
			for k := range m.All() {
				seen = append(seen, k)
			}
			assert.Equal(t, []string{"a", "b", "c"}, seen)
		})
	}
}

func TestIntKeysSortNumerically(t *testing.T) {
	m := New[int, string]()
	for _, code := range []int{404, 200, 201, 500} {
		require.NoError(t, m.Insert(code, ""))
	}
	assert.Equal(t, []int{200, 201, 404, 500}, m.Keys())
}

func TestInsertRejectsDuplicates(t *testing.T) {
	m := New[string, int]()
	require.NoError(t, m.Insert("id", 1))

	err := m.Insert("id", 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, generrors.ErrValidation))
	assert.Contains(t, err.Error(), "duplicate key id")

	v, ok := m.Get("id")
	assert.True(t, ok)
	assert.Equal(t, 1, v, "failed insert must leave the map unchanged")
	assert.Equal(t, 1, m.Len())
}

func TestZeroValueAndClone(t *testing.T) {
	var m Map[string, int]
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Keys())

	m.Set("x", 1)
	clone := m.Clone()
	clone.Set("y", 2)

	assert.False(t, m.Has("y"))
	assert.Equal(t, []string{"x", "y"}, clone.Keys())

	clone.Delete("x")
	assert.Equal(t, []string{"y"}, clone.Keys())
}

func TestAllStopsEarly(t *testing.T) {
	m := New[string, int]()
	m.Set("a", 1)
	m.Set("b", 2)

	count := 0
	for range m.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}
