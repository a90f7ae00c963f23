package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	t.Run("finding the first matching element", func(t *testing.T) {
		require.Equal(t, 1, FindIndex([]int{5, 3, 3}, 3), "Should return the first index of the item")
	})

	t.Run("missing element", func(t *testing.T) {
		require.Equal(t, -1, FindIndex([]int{5, 4}, 2), "Should return -1 when the item is absent")
	})
}

func TestRemoveAt(t *testing.T) {
	in := []int{5, 4, 3}
	got := RemoveAt(in, 1)

	require.Equal(t, []int{5, 3}, got, "Should drop the element at the index")
	require.Equal(t, []int{5, 4, 3}, in, "Input slice should not change")
}
