package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_Split(t *testing.T) {
	ranges, err := Plan([]int64{1000, 5000}, ModeSplit)

	require.NoError(t, err)
	assert.Equal(t, []Range{
		{Start: 0, End: 1000},
		{Start: 1000, End: 5000},
		{Start: 5000, ToEnd: true},
	}, ranges)
}

func TestPlan_SplitSortsMarks(t *testing.T) {
	ranges, err := Plan([]int64{7000, 2000}, ModeSplit)

	require.NoError(t, err)
	require.Len(t, ranges, 3)
	assert.Equal(t, int64(2000), ranges[0].End)
	assert.Equal(t, int64(7000), ranges[2].Start)
}

func TestPlan_SplitNoMarks(t *testing.T) {
	ranges, err := Plan(nil, ModeSplit)

	require.NoError(t, err)
	assert.Empty(t, ranges)
}

func TestPlan_Trim(t *testing.T) {
	ranges, err := Plan([]int64{1000, 5000}, ModeTrim)

	require.NoError(t, err)
	assert.Equal(t, []Range{{Start: 1000, End: 5000}}, ranges)
}

func TestPlan_TrimWrongCount(t *testing.T) {
	for _, marks := range [][]int64{nil, {1000}, {1000, 3000, 7000}} {
		ranges, err := Plan(marks, ModeTrim)

		assert.ErrorIs(t, err, ErrTrimCount)
		assert.Nil(t, ranges)
	}

	_, err := Plan([]int64{1000, 3000, 7000}, ModeTrim)
	assert.EqualError(t, err, "--trim requires exactly 2 timestamps, got 3")
}

func TestPlan_None(t *testing.T) {
	ranges, err := Plan([]int64{1000}, ModeNone)

	require.NoError(t, err)
	assert.Nil(t, ranges)
}

func TestRange_Seconds(t *testing.T) {
	r := Range{Start: 12345, End: 67890}
	assert.Equal(t, "12.345", r.StartSeconds())
	assert.Equal(t, "67.890", r.EndSeconds())
	assert.Equal(t, "12.345-67.890", r.String())

	open := Range{Start: 5000, ToEnd: true}
	assert.Equal(t, "", open.EndSeconds())
	assert.Equal(t, "5.000-end", open.String())
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "split", ModeSplit.String())
	assert.Equal(t, "trim", ModeTrim.String())
	assert.Equal(t, "none", ModeNone.String())
}
