package backtest

import (
	"math/rand"
	"testing"
	"time"

	"dcabench/internal/util"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func Test_ValidStartDates(t *testing.T) {
	days := []time.Time{
		util.NewDate(2020, 1, 1),
		util.NewDate(2020, 1, 10),
		util.NewDate(2020, 1, 20),
		util.NewDate(2020, 1, 31),
	}

	t.Run("keeps dates that leave room for a full window", func(t *testing.T) {
		valid := ValidStartDates(days, 21)
		// latest - 21 days = Jan 10; Jan 1 and Jan 10 qualify.
		require.Equal(t, []time.Time{
			util.NewDate(2020, 1, 1),
			util.NewDate(2020, 1, 10),
		}, valid)
	})

	t.Run("duration longer than the data leaves nothing", func(t *testing.T) {
		require.Empty(t, ValidStartDates(days, 60))
	})

	t.Run("no days, no starts", func(t *testing.T) {
		require.Nil(t, ValidStartDates(nil, 10))
	})
}

func Test_SampleStartDates(t *testing.T) {
	valid := []time.Time{
		util.NewDate(2020, 1, 1),
		util.NewDate(2020, 1, 2),
		util.NewDate(2020, 1, 3),
		util.NewDate(2020, 1, 4),
		util.NewDate(2020, 1, 5),
	}

	t.Run("samples without replacement when enough dates exist", func(t *testing.T) {
		sample := SampleStartDates(valid, 3, rand.New(rand.NewSource(1)))
		require.Len(t, sample, 3)

		seen := map[time.Time]bool{}
		for i, date := range sample {
			require.False(t, seen[date], "duplicate date in sample")
			seen[date] = true
			if i > 0 {
				require.True(t, sample[i-1].Before(date), "sample not sorted")
			}
		}
	})

	t.Run("samples with replacement when asked for more than exists", func(t *testing.T) {
		sample := SampleStartDates(valid[:2], 5, rand.New(rand.NewSource(1)))
		require.Len(t, sample, 5)
		for i := 1; i < len(sample); i++ {
			require.False(t, sample[i].Before(sample[i-1]))
		}
	})

	t.Run("same seed draws the same sample", func(t *testing.T) {
		first := SampleStartDates(valid, 4, rand.New(rand.NewSource(11)))
		second := SampleStartDates(valid, 4, rand.New(rand.NewSource(11)))
		require.Equal(t, "", cmp.Diff(first, second))
	})

	t.Run("empty input", func(t *testing.T) {
		require.Nil(t, SampleStartDates(nil, 3, rand.New(rand.NewSource(1))))
		require.Nil(t, SampleStartDates(valid, 0, rand.New(rand.NewSource(1))))
	})
}
