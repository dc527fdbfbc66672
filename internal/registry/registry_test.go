package registry_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/train-dispatch/internal/clock"
	"github.com/pkordes/train-dispatch/internal/domain"
	"github.com/pkordes/train-dispatch/internal/registry"
	"github.com/pkordes/train-dispatch/testutil"
)

// ---- Add tests -------------------------------------------------------------

func TestAdd_DuplicateTrainNumber_EitherOrder(t *testing.T) {
	a := testutil.Departure(t, "14:25", "F15", "608", "Skoger", 0)
	b := testutil.Departure(t, "13:25", "F14", "608", "Drammen", 0)

	for _, pair := range [][2]domain.Departure{{a, b}, {b, a}} {
		r := registry.New()
		require.NoError(t, r.Add(pair[0]))

		err := r.Add(pair[1])

		require.ErrorIs(t, err, domain.ErrDuplicateTrainNumber)
		assert.ErrorContains(t, err, "already being used")
		assert.Equal(t, 1, r.Len())
	}
}

func TestAdd_TrackConflict(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	err := r.Add(testutil.Departure(t, "12:18", "F15", "627", "Skoger", 4))

	assert.ErrorIs(t, err, domain.ErrTrackConflict)
	assert.Equal(t, 3, r.Len())
}

func TestAdd_LineConflict(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	err := r.Add(testutil.Departure(t, "12:18", "F21", "637", "Skoger", 3))

	assert.ErrorIs(t, err, domain.ErrLineConflict)
}

func TestAdd_DuplicateBeatsConflicts(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	// Same number, same minute, same track and same line as the 12:18 departure.
	err := r.Add(testutil.Departure(t, "12:18", "F21", "684", "Skoger", 4))

	assert.ErrorIs(t, err, domain.ErrDuplicateTrainNumber)
}

func TestAdd_TrackConflictBeatsLineConflict(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	err := r.Add(testutil.Departure(t, "12:18", "F21", "700", "Skoger", 4))

	assert.ErrorIs(t, err, domain.ErrTrackConflict)
}

func TestAdd_UnsetTracksNeverConflict(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Add(testutil.Departure(t, "10:00", "L1", "1", "Oslo", 0)))

	err := r.Add(testutil.Departure(t, "10:00", "L2", "2", "Oslo", 0))

	assert.NoError(t, err)
}

func TestAdd_SameTrackDifferentMinute(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	err := r.Add(testutil.Departure(t, "12:19", "F21", "900", "Skoger", 4))

	assert.NoError(t, err)
}

// ---- lookup tests ----------------------------------------------------------

func TestFindByTrainNumber(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	got, err := r.FindByTrainNumber("608")
	require.NoError(t, err)
	assert.Equal(t, "Drammen", got.Destination())

	_, err = r.FindByTrainNumber("607")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorContains(t, err, "is not in the register")
}

func TestFindByTrainNumber_ReturnsCopy(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	got, err := r.FindByTrainNumber("608")
	require.NoError(t, err)
	require.NoError(t, got.SetTrack(9))

	again, err := r.FindByTrainNumber("608")
	require.NoError(t, err)
	assert.False(t, again.HasTrack(), "mutating a returned copy must not change the registry")
}

func TestFindByDestination_CaseInsensitiveSorted(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	for _, query := range []string{"Trondheim", "trondheim", "TRONDHEIM"} {
		got, err := r.FindByDestination(query)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "12:18", got[0].DepartureTime().String())
		assert.Equal(t, "15:15", got[1].DepartureTime().String())
	}
}

func TestFindByDestination_NoMatch(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	_, err := r.FindByDestination("No mans land")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ordering tests --------------------------------------------------------

func TestSortedByDepartureTime(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	got := r.SortedByDepartureTime()

	require.Len(t, got, 3)
	assert.Equal(t, []string{"684", "608", "1337"}, trainNumbers(got))
}

func TestSortedByDepartureTime_NonDecreasingAndStable(t *testing.T) {
	r := registry.New()
	times := []string{"09:00", "07:30", "09:00", "06:15", "09:00", "23:59", "07:30"}
	for i, at := range times {
		line := fmt.Sprintf("L%d", i)
		require.NoError(t, r.Add(testutil.Departure(t, at, line, fmt.Sprint(100+i), "Oslo", 0)))
	}

	got := r.SortedByDepartureTime()

	require.Len(t, got, len(times))
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Compare(got[i]), 0, "position %d", i)
	}
	// Ties keep insertion order.
	assert.Equal(t, []string{"103", "101", "106", "100", "102", "104", "105"}, trainNumbers(got))
}

func TestSortedByDepartureTime_IsNonDestructive(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	_ = r.SortedByDepartureTime()

	assert.Equal(t, 3, r.Len())
}

// ---- expiry tests ----------------------------------------------------------

func TestRemoveExpired(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	removed := r.RemoveExpired(domain.MustClock("14:00"))

	assert.Equal(t, []string{"684", "608"}, trainNumbers(removed))
	assert.Equal(t, []string{"1337"}, trainNumbers(r.SortedByDepartureTime()))
}

func TestRemoveExpired_AccountsForDelay(t *testing.T) {
	r := testutil.ScenarioRegistry(t)
	_, err := r.SetDelay("684", 2*time.Hour)
	require.NoError(t, err)

	r.RemoveExpired(domain.MustClock("14:00"))

	got, err := r.FindByDestination("Trondheim")
	require.NoError(t, err)
	assert.Equal(t, []string{"684", "1337"}, trainNumbers(got))
}

func TestRemoveExpired_StrictlyBefore(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	r.RemoveExpired(domain.MustClock("12:18"))

	assert.Equal(t, 3, r.Len(), "a departure leaving exactly now has not expired")
}

func TestRemoveExpired_Idempotent(t *testing.T) {
	once := testutil.ScenarioRegistry(t)
	twice := testutil.ScenarioRegistry(t)
	ref := domain.MustClock("14:00")

	once.RemoveExpired(ref)
	twice.RemoveExpired(ref)
	removedAgain := twice.RemoveExpired(ref)
	removedEarlier := twice.RemoveExpired(domain.MustClock("13:00"))

	assert.Empty(t, removedAgain)
	assert.Empty(t, removedEarlier)
	assert.Equal(t, trainNumbers(once.SortedByDepartureTime()), trainNumbers(twice.SortedByDepartureTime()))
}

func TestOnTimeAdvanced_ThroughClock(t *testing.T) {
	r := testutil.ScenarioRegistry(t)
	c := clock.New(domain.MustClock("06:00"))
	c.Subscribe(r)

	require.NoError(t, c.SetTime(domain.MustClock("14:00")))

	assert.Equal(t, []string{"1337"}, trainNumbers(r.SortedByDepartureTime()))
}

// ---- mutation tests --------------------------------------------------------

func TestAssignTrack(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	got, err := r.AssignTrack("608", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Track())

	// Re-assignment is allowed by default.
	got, err = r.AssignTrack("608", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Track())

	held, err := r.FindByTrainNumber("608")
	require.NoError(t, err)
	assert.Equal(t, 5, held.Track())
}

func TestAssignTrack_Rejects(t *testing.T) {
	r := testutil.ScenarioRegistry(t)
	require.NoError(t, r.Add(testutil.Departure(t, "12:18", "R10", "55", "Skien", 0)))

	_, err := r.AssignTrack("55", 4)
	assert.ErrorIs(t, err, domain.ErrTrackConflict)

	_, err = r.AssignTrack("55", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidTrack)

	_, err = r.AssignTrack("999", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	held, err := r.FindByTrainNumber("55")
	require.NoError(t, err)
	assert.False(t, held.HasTrack())
}

func TestAssignTrack_SameTrackAgain(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	_, err := r.AssignTrack("684", 4)

	assert.NoError(t, err, "a departure does not conflict with itself")
}

func TestAssignTrack_SharesConflictRuleWithAdd(t *testing.T) {
	r := testutil.ScenarioRegistry(t)
	// Same minute as 608, no track: an unset track never conflicts.
	require.NoError(t, r.Add(testutil.Departure(t, "13:25", "R10", "55", "Skien", 0)))
	// Track 2 is held by 1337, but at a different minute.
	require.NoError(t, r.Add(testutil.Departure(t, "13:26", "R11", "56", "Skien", 0)))

	_, err := r.AssignTrack("55", 7)
	require.NoError(t, err)
	_, err = r.AssignTrack("56", 2)
	require.NoError(t, err)

	_, err = r.AssignTrack("608", 7)
	assert.ErrorIs(t, err, domain.ErrTrackConflict)
}

func TestAssignTrack_Strict(t *testing.T) {
	r := registry.New(registry.WithStrictTracks())
	require.NoError(t, r.Add(testutil.Departure(t, "15:15", "F22", "1337", "Trondheim", 2)))
	require.NoError(t, r.Add(testutil.Departure(t, "13:25", "F14", "608", "Drammen", 0)))

	_, err := r.AssignTrack("1337", 3)
	assert.ErrorIs(t, err, domain.ErrTrackAlreadySet)

	_, err = r.AssignTrack("608", 1)
	assert.NoError(t, err)
	_, err = r.AssignTrack("608", 2)
	assert.ErrorIs(t, err, domain.ErrTrackAlreadySet)
}

func TestSetDelay(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	got, err := r.SetDelay("608", 29*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "13:54", got.ActualDepartureTime().String())

	_, err = r.SetDelay("608", 30*time.Second)
	assert.ErrorIs(t, err, domain.ErrInvalidFormat)

	_, err = r.SetDelay("1", time.Minute)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemove(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	require.NoError(t, r.Remove("608"))
	assert.ErrorIs(t, r.Remove("608"), domain.ErrNotFound)
	assert.Equal(t, 2, r.Len())
}

// ---- rendering -------------------------------------------------------------

func TestRender(t *testing.T) {
	r := testutil.ScenarioRegistry(t)

	want := "Time    Line  Nr.   Destination     Delay     Track     ETA\n" +
		"--------------------------------------------------------------\n" +
		"12:18   F21   684   Trondheim                 4         12:18\n" +
		"13:25   F14   608   Drammen                             13:25\n" +
		"15:15   F22   1337  Trondheim                 2         15:15"
	assert.Equal(t, want, r.Render())
}

func TestRender_Empty(t *testing.T) {
	r := registry.New()

	assert.Equal(t, domain.BoardHeader+"\n"+domain.BoardSeparator, r.Render())
}

func trainNumbers(ds []domain.Departure) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.TrainNumber()
	}
	return out
}
