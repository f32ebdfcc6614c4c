package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/rosterview/internal/roster"
)

// unknownAction satisfies the Action method set from inside the package only.
type unknownAction struct{}

func (unknownAction) isAction()      {}
func (unknownAction) String() string { return "unknown" }

func records(n int) []roster.Record {
	out := make([]roster.Record, n)
	for i := range out {
		out[i] = roster.Record{ID: i + 1, Address: roster.Address{Country: "India"}}
	}
	return out
}

func TestInitial(t *testing.T) {
	s := Initial()
	assert.Equal(t, StatusIdle, s.Status)
	assert.Empty(t, s.Records)
	assert.Empty(t, s.ErrorMessage)
	assert.True(t, s.Filter.IsEmpty())
	assert.Equal(t, 1, s.Page)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "loaded", StatusLoaded.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", Status(42).String())

	text, err := StatusLoaded.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "loaded", string(text))
}

func TestTransition_Actions(t *testing.T) {
	loaded := AppState{Status: StatusLoaded, Records: records(3), Page: 4}

	tests := []struct {
		name   string
		start  AppState
		action Action
		check  func(t *testing.T, got AppState)
	}{
		{
			name:   "SetRecords replaces records and keeps status",
			start:  Initial(),
			action: SetRecords{Records: records(2)},
			check: func(t *testing.T, got AppState) {
				assert.Len(t, got.Records, 2)
				assert.Equal(t, StatusIdle, got.Status)
			},
		},
		{
			name:   "SetLoading true enters Loading",
			start:  Initial(),
			action: SetLoading{Loading: true},
			check: func(t *testing.T, got AppState) {
				assert.Equal(t, StatusLoading, got.Status)
				assert.True(t, got.Loading())
			},
		},
		{
			name:   "SetLoading false finishes a load",
			start:  AppState{Status: StatusLoading, Records: records(1), Page: 1},
			action: SetLoading{Loading: false},
			check: func(t *testing.T, got AppState) {
				assert.Equal(t, StatusLoaded, got.Status)
				assert.Len(t, got.Records, 1)
			},
		},
		{
			name:   "SetLoading false keeps a failure",
			start:  AppState{Status: StatusFailed, ErrorMessage: "boom", Page: 1},
			action: SetLoading{Loading: false},
			check: func(t *testing.T, got AppState) {
				assert.Equal(t, StatusFailed, got.Status)
				assert.Equal(t, "boom", got.ErrorMessage)
			},
		},
		{
			name:   "SetLoading false when idle is a no-op",
			start:  Initial(),
			action: SetLoading{Loading: false},
			check: func(t *testing.T, got AppState) {
				assert.Equal(t, Initial(), got)
			},
		},
		{
			name:   "SetError present fails and clears records",
			start:  AppState{Status: StatusLoading, Records: records(2), Page: 1},
			action: SetError{Present: true, Message: "Data not found"},
			check: func(t *testing.T, got AppState) {
				assert.Equal(t, StatusFailed, got.Status)
				assert.Equal(t, "Data not found", got.ErrorMessage)
				assert.Empty(t, got.Records)
			},
		},
		{
			name:   "SetError without message uses the generic message",
			start:  Initial(),
			action: SetError{Present: true},
			check: func(t *testing.T, got AppState) {
				assert.Equal(t, DefaultErrorMessage, got.ErrorMessage)
			},
		},
		{
			name:   "SetError cleared returns Failed to Idle",
			start:  AppState{Status: StatusFailed, ErrorMessage: "boom", Page: 1},
			action: SetError{Present: false},
			check: func(t *testing.T, got AppState) {
				assert.Equal(t, StatusIdle, got.Status)
				assert.Empty(t, got.ErrorMessage)
			},
		},
		{
			name:   "SetError cleared keeps Loading",
			start:  AppState{Status: StatusLoading, Page: 1},
			action: SetError{Present: false},
			check: func(t *testing.T, got AppState) {
				assert.Equal(t, StatusLoading, got.Status)
			},
		},
		{
			name:   "SetPage is not clamped",
			start:  loaded,
			action: SetPage{Page: 99},
			check: func(t *testing.T, got AppState) {
				assert.Equal(t, 99, got.Page)
			},
		},
		{
			name:   "SetPage accepts zero and negatives",
			start:  loaded,
			action: SetPage{Page: -2},
			check: func(t *testing.T, got AppState) {
				assert.Equal(t, -2, got.Page)
			},
		},
		{
			name:   "SetCountry resets the page",
			start:  loaded,
			action: SetCountry{Country: "India"},
			check: func(t *testing.T, got AppState) {
				assert.Equal(t, "India", got.Filter.Country)
				assert.Equal(t, 1, got.Page)
			},
		},
		{
			name:   "SetGender resets the page",
			start:  loaded,
			action: SetGender{Gender: "female"},
			check: func(t *testing.T, got AppState) {
				assert.Equal(t, "female", got.Filter.Gender)
				assert.Equal(t, 1, got.Page)
			},
		},
		{
			name:   "clearing a filter also resets the page",
			start:  AppState{Status: StatusLoaded, Filter: roster.Filter{Country: "India"}, Page: 3},
			action: SetCountry{Country: ""},
			check: func(t *testing.T, got AppState) {
				assert.True(t, got.Filter.IsEmpty())
				assert.Equal(t, 1, got.Page)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Transition(tt.start, tt.action))
		})
	}
}

func TestTransition_UnknownActionIsIdentity(t *testing.T) {
	s := AppState{Status: StatusLoaded, Records: records(2), Page: 2}
	assert.Equal(t, s, Transition(s, nil))
	assert.Equal(t, s, Transition(s, unknownAction{}))
}

func TestTransition_DoesNotMutateInput(t *testing.T) {
	in := records(3)
	s := Transition(Initial(), SetRecords{Records: in})

	in[0].ID = 100
	assert.Equal(t, 1, s.Records[0].ID, "state must not alias the action payload")

	next := Transition(s, SetPage{Page: 2})
	next.Records[1].ID = 200
	assert.Equal(t, 2, s.Records[1].ID, "transition must not share records with its input")
}

func TestTransition_Deterministic(t *testing.T) {
	s := AppState{Status: StatusLoaded, Records: records(5), Page: 3}
	actions := []Action{
		SetPage{Page: 2},
		SetCountry{Country: "India"},
		SetGender{Gender: "male"},
		SetError{Present: true, Message: "x"},
		SetLoading{Loading: true},
	}
	for _, a := range actions {
		assert.Equal(t, Transition(s, a), Transition(s, a), a.String())
	}
}

func TestTransition_FilterResetsPageFromAnyPage(t *testing.T) {
	for page := -3; page <= 50; page++ {
		s := AppState{Status: StatusLoaded, Page: page}
		assert.Equal(t, 1, Transition(s, SetCountry{Country: "India"}).Page)
		assert.Equal(t, 1, Transition(s, SetGender{Gender: "female"}).Page)
	}
}

func TestTransition_FilterIdempotent(t *testing.T) {
	s := AppState{Status: StatusLoaded, Records: records(4), Page: 5}

	once := Transition(s, SetCountry{Country: "India"})
	twice := Transition(once, SetCountry{Country: "India"})
	assert.Equal(t, once, twice)

	once = Transition(s, SetGender{Gender: "male"})
	twice = Transition(once, SetGender{Gender: "male"})
	assert.Equal(t, once, twice)
}

func TestReduce_LoadSequences(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := Reduce(Initial(),
			SetLoading{Loading: true},
			SetError{Present: false},
			SetRecords{Records: records(25)},
			SetLoading{Loading: false},
		)
		assert.Equal(t, StatusLoaded, s.Status)
		assert.Len(t, s.Records, 25)
		assert.False(t, s.Loading())
	})

	t.Run("failure", func(t *testing.T) {
		s := Reduce(Initial(),
			SetLoading{Loading: true},
			SetError{Present: false},
			SetError{Present: true, Message: "dial tcp: connection refused"},
			SetLoading{Loading: false},
		)
		assert.Equal(t, StatusFailed, s.Status)
		assert.True(t, s.Failed())
		assert.False(t, s.Loading())
		assert.Empty(t, s.Records)
		assert.NotEmpty(t, s.ErrorMessage)
	})

	t.Run("filter change during load survives", func(t *testing.T) {
		s := Reduce(Initial(),
			SetLoading{Loading: true},
			SetCountry{Country: "India"},
			SetRecords{Records: records(3)},
			SetLoading{Loading: false},
		)
		assert.Equal(t, StatusLoaded, s.Status)
		assert.Equal(t, "India", s.Filter.Country)
	})
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "SetRecords(2)", SetRecords{Records: records(2)}.String())
	assert.Equal(t, "SetLoading(true)", SetLoading{Loading: true}.String())
	assert.Equal(t, `SetError(true, "x")`, SetError{Present: true, Message: "x"}.String())
	assert.Equal(t, "SetPage(3)", SetPage{Page: 3}.String())
	assert.Equal(t, `SetCountry("India")`, SetCountry{Country: "India"}.String())
	assert.Equal(t, `SetGender("male")`, SetGender{Gender: "male"}.String())
}
