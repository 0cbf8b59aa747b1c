package recorder

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord(roundNum int) *RoundRecord {
	return &RoundRecord{
		SessionID: "3f1c",
		BotName:   "tester",
		RoundNum:  roundNum,
		Seat:      1,
		Hand:      []string{"As", "Kd"},
		Bounty:    "Q",
		Board:     []string{"2c", "7d", "9h", "Js", "Kc"},
		Actions: []ActionRecord{
			{Street: "PREFLOP", Seat: 0, Action: "CALL"},
			{Street: "PREFLOP", Seat: 1, Action: "RAISE", Amount: 8},
			{Street: "PREFLOP", Seat: 0, Action: "FOLD"},
		},
		Delta:      2,
		Bankroll:   2,
		BountyHits: [2]bool{false, false},
		EndedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMemoryRecorder(t *testing.T) {
	m := NewMemoryRecorder()
	rec := sampleRecord(7)
	require.NoError(t, m.Save(rec))
	assert.Equal(t, 1, m.Len())

	loaded, err := m.Load("3f1c", 7)
	require.NoError(t, err)
	if diff := cmp.Diff(rec, loaded); diff != "" {
		t.Errorf("loaded record mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, m.Remove("3f1c", 7))
	_, err = m.Load("3f1c", 7)
	var notFound NotFoundError
	assert.True(t, errors.As(err, &notFound))
	assert.Equal(t, RecordKey("3f1c", 7), notFound.Key)
	assert.NoError(t, m.Close())
}

func TestRecordedCopyIsIndependent(t *testing.T) {
	m := NewMemoryRecorder()
	rec := sampleRecord(1)
	require.NoError(t, m.Save(rec))
	rec.Hand[0] = "2c"
	rec.Delta = -50

	loaded, err := m.Load("3f1c", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"As", "Kd"}, loaded.Hand)
	assert.Equal(t, 2, loaded.Delta)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.Save(sampleRecord(1)))
	assert.NoError(t, r.Close())
}
