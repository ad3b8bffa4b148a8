package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.Start(4, "heuristic")
	c.AddNode()
	c.AddNode()
	c.AddMemoHit()
	c.CompleteDepth(2, 12.5)
	m := c.Complete(StopDepth)

	require.Equal(t, 4, m.MaxDepth)
	require.Equal(t, "heuristic", m.Evaluate)
	require.Equal(t, 2, m.Nodes)
	require.Equal(t, 1, m.MemoHits)
	require.Equal(t, 2, m.Depth)
	require.Equal(t, 12.5, m.Score)
	require.Equal(t, StopDepth, m.StopReason)

	c.Start(4, "heuristic")
	require.Equal(t, 0, c.Complete(StopMovetime).Nodes, "Start must reset the counters")

	require.Equal(t, StopProven, NewDummyCollector().Complete(StopProven).StopReason)
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir(), "unit")
	require.NoError(t, err)

	record := NewGameRecord(1, 2, GameMetric{StartingPlayer: "blue", Winner: "orange", TotalMoves: 2})
	require.NoError(t, w.WriteAgentConfigs([]AgentConfig{{ID: 1, Kind: "search", Budget: time.Second, MaxDepth: 3, Evaluate: "heuristic"}}))
	require.NoError(t, w.WriteGameRecords([]GameRecord{record}))
	require.NoError(t, w.WriteMoveRecords([]MoveRecord{
		{Game: record.ID, MoveMetric: MoveMetric{Step: 1, Player: "blue", Move: "h1 d1 r0", SearchMetric: SearchMetric{StopReason: StopMovetime}}},
	}))

	f, err := os.Open(filepath.Join(w.Dir(), "move_records.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, record.ID.String(), rows[1][0])
	require.Equal(t, "h1 d1 r0", rows[1][3])
	require.Equal(t, "movetime", rows[1][9])
}
