package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/bladecost/internal/bladecost"
	"github.com/Simplici0/bladecost/internal/db"
	"github.com/Simplici0/bladecost/internal/store"
)

func testdata(name string) string {
	return filepath.Join("..", "..", "internal", "design", "testdata", name)
}

func TestRunPrintsTableInFieldOrder(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), options{designPath: testdata("split_blade.yaml")}, &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3*len(bladecost.Fields)+1)
	assert.True(t, strings.HasPrefix(lines[0], "rc_in.total_labor_hours"), lines[0])
	assert.True(t, strings.HasPrefix(lines[len(bladecost.Fields)], "rc_out.total_labor_hours"))
	assert.True(t, strings.HasPrefix(lines[len(lines)-2], "total_bc.total_blade_cost"))
	assert.Regexp(t, `^total_bc\.joint_cost\s+18600\.00$`, lines[len(lines)-1])
}

func TestRunJSON(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), options{designPath: testdata("reference_blade.yaml"), asJSON: true}, &out)
	require.NoError(t, err)

	var res struct {
		Sections []struct {
			Name      string             `json:"name"`
			Breakdown map[string]float64 `json:"breakdown"`
		} `json:"sections"`
		Total map[string]float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	require.Len(t, res.Sections, 1)
	assert.Equal(t, "rc", res.Sections[0].Name)
	assert.InDelta(t, 136539.98641022752, res.Sections[0].Breakdown["total_blade_cost"], 1e-4)
	assert.Nil(t, res.Total)
}

func TestRunStoresEvaluation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cli.db")

	var out bytes.Buffer
	err := run(context.Background(), options{designPath: testdata("reference_blade.yaml"), dbPath: dbPath, preset: store.DefaultPreset}, &out)
	require.NoError(t, err)

	database, err := db.Open(dbPath)
	require.NoError(t, err)
	defer database.Close()

	st, err := store.New(database, 1)
	require.NoError(t, err)
	items, err := st.ListEvaluations(context.Background(), "", 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.InDelta(t, 136539.98641022752, items[0].TotalCost, 1e-4)
}

func TestRunRejectsMissingPreset(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), options{
		designPath: testdata("reference_blade.yaml"),
		dbPath:     filepath.Join(t.TempDir(), "cli.db"),
		preset:     "regional",
	}, &out)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRunRejectsTooManySections(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), options{designPath: testdata("split_blade.yaml"), maxSections: 1}, &out)
	require.ErrorIs(t, err, bladecost.ErrInvalidInput)
	assert.Empty(t, out.String())
}
