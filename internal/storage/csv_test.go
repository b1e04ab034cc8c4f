package storage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Name,University,Category,Total Runs,Balls Faced,Innings Played,Wickets,Overs Bowled,Runs Conceded,Base Price
Chamika Chandimal,University of the Visual & Performing Arts,Batsman,530,588,10,0,3,21,800000
Dimuth Dhananjaya,University of the Visual & Performing Arts,All-Rounder,250,208,10,8,40,240,700000
Avishka Mendis,Eastern University,Bowler,36,48,6,7,27,152,600000
`

func TestReadCSV(t *testing.T) {
	players, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, players, 3)

	assert.Equal(t, "Chamika Chandimal", players[0].Name)
	assert.Equal(t, 530, players[0].TotalRuns)
	assert.Equal(t, 588, players[0].BallsFaced)
	assert.Equal(t, 800000, players[0].BasePrice)
	assert.Equal(t, float64(40), players[1].OversBowled)
	assert.Equal(t, 7, players[2].Wickets)
}

func TestReadCSV_SkipsNamelessRows(t *testing.T) {
	csv := "Name,Total Runs\n,100\nReal Player,200\n"
	players, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Real Player", players[0].Name)
}

func TestReadCSV_UnparsableNumbersDefaultToZero(t *testing.T) {
	csv := "Name,Total Runs,Wickets\nSomeone,abc,\n"
	players, err := ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, 0, players[0].TotalRuns)
	assert.Equal(t, 0, players[0].Wickets)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	original, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, original))

	reloaded, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, original, reloaded)
}

func TestReadCSV_EmptyInput(t *testing.T) {
	players, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, players)
}
