package nrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reactorwatch/reactorwatch/pkg/ledger"
)

const samplePage = `
<html><body>
<table>
  <tr><th>Unit</th><th>Power</th></tr>
  <tr><td>Region 1</td></tr>
  <tr><td>Browns Ferry 1</td><td>100%</td></tr>
  <tr><td>Browns Ferry 2</td><td>0%</td></tr>
  <tr><td><a href="/x">Calvert Cliffs</a> <b>1</b></td><td>98 %</td></tr>
  <tr><td>Browns Ferry 2</td><td>0%</td></tr>
  <tr><td>Down for refueling</td><td>n/a</td></tr>
  <tr><td>Bogus Plant 1</td><td>150%</td></tr>
</table>
</body></html>`

func TestParseUnits(t *testing.T) {
	readings, err := ParseUnits(samplePage)
	require.NoError(t, err)

	assert.Equal(t, []ledger.Reading{
		{Unit: "Browns Ferry 1", PowerPct: 100},
		{Unit: "Browns Ferry 2", PowerPct: 0},
		{Unit: "Calvert Cliffs 1", PowerPct: 98},
	}, readings)
}

func TestParseUnitsSkipsHeaderRows(t *testing.T) {
	page := `<table>
		<tr><td>Unit Power Report</td><td>50%</td></tr>
		<tr><td>Plant status</td><td>10%</td></tr>
		<tr><td>Region 2 totals</td><td>75%</td></tr>
		<tr><td>Oconee 3</td><td>100%</td></tr>
	</table>`

	readings, err := ParseUnits(page)
	require.NoError(t, err)
	assert.Equal(t, []ledger.Reading{{Unit: "Oconee 3", PowerPct: 100}}, readings)
}

func TestParseUnitsNoRows(t *testing.T) {
	_, err := ParseUnits(`<table><tr><th>Unit</th><th>Power</th></tr></table>`)
	assert.ErrorIs(t, err, ErrNoUnits)

	_, err = ParseUnits("<html><body><p>maintenance page</p></body></html>")
	assert.ErrorIs(t, err, ErrNoUnits)
}

func TestParseUnitsMultipleTables(t *testing.T) {
	page := `
	<table><tr><td>Watts Bar 1</td><td>100%</td></tr></table>
	<table><tr><td>Watts Bar 2</td><td>0%</td></tr></table>`

	readings, err := ParseUnits(page)
	require.NoError(t, err)
	assert.Len(t, readings, 2)
}
