package envelope_heat_calc

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecorder(t *testing.T, b *Building, itv Interval) (*Recorder, *ThermalModel, SimulationState) {
	t.Helper()
	header := NewSimulationStateHeader()
	m, err := NewThermalModel(b, header, DefaultModelOptions())
	require.NoError(t, err)
	return NewRecorder(header, m, itv), m, header.TakeValues()
}

func TestTimeLabel(t *testing.T) {
	r := &Recorder{itv: IntervalM15}
	assert.Equal(t, "001 00:00", r.time_label(0))
	assert.Equal(t, "001 01:15", r.time_label(5))
	assert.Equal(t, "002 00:00", r.time_label(96))

	r = &Recorder{itv: IntervalH1}
	assert.Equal(t, "002 01:00", r.time_label(25))
}

func TestRecorderRecordsSurfaceFaces(t *testing.T) {
	b := singleZoneBuilding(40, 4)
	b.Surfaces[0].Construction = "concrete"
	r, m, _ := newTestRecorder(t, b, IntervalM15)

	// 内部節点は記録しない
	last := m.Surfaces[0].Discretization().NNodes() - 1
	require.Greater(t, last, 1)
	assert.Contains(t, r.names, "b0_t_n0")
	assert.Contains(t, r.names, "b0_t_n"+strconv.Itoa(last))
	assert.NotContains(t, r.names, "b0_t_n1")
	assert.Contains(t, r.names, "rm0_t_r")
	assert.Contains(t, r.names, "b0_q_back")
}

func TestRecorderCSV(t *testing.T) {
	r, m, state := newTestRecorder(t, singleZoneBuilding(40, 4), IntervalM15)
	z := m.Zones[0]

	z.SetTemperature(state, 20)
	z.SetHeatingCoolingPower(state, 1000)
	z.SetLightingPower(state, 100)
	r.Record(0, CurrentWeather{DryBulbTemperature: 5}, state)

	z.SetTemperature(state, 24)
	z.SetHeatingCoolingPower(state, -400)
	r.Record(1, CurrentWeather{DryBulbTemperature: 6}, state)
	require.Equal(t, 2, r.Len())

	var buf bytes.Buffer
	require.NoError(t, r.WriteCSV(&buf))

	var rows []*ResultRow
	require.NoError(t, gocsv.Unmarshal(bytes.NewReader(buf.Bytes()), &rows))
	assert.Len(t, rows, 2*(len(r.names)+1))
	assert.Equal(t, &ResultRow{Step: 0, Time: "001 00:00", Element: "t_o", Value: 5}, rows[0])
	assert.Equal(t, "001 00:15", rows[len(rows)-1].Time)

	found := false
	for _, row := range rows {
		if row.Step == 1 && row.Element == "rm0_t_r" {
			assert.Equal(t, 24.0, row.Value)
			found = true
		}
	}
	assert.True(t, found)

	summary := r.Summary()
	require.Len(t, summary, 1)
	s := summary[0]
	assert.Equal(t, "zone", s.Zone)
	assert.InDelta(t, 22.0, s.MeanTemp, 1e-12)
	assert.Equal(t, 20.0, s.MinTemp)
	assert.Equal(t, 24.0, s.MaxTemp)
	assert.InDelta(t, 0.25, s.HeatingEnergy, 1e-12)
	assert.InDelta(t, 0.1, s.CoolingEnergy, 1e-12)
	assert.InDelta(t, 0.05, s.LightingEnergy, 1e-12)

	buf.Reset()
	require.NoError(t, r.WriteSummaryCSV(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "zone,t_r_mean,t_r_min,t_r_max,heating_kwh,cooling_kwh,lighting_kwh"))

	assert.Equal(t, []float64{5, 6}, r.OutdoorTemperatures())
	assert.Equal(t, []float64{20, 24}, r.ZoneTemperatures(0))
	assert.Equal(t, []string{"zone"}, r.ZoneNames())
}

func TestRecorderPlots(t *testing.T) {
	r, m, state := newTestRecorder(t, twoZoneBuilding(), IntervalH1)

	assert.Empty(t, r.Chart(40, 5))
	assert.Nil(t, r.Summary())
	assert.Error(t, r.SavePlot(filepath.Join(t.TempDir(), "empty.png")))

	for n := 0; n < 24; n++ {
		m.Zones[0].SetTemperature(state, 20+float64(n%6))
		r.Record(n, CurrentWeather{DryBulbTemperature: float64(n)}, state)
	}

	chart := r.Chart(40, 5)
	assert.NotEmpty(t, chart)
	assert.Contains(t, chart, "air temperature")

	path := filepath.Join(t.TempDir(), "temperature.png")
	require.NoError(t, r.SavePlot(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
