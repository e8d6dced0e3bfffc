package replay

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixtureDay(t *testing.T, dir string) {
	t.Helper()

	var freqLines strings.Builder
	freqLines.WriteString("time,frequency_hz\n")
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m += 20 {
			freqLines.WriteString(formatTime(h, m, 0) + ",50.01\n")
		}
	}
	writeFile(t, dir, "frequency.csv", freqLines.String())

	var prod strings.Builder
	prod.WriteString("time,hydro,nuclear,solar,thermal,wind,wind_offshore,energy_storage,other,total\n")
	for i := 0; i < 96; i++ {
		prod.WriteString(formatTime(i/4, (i%4)*15, 0) + ",1000,3000,500,200,800,300,0,50,5850\n")
	}
	writeFile(t, dir, "production.csv", prod.String())

	var cons strings.Builder
	cons.WriteString("time,flex,metered,profiled,total\n")
	for i := 0; i < 96; i++ {
		cons.WriteString(formatTime(i/4, (i%4)*15, 0) + ",100,4000,1500,5600\n")
	}
	writeFile(t, dir, "consumption.csv", cons.String())

	var prices strings.Builder
	prices.WriteString("time,day_ahead,fcrn,imbalance_up,imbalance_down\n")
	for h := 0; h < 24; h++ {
		prices.WriteString(formatTime(h, 0, 0) + ",40,15,60,20\n")
	}
	writeFile(t, dir, "prices.csv", prices.String())
}

func formatTime(h, m, s int) string {
	pad := func(n int) string {
		if n < 10 {
			return "0" + itoa(n)
		}
		return itoa(n)
	}
	return pad(h) + ":" + pad(m) + ":" + pad(s)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadValidDayFillsAllSeries(t *testing.T) {
	dir := t.TempDir()
	writeFixtureDay(t, dir)

	day, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 50.01, day.FrequencyHz[0])
	assert.Equal(t, 50.01, day.FrequencyHz[5], "expected missing seconds to carry the previous value")
	assert.Equal(t, 5850.0, day.Production[0].Total)
	assert.Equal(t, 40.0, day.Prices[3].DayAhead)
}

func TestLoadMissingFileIsLoadError(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	assert.Error(t, err, "expected an error for a missing replay directory contents")
}

func TestLoadMissingColumnIsLoadError(t *testing.T) {
	dir := t.TempDir()
	writeFixtureDay(t, dir)
	writeFile(t, dir, "production.csv", "time,hydro\n00:00:00,1000\n")

	_, err := Load(dir)
	assert.Error(t, err, "expected an error for a production.csv missing required columns")
}
