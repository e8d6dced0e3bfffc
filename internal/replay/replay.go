// Package replay loads a historical-replay day from a directory of
// CSVs, spec §6: a pure-data source used in place of the stochastic
// simulation when configured with useSimulation=false.
package replay

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nordvolt/gridcore/internal/gridcore"
)

const (
	secondsPerDay   = 86400
	productionRows  = 96 // 15-minute resolution
	consumptionRows = 96
	priceRows       = 24
)

// ProductionRow is one 15-minute production.csv record, spec §6.
type ProductionRow struct {
	Hydro, Nuclear, Solar, Thermal, Wind, WindOffshore, EnergyStorage, Other, Total float64
}

// ConsumptionRow is one 15-minute consumption.csv record.
type ConsumptionRow struct {
	Flex, Metered, Profiled, Total float64
}

// PriceRow is one hourly prices.csv record.
type PriceRow struct {
	DayAhead, FCRN, ImbalanceUp, ImbalanceDown float64
}

// Day is a fully-loaded historical replay day.
type Day struct {
	FrequencyHz [secondsPerDay]float64
	Production  [productionRows]ProductionRow
	Consumption [consumptionRows]ConsumptionRow
	Prices      [priceRows]PriceRow
}

// Load reads frequency.csv, production.csv, consumption.csv, and
// prices.csv from dir. Any missing file or column, or too few rows in
// production.csv, consumption.csv or prices.csv, is a LoadError, per §6
// and §7. Seconds missing from frequency.csv carry the previous value.
func Load(dir string) (*Day, error) {
	var d Day
	if err := loadFrequency(filepath.Join(dir, "frequency.csv"), &d.FrequencyHz); err != nil {
		return nil, err
	}
	if err := loadProduction(filepath.Join(dir, "production.csv"), &d.Production); err != nil {
		return nil, err
	}
	if err := loadConsumption(filepath.Join(dir, "consumption.csv"), &d.Consumption); err != nil {
		return nil, err
	}
	if err := loadPrices(filepath.Join(dir, "prices.csv"), &d.Prices); err != nil {
		return nil, err
	}
	return &d, nil
}

func readCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, gridcore.NewLoadError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, gridcore.NewLoadError(path, err)
	}
	if len(rows) == 0 {
		return nil, nil, gridcore.NewLoadError(path, fmt.Errorf("empty file"))
	}
	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.TrimSpace(name)] = i
	}
	return rows[1:], header, nil
}

func col(path string, row []string, header map[string]int, name string) (float64, error) {
	idx, ok := header[name]
	if !ok || idx >= len(row) {
		return 0, gridcore.NewLoadError(path, fmt.Errorf("missing required column %q", name))
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
	if err != nil {
		return 0, gridcore.NewLoadError(path, fmt.Errorf("column %q: %w", name, err))
	}
	return v, nil
}

// timeSeconds parses HH:MM:SS into seconds since midnight.
func timeSeconds(path string, s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, gridcore.NewLoadError(path, fmt.Errorf("malformed time %q", s))
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	sec, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, gridcore.NewLoadError(path, fmt.Errorf("malformed time %q", s))
	}
	return h*3600 + m*60 + sec, nil
}

func loadFrequency(path string, out *[secondsPerDay]float64) error {
	rows, header, err := readCSV(path)
	if err != nil {
		return err
	}
	timeIdx, ok := header["time"]
	if !ok {
		return gridcore.NewLoadError(path, fmt.Errorf("missing required column %q", "time"))
	}

	var last float64 = 50.0
	have := make([]bool, secondsPerDay)
	for _, row := range rows {
		if timeIdx >= len(row) {
			continue
		}
		secs, err := timeSeconds(path, row[timeIdx])
		if err != nil {
			return err
		}
		if secs < 0 || secs >= secondsPerDay {
			continue
		}
		f, err := col(path, row, header, "frequency_hz")
		if err != nil {
			return err
		}
		out[secs] = f
		have[secs] = true
	}
	for i := 0; i < secondsPerDay; i++ {
		if have[i] {
			last = out[i]
		} else {
			out[i] = last
		}
	}
	return nil
}

func loadProduction(path string, out *[productionRows]ProductionRow) error {
	rows, header, err := readCSV(path)
	if err != nil {
		return err
	}
	if len(rows) < productionRows {
		return gridcore.NewLoadError(path, fmt.Errorf("expected %d rows, got %d", productionRows, len(rows)))
	}
	for i := 0; i < productionRows; i++ {
		row := rows[i]
		var r ProductionRow
		fields := []struct {
			name string
			dst  *float64
		}{
			{"hydro", &r.Hydro}, {"nuclear", &r.Nuclear}, {"solar", &r.Solar}, {"thermal", &r.Thermal},
			{"wind", &r.Wind}, {"wind_offshore", &r.WindOffshore}, {"energy_storage", &r.EnergyStorage},
			{"other", &r.Other}, {"total", &r.Total},
		}
		for _, f := range fields {
			v, err := col(path, row, header, f.name)
			if err != nil {
				return err
			}
			*f.dst = v
		}
		out[i] = r
	}
	return nil
}

func loadConsumption(path string, out *[consumptionRows]ConsumptionRow) error {
	rows, header, err := readCSV(path)
	if err != nil {
		return err
	}
	if len(rows) < consumptionRows {
		return gridcore.NewLoadError(path, fmt.Errorf("expected %d rows, got %d", consumptionRows, len(rows)))
	}
	for i := 0; i < consumptionRows; i++ {
		row := rows[i]
		var r ConsumptionRow
		fields := []struct {
			name string
			dst  *float64
		}{
			{"flex", &r.Flex}, {"metered", &r.Metered}, {"profiled", &r.Profiled}, {"total", &r.Total},
		}
		for _, f := range fields {
			v, err := col(path, row, header, f.name)
			if err != nil {
				return err
			}
			*f.dst = v
		}
		out[i] = r
	}
	return nil
}

func loadPrices(path string, out *[priceRows]PriceRow) error {
	rows, header, err := readCSV(path)
	if err != nil {
		return err
	}
	if len(rows) < priceRows {
		return gridcore.NewLoadError(path, fmt.Errorf("expected %d rows, got %d", priceRows, len(rows)))
	}
	for i := 0; i < priceRows; i++ {
		row := rows[i]
		var r PriceRow
		fields := []struct {
			name string
			dst  *float64
		}{
			{"day_ahead", &r.DayAhead}, {"fcrn", &r.FCRN},
			{"imbalance_up", &r.ImbalanceUp}, {"imbalance_down", &r.ImbalanceDown},
		}
		for _, f := range fields {
			v, err := col(path, row, header, f.name)
			if err != nil {
				return err
			}
			*f.dst = v
		}
		out[i] = r
	}
	return nil
}
