// Package points parses the points input file described by the system's
// external interfaces: one record per line, fields "id latitude
// longitude" separated by whitespace. Parsing is fatal on the first
// malformed or out-of-range line, matching the core's requirement that
// construction never see invalid coordinates.
package points

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/iverase/index-and-search-geo-points/geoindex"
)

// Load reads points from r and returns them as geoindex.Points, in file
// order. The first field of each line is the point's opaque ID; the
// second and third are latitude and longitude respectively (note the
// file's lat-then-lon order, opposite of the in-memory (lon, lat)
// representation).
func Load(r io.Reader) ([]geoindex.Point, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var out []geoindex.Point
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			return nil, fmt.Errorf("points file: line %d: blank line is not a valid record", lineNo)
		}

		p, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("points file: line %d: %w (line was %q)", lineNo, err, line)
		}
		out = append(out, p)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("points file: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("points file: no records found")
	}
	return out, nil
}

func parseLine(line string) (geoindex.Point, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return geoindex.Point{}, fmt.Errorf("expected 3 whitespace-separated fields, got %d", len(fields))
	}

	id := fields[0]
	lat, err := parseCoordinate(fields[1])
	if err != nil {
		return geoindex.Point{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := parseCoordinate(fields[2])
	if err != nil {
		return geoindex.Point{}, fmt.Errorf("longitude: %w", err)
	}

	if !geoindex.CheckLatitude(lat) {
		return geoindex.Point{}, fmt.Errorf("latitude %g out of range [-90,90]", lat)
	}
	if !geoindex.CheckLongitude(lon) {
		return geoindex.Point{}, fmt.Errorf("longitude %g out of range [-180,180]", lon)
	}

	return geoindex.Point{ID: id, Lon: lon, Lat: lat}, nil
}

// parseCoordinate parses a float field and rejects NaN/±Inf, which the
// core has no defined behavior for.
func parseCoordinate(field string) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", field)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", field)
	}
	return v, nil
}
