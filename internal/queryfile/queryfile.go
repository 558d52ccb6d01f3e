// Package queryfile parses the queries input file described by the
// system's external interfaces: one query per line, four whitespace
// separated doubles "minLat maxLat minLon maxLon". Unlike the points
// file, malformed or invalid lines are skipped with a logged warning
// rather than aborting the whole run.
package queryfile

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/iverase/index-and-search-geo-points/geoindex"
)

// Load reads queries from r, skipping (and logging) any line with the
// wrong field count, a non-numeric field, or an invalid box. Blank or
// whitespace-only lines are skipped without a warning. log may be nil, in
// which case warnings are discarded.
func Load(r io.Reader, log *slog.Logger) ([]geoindex.BBox, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var out []geoindex.BBox
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		box, err := parseLine(line)
		if err != nil {
			log.Warn("skipping malformed query line", "line", lineNo, "text", line, "err", err)
			continue
		}
		out = append(out, box)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseLine(line string) (geoindex.BBox, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return geoindex.BBox{}, fmt.Errorf("expected 4 whitespace-separated fields, got %d", len(fields))
	}

	values := make([]float64, 4)
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return geoindex.BBox{}, fmt.Errorf("field %d: not a number: %q", i+1, field)
		}
		values[i] = v
	}

	box := geoindex.BBox{
		MinLat: values[0],
		MaxLat: values[1],
		MinLon: values[2],
		MaxLon: values[3],
	}
	if !geoindex.CheckBox(box) {
		return geoindex.BBox{}, fmt.Errorf("invalid box %+v", box)
	}
	return box, nil
}
