// Package geonames reads the tab-separated dumps published by
// geonames.org (allCountries.txt, DE.txt, ...).
package geonames

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"geofeed/internal/domain"
)

const (
	colID          = 0
	colName        = 1
	colLatitude    = 4
	colLongitude   = 5
	colFeatureCode = 7
	columnCount    = 19

	// alternatenames alone can run to tens of kilobytes.
	maxLineBytes = 1 << 20
)

// Reader splits lines on tabs only. The dumps are unquoted, and names
// may start with a quote character, so CSV quoting rules do not apply.
type Reader struct {
	s    *bufio.Scanner
	line int
}

func NewReader(r io.Reader) *Reader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &Reader{s: s}
}

// Next returns the next place or io.EOF. Blank lines are skipped.
func (r *Reader) Next() (domain.Place, error) {
	var line string

	for {
		if !r.s.Scan() {
			if err := r.s.Err(); err != nil {
				return domain.Place{}, fmt.Errorf("read line %d: %w", r.line+1, err)
			}

			return domain.Place{}, io.EOF
		}
		r.line++

		line = strings.TrimSuffix(r.s.Text(), "\r")
		if strings.TrimSpace(line) != "" {
			break
		}
	}

	p, err := parseRecord(strings.Split(line, "\t"))
	if err != nil {
		return domain.Place{}, fmt.Errorf("line %d: %w", r.line, err)
	}

	return p, nil
}

// ReadBatches calls fn with up to size places at a time and returns the
// total number of places read.
func (r *Reader) ReadBatches(size int, fn func([]domain.Place) error) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("batch size must be positive, got %d", size)
	}

	batch := make([]domain.Place, 0, size)
	total := 0

	for {
		p, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return total, err
		}

		batch = append(batch, p)
		if len(batch) == size {
			if err = fn(batch); err != nil {
				return total, err
			}
			total += len(batch)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := fn(batch); err != nil {
			return total, err
		}
		total += len(batch)
	}

	return total, nil
}

func parseRecord(record []string) (domain.Place, error) {
	if len(record) != columnCount {
		return domain.Place{}, fmt.Errorf("expected %d columns, got %d", columnCount, len(record))
	}

	id, err := strconv.ParseInt(record[colID], 10, 64)
	if err != nil {
		return domain.Place{}, fmt.Errorf("parse geonameid %q: %w", record[colID], err)
	}

	lat, err := strconv.ParseFloat(record[colLatitude], 64)
	if err != nil || lat < -90 || lat > 90 {
		return domain.Place{}, fmt.Errorf("invalid latitude %q", record[colLatitude])
	}

	lon, err := strconv.ParseFloat(record[colLongitude], 64)
	if err != nil || lon < -180 || lon > 180 {
		return domain.Place{}, fmt.Errorf("invalid longitude %q", record[colLongitude])
	}

	name := strings.TrimSpace(record[colName])
	if name == "" {
		return domain.Place{}, errors.New("name is empty")
	}

	return domain.Place{
		ID:          id,
		Name:        name,
		FeatureCode: strings.TrimSpace(record[colFeatureCode]),
		Location:    domain.GeoPoint{Lat: lat, Lon: lon},
	}, nil
}
