package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"textbook-logistics/internal/domain"
	"textbook-logistics/internal/tracking"
)

// lineLocations turns "lat,lng" lines into device samples.
type lineLocations struct {
	in io.Reader
}

func newLineLocations(in io.Reader) *lineLocations {
	return &lineLocations{in: in}
}

// Watch ignores opts: every line is as accurate as it gets.
func (l *lineLocations) Watch(ctx context.Context, _ tracking.WatchOptions) (<-chan domain.Coordinates, error) {
	ch := make(chan domain.Coordinates)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(l.in)
		for sc.Scan() {
			c, err := parseSample(sc.Text())
			if err != nil {
				continue
			}
			select {
			case ch <- c:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}

func parseSample(line string) (domain.Coordinates, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 2 {
		return domain.Coordinates{}, fmt.Errorf("want lat,lng: %q", line)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return domain.Coordinates{}, fmt.Errorf("bad latitude in %q", line)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lng < -180 || lng > 180 {
		return domain.Coordinates{}, fmt.Errorf("bad longitude in %q", line)
	}
	return domain.Coordinates{Lat: lat, Lng: lng}, nil
}

var _ tracking.LocationProvider = (*lineLocations)(nil)
