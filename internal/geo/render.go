package geo

import (
	"fmt"
	"io"

	"geofeed/internal/domain"
)

func Render(w io.Writer, records []domain.GeoRecord) error {
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%dm: %s\n", r.DistanceMeters, r.Name); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	return nil
}
