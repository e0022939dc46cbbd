package world

import (
	"os"
	"path/filepath"

	"github.com/edaniels/golog"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// ParseGeoJSON reads the Polygon and MultiPolygon features of a GeoJSON
// FeatureCollection. Holes are kept. Other geometry types are skipped.
func ParseGeoJSON(data []byte) ([]orb.Polygon, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing feature collection")
	}

	var zones []orb.Polygon
	for _, feature := range fc.Features {
		switch g := feature.Geometry.(type) {
		case orb.Polygon:
			zones = append(zones, g)
		case orb.MultiPolygon:
			zones = append(zones, g...)
		}
	}
	return zones, nil
}

// LoadFile reads one GeoJSON file.
func LoadFile(path string) ([]orb.Polygon, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	zones, err := ParseGeoJSON(data)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", filepath.Base(path))
	}
	return zones, nil
}

// LoadDir reads every *.geojson file in dir. A file that fails to load does
// not stop the others; the zones that did load are returned together with
// the combined error.
func LoadDir(dir string, logger golog.Logger) ([]orb.Polygon, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", dir)
	}
	logger.Infow("loading no-fly zones", "dir", dir, "files", len(files))

	var (
		all  []orb.Polygon
		errs error
	)
	for _, file := range files {
		zones, err := LoadFile(file)
		if err != nil {
			logger.Warnw("skipping no-fly zone file", "file", file, "error", err)
			errs = multierr.Append(errs, err)
			continue
		}
		logger.Debugw("loaded no-fly zones", "file", filepath.Base(file), "zones", len(zones))
		all = append(all, zones...)
	}

	logger.Infow("no-fly zones loaded", "zones", len(all))
	return all, errs
}
