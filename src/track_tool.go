package scm

/*------------------------------------------------------------------
 *
 * Name: 	TrackToolMain
 *
 * Purpose:   	Command line track extractor: tracking frames in,
 *		CSV of resolved positions out.
 *
 *		Each tracking frame contributes its anchor fix plus
 *		every dead-reckoned point, with UTM and MGRS grid
 *		references for field maps.  Status and unrecognized
 *		frames are skipped.
 *
 *---------------------------------------------------------------*/

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang/geo/s2"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"
	"github.com/tzneal/coordconv"
)

func TrackToolMain() {
	var _epochFile = pflag.StringP("epoch-file", "e", "", "Device epoch yaml file. Default is to search the standard locations.")
	var _deviceID = pflag.Uint64P("device", "d", 0, "Device id for the epoch table lookup.")
	var _timestampFormat = pflag.StringP("timestamp-format", "T", "%Y-%m-%d %H:%M:%S %z", "Timestamp column 'strftime' format.")
	var _grid = pflag.BoolP("grid", "g", false, "Add UTM and MGRS grid reference columns.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Extract track positions from collar telemetry frames.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Frames are raw hex strings, given as arguments or one per line on stdin.\n")
		fmt.Fprintf(os.Stderr, "Output is CSV on stdout, one row per anchor or point.\n")
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	var epochs, err = LoadDeviceEpochs(*_epochFile)
	if err != nil {
		log.Fatal("Cannot load device epoch table", "error", err)
	}

	var decoder = NewDecoder()
	decoder.Epochs = epochs
	var epochYear = epochs.EpochYear(*_deviceID)

	var out = csv.NewWriter(os.Stdout)
	var header = []string{"time", "kind", "latitude", "longitude", "distance_m", "bearing_deg", "activity"}
	if *_grid {
		header = append(header, "utm", "mgrs")
	}
	out.Write(header)

	for _, frameHex := range inputFrames() {
		var record, decodeErr = decoder.DecodeRaw(frameHex, epochYear)
		if decodeErr != nil {
			log.Error("Decode failed", "frame", frameHex, "error", decodeErr)
			continue
		}

		switch p := record.Payload.(type) {
		case *TrackingV1Payload:
			out.Write(trackRow(*_timestampFormat, *_grid, time.Time{}, "anchor", p.Anchor, "", "", p.Activity))
			for _, point := range p.Points {
				out.Write(trackRow(*_timestampFormat, *_grid, time.Time{}, "point", point.Position,
					point.TotalDeltaM.String(), point.Bearing.String(), point.Activity))
			}
		case *TrackingV2Payload:
			out.Write(trackRow(*_timestampFormat, *_grid, p.Timestamp, "anchor", p.Anchor, "", "", p.Activity))
			for _, point := range p.Points {
				out.Write(trackRow(*_timestampFormat, *_grid, point.Timestamp, "point", point.Position,
					point.TotalDeltaM.String(), point.Bearing.String(), point.Activity))
			}
		default:
			log.Debug("Skipping non-tracking frame", "packet_type", record.PacketType)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		log.Fatal("Writing CSV", "error", err)
	}
}

func trackRow(tsFormat string, grid bool, ts time.Time, kind string, pos s2.LatLng,
	distance, bearing string, activity int) []string {

	var when = ""
	if !ts.IsZero() {
		when, _ = strftime.Format(tsFormat, ts)
	}

	var row = []string{
		when,
		kind,
		fmt.Sprintf("%.6f", pos.Lat.Degrees()),
		fmt.Sprintf("%.6f", pos.Lng.Degrees()),
		distance,
		bearing,
		fmt.Sprintf("%d", activity),
	}

	if grid {
		row = append(row, utmString(pos), mgrsString(pos))
	}

	return row
}

func utmString(pos s2.LatLng) string {
	var coord, err = coordconv.DefaultUTMConverter.ConvertFromGeodetic(pos, 0)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d%c %.0f %.0f", coord.Zone, hemisphereRune(coord.Hemisphere), coord.Easting, coord.Northing)
}

// hemisphereRune is the single-letter hemisphere used in the UTM
// column.
func hemisphereRune(h coordconv.Hemisphere) rune {
	switch h {
	case coordconv.HemisphereNorth:
		return 'N'
	case coordconv.HemisphereSouth:
		return 'S'
	}
	return '?'
}

func mgrsString(pos s2.LatLng) string {
	var coord, err = coordconv.DefaultMGRSConverter.ConvertFromGeodetic(pos, 5)
	if err != nil {
		return ""
	}
	return fmt.Sprint(coord)
}
