package scm

/*-------------------------------------------------------------
 *
 * Purpose:	Great-circle destination points.
 *
 *		Track points arrive as (distance, bearing) offsets
 *		from the payload's single anchor fix.  The collar
 *		computes those offsets with spherical trigonometry
 *		(the TinyGPS great-circle routine), so we must undo
 *		them the same way.  An ellipsoidal geodesic would be
 *		more accurate over the ground but would not invert
 *		the firmware's own arithmetic.
 *
 *--------------------------------------------------------------*/

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// Mean Earth radius in km, consistent with the firmware's sphere.
const EarthRadiusKm = 6371.009

/*-------------------------------------------------------------
 *
 * Name:	GreatCircleDestination
 *
 * Purpose:	Travel a distance along a bearing on a spherical Earth.
 *
 * Inputs:	origin		- Starting fix.
 *		bearingDeg	- Initial bearing in degrees clockwise
 *				  from true north.
 *		meters		- Distance to travel.
 *
 * Returns:	Destination fix.
 *
 *--------------------------------------------------------------*/

func GreatCircleDestination(origin s2.LatLng, bearingDeg float64, meters float64) s2.LatLng {
	var d = meters / 1000 / EarthRadiusKm // angular distance
	var lat1 = origin.Lat.Radians()
	var lng1 = origin.Lng.Radians()
	var bearing = bearingDeg * math.Pi / 180

	var lat2 = math.Asin(math.Sin(lat1)*math.Cos(d) +
		math.Cos(lat1)*math.Sin(d)*math.Cos(bearing))
	var lng2 = lng1 + math.Atan2(
		math.Sin(bearing)*math.Sin(d)*math.Cos(lat1),
		math.Cos(d)-math.Sin(lat1)*math.Sin(lat2))

	return s2.LatLng{Lat: s1.Angle(lat2), Lng: s1.Angle(lng2)}
}

// LatLngFromDegrees is a convenience wrapper mirroring the wire
// representation of fixes (decimal degrees).
func LatLngFromDegrees(lat, lng float64) s2.LatLng {
	return s2.LatLngFromDegrees(lat, lng)
}
