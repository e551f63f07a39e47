/* Extract track positions from collar telemetry frames */
package main

import (
	scm "github.com/spacecows/scmkit/src"
)

func main() {
	scm.TrackToolMain()
}
