/* Decode collar telemetry frames to JSON */
package main

import (
	scm "github.com/spacecows/scmkit/src"
)

func main() {
	scm.DecodeToolMain()
}
