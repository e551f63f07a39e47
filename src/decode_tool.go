package scm

/*------------------------------------------------------------------
 *
 * Name: 	DecodeToolMain
 *
 * Purpose:   	Command line decoder: hex frames in, JSON records out.
 *
 * Usage:	scm-decode [options] [frame-hex ...]
 *		Frames not given as arguments are read one per line
 *		from stdin.  Blank lines and lines starting with #
 *		are skipped.
 *
 *---------------------------------------------------------------*/

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

func DecodeToolMain() {
	var _epochFile = pflag.StringP("epoch-file", "e", "", "Device epoch yaml file. Default is to search the standard locations.")
	var _epochYear = pflag.IntP("epoch-year", "y", 0, "Override the epoch year for all frames.")
	var _deviceID = pflag.Uint64P("device", "d", 0, "Device id, used for the epoch table lookup.")
	var _extraID = pflag.Uint32P("id", "i", 0, "Transmission id field to report on processed frames.")
	var _processed = pflag.BoolP("processed", "p", false, "Inputs are processed (abbreviated) frames rather than raw ones.")
	var _serviceFlag = pflag.Uint32P("service-flag", "s", 0, "Service flag for processed frames.")
	var _messageCounter = pflag.Uint32P("message-counter", "m", 0, "Message counter for processed frames.")
	var _verbose = pflag.BoolP("verbose", "v", false, "Verbose. Show decode diagnostics on stderr.")
	var help = pflag.Bool("help", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Decode collar telemetry frames to JSON.\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Frames are hex strings, given as arguments or one per line on stdin.\n")
		fmt.Fprintf(os.Stderr, "\n")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if *help {
		pflag.Usage()
		os.Exit(0)
	}

	if *_verbose {
		log.SetLevel(log.DebugLevel)
	}

	var epochs, err = LoadDeviceEpochs(*_epochFile)
	if err != nil {
		log.Fatal("Cannot load device epoch table", "error", err)
	}

	var decoder = NewDecoder()
	decoder.Epochs = epochs

	var epochYear = *_epochYear
	if epochYear == 0 {
		epochYear = epochs.EpochYear(*_deviceID)
	}

	var failures = 0
	for _, frameHex := range inputFrames() {
		var record *Record
		if *_processed {
			record, err = decoder.DecodeProcessed(frameHex, ProcessedMeta{
				ID:             *_extraID,
				ServiceFlag:    *_serviceFlag,
				MessageCounter: *_messageCounter,
				CRC16OK:        true,
				BCH32OK:        true,
				EpochYear:      epochYear,
			})
		} else {
			record, err = decoder.DecodeRaw(frameHex, epochYear)
		}

		if err != nil {
			log.Error("Decode failed", "frame", frameHex, "error", err)
			failures++
			continue
		}

		var out, jsonErr = json.MarshalIndent(record, "", "  ")
		if jsonErr != nil {
			log.Error("Cannot marshal record", "frame", frameHex, "error", jsonErr)
			failures++
			continue
		}
		fmt.Println(string(out))
	}

	if failures > 0 {
		os.Exit(1)
	}
}

// inputFrames gathers frame hex strings from the command line, or
// from stdin when none were given.
func inputFrames() []string {
	if pflag.NArg() > 0 {
		return pflag.Args()
	}

	var frames []string
	var scanner = bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		var line = strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		frames = append(frames, line)
	}
	return frames
}
