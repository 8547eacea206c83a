package main

import (
	"flag"
	"io"
	"log"

	wallapp "github.com/edward-ap/videowall/internal/wallapp"
)

func main() {
	verbose := flag.Bool("verbose", false, "log every pane and scanner event")
	quiet := flag.Bool("quiet", false, "suppress all log output")
	trace := flag.Bool("traceLog", false, "enable verbose libVLC logging to vlc.log")
	flag.Parse()
	wallapp.SetTraceLogEnabled(*trace)
	wallapp.SetVerboseLogging(*verbose)
	if *quiet {
		log.SetOutput(io.Discard)
	}

	app := wallapp.NewApp()
	app.Run()
}
