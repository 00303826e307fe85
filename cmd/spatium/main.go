// Package main starts the web-spatium server.
package main

import "flag"

// main is the entrypoint for the web-spatium server.
func main() {
	debug := flag.Bool("debug", false, "Enable verbose debug logging")
	staticDir := flag.String("static", "", "Serve static assets from this directory instead of the embedded copy")
	reject := flag.Bool("reject-viewers", false, "Reject a second viewer instead of replacing the first")
	flag.Parse()

	if err := run(*debug, *staticDir, *reject); err != nil {
		logFatal(err)
	}
}
