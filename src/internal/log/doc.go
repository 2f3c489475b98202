// Package log provides simple leveled logging for autoconnect.
//
// Messages go to the console with colored level prefixes and, once SetupFile
// has been called, to a log file in the "<time> - [<name>] - <message>" format.
// The file is rotated whenever the calendar day changes and only the newest
// generations are kept (14 by default).
//
// # Log Levels
//
//   - DEBUG: Detailed diagnostic information (only shown in verbose mode)
//   - INFO: General informational messages
//   - WARN: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures and exceptions
//
// Detailf is reserved for raw output of external tools (gateway agent, DDNS
// provider). It is written to the log file and never to stderr.
//
// # Example Usage
//
//	closer, err := log.SetupFile("/var/log/autoconnect", "autoconnect", 14)
//	if err != nil {
//	    log.Fatalf("Failed to open log file: %v", err)
//	}
//	defer closer.Close()
//
//	log.SetQuiet(true) // cron: file only
//	log.Infof("Started")
package log
