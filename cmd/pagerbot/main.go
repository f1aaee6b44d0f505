package main

import "os"

var (
	Version     = "dev"
	VersionFull = "dev"
	Commit      = "unknown"
	BuildDate   = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
