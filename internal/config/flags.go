package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   path to the local sqlite database file (default from Config)
//	-s int      session validity window in hours (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path to the local database file")
	sessionValidityHours := fs.Int("s", int(cfg.SessionValidityDuration.Hours()), "session validity window (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SessionValidityDuration = time.Duration(*sessionValidityHours) * time.Hour
}
