package config

import "os"

// userConfigDir is a seam for tests; defaults to os.UserConfigDir.
var userConfigDir = os.UserConfigDir
