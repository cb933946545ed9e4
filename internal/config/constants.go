package config

// Base application details
const AppName = "historycore"
const ConfigDirName = "historycore"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "historycore.log"

// DefaultSkipInvisibleEntries is the History.SkipInvisibleEntries default.
const DefaultSkipInvisibleEntries = true
