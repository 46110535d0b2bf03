package common

// AppName is shown in the CLI prompt and banner.
const AppName = "signbook"

// EnvPrefix is prepended to every environment variable the binaries read.
const EnvPrefix = "SIGNBOOK_"

// DefaultDatabaseFile is the SQLite file used when no DSN is configured.
const DefaultDatabaseFile = "database.db"
