// Package config handles zenta configuration: a versioned YAML file in the
// data directory, overridable from the environment.
package config

const (
	// DefaultDir is the data directory name looked up from the working directory.
	DefaultDir = "zenta"
	// ConfigFileName is the name of the config file within the data directory.
	ConfigFileName = "config.yml"
	// DefaultDataDir is the file backend's subdirectory.
	DefaultDataDir = "data"
	// DefaultSQLiteFile is the sqlite backend's database file.
	DefaultSQLiteFile = "zenta.db"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 3

	DefaultBackend       = "file"
	DefaultQuotaBytes    = 5 << 20
	DefaultDoneColumn    = "Concluído"
	DefaultWork          = "25m"
	DefaultShortBreak    = "5m"
	DefaultLongBreak     = "15m"
	DefaultLongEvery     = 4
	DefaultRetention     = "720h"
	DefaultPurgeSchedule = "@hourly"
	DefaultWeekStart     = "monday"
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
)

// DefaultColumns are the columns of a new board.
var DefaultColumns = []ColumnConfig{
	{ID: "todo", Title: "A Fazer"},
	{ID: "in-progress", Title: "Em Progresso"},
	{ID: "done", Title: DefaultDoneColumn},
}
