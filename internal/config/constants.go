package config

import "time"

// Environment keys.
const (
	EnvDataPath       = "SHAKER_DATA_PATH"
	EnvMeshType       = "SHAKER_MESH_TYPE"
	EnvUtilThreshold  = "SHAKER_UTIL_THRESHOLD"
	EnvDateColumn     = "SHAKER_DATE_COLUMN"
	EnvTimeColumn     = "SHAKER_TIME_COLUMN"
	EnvExportPath     = "SHAKER_EXPORT_PATH"
	EnvWatch          = "SHAKER_WATCH"
	EnvNotify         = "SHAKER_NOTIFY"
	EnvReloadDebounce = "SHAKER_RELOAD_DEBOUNCE"
	EnvProfile        = "SHAKER_PROFILE"
	EnvLogFile        = "LOG_FILE"
	EnvLogLevel       = "LOG_LEVEL"
)

// Default values
const (
	defaultUtilThreshold  = 80.0
	defaultReloadDebounce = 500 * time.Millisecond

	// MinUtilThreshold and MaxUtilThreshold bound the display threshold.
	MinUtilThreshold = 50.0
	MaxUtilThreshold = 100.0
)

// appDirName is the directory under ~/.config holding .env, exports and logs.
const appDirName = "shaker-dashboard"
