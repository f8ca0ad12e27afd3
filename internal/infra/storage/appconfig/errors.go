package appconfig

import "errors"

var (
	// ErrConfigNotFound is returned when no config document has been stored yet.
	ErrConfigNotFound = errors.New("appconfig.repository: config not found")

	// ErrBuildQuery is returned when building the SQL query fails.
	ErrBuildQuery = errors.New("appconfig.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails.
	ErrExecQuery = errors.New("appconfig.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("appconfig.repository: failed to scan row")

	// ErrMarshalConfig is returned when the config document cannot be
	// encoded or decoded.
	ErrMarshalConfig = errors.New("appconfig.repository: failed to marshal config")
)
