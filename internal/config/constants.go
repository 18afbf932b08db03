package config

// Data source modes for the server.
const (
	SourceSQLite  = "sqlite"
	SourceMemory  = "memory"
	SourceFixture = "fixture"

	defaultServiceName = "cricket-sim-service"
)
