package config

import "time"

// Submission constraints.
const (
	MinSubmissionLength = 10
	MinMood             = 1
	MaxMood             = 5
	MaxWeeklyHours      = 168
)

// Task board constraints.
const (
	MaxTaskTitleLength = 200
	MaxCommentLength   = 2000
)

// Pairing exclusion windows.
const (
	ExclusionOpen    = "open"
	ExclusionHistory = "history"
	ExclusionRecent  = "recent"

	DefaultRecentSprints = 3
)

// Store settings.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"

	DefaultDBTimeout = 5 * time.Second
)

// Application settings.
const (
	AppName        = "cohortops"
	DBFileName     = "cohort.db"
	LogFileName    = "cohortops.log"
	EnvPrefix      = "COHORT"
	DefaultAddr    = ":8080"
	DefaultIssuer  = "cohortops"
	EnvDevelopment = "development"
)
