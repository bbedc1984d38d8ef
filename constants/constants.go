package constants

import "os"

func getEnv(name, fallback string) string {
	v := os.Getenv(name)
	if v != "" {
		return v
	}
	return fallback
}

func GetServeAddr() string {
	return getEnv("SCORESTREAM_ADDR", ":8080")
}

// GetLogPath is empty when debug output should stay on stderr.
func GetLogPath() string {
	return os.Getenv("SCORESTREAM_LOG")
}

func GetDynamoEndpoint() string {
	return os.Getenv("SCORESTREAM_DYNAMO_ENDPOINT")
}

func GetDynamoTable() string {
	return getEnv("SCORESTREAM_DYNAMO_TABLE", "scorestream-metadata")
}

func GetDynamoRegion() string {
	return getEnv("SCORESTREAM_DYNAMO_REGION", "us-east-1")
}

// layout, in unscaled pixels
const (
	StaffPadding   = 60.0
	NaiveHeight    = 120.0
	SystemPadding  = 40.0
	MaxSystemWidth = 750.0
	NoteSpacing    = 30.0
	ClefWidth      = 30.0
	TimeSigWidth   = 30.0
	KeySigAccWidth = 15.0
)

// click mapping tolerances, in pixels
const (
	AllowablePixels = 10.0
	BackupMaximum   = 70.0
)

// MIDI export
const (
	TicksPerQuarter = 960
	DefaultVelocity = 90
)
