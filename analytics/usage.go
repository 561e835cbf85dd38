// Package analytics sends anonymous, opt-out usage events. No file
// paths, source code, or identifiers derived from analyzed code are
// ever reported — only event names, graph size counters, and platform
// and version metadata.
package analytics

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/posthog/posthog-go"
)

const (
	AnalyzeStarted   = "trackast:analyze_started"
	AnalyzeCompleted = "trackast:analyze_completed"
	AnalyzeFailed    = "trackast:analyze_failed"

	EntryPointsResolved = "trackast:entry_points_resolved"
	CyclesDetected      = "trackast:cycles_detected"
)

var (
	PublicKey     string
	enableMetrics bool
	appVersion    string
)

// Init enables or disables metrics collection for the process lifetime.
func Init(disableMetrics bool) {
	enableMetrics = !disableMetrics
}

// SetVersion records the binary version attached to every event.
func SetVersion(version string) {
	appVersion = version
}

func envFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".trackast", ".env"), nil
}

func createEnvFile() {
	envFile, err := envFilePath()
	if err != nil {
		fmt.Println("Error getting user home directory:", err)
		return
	}

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(envFile), os.ModePerm); err != nil {
			fmt.Println("Error creating directory:", err)
			return
		}
		env := map[string]string{
			"uuid": uuid.New().String(),
		}
		if err := godotenv.Write(env, envFile); err != nil {
			fmt.Println("Error writing to .env file:", err)
		}
	}
}

// LoadEnvFile ensures an anonymous installation id exists under
// ~/.trackast/.env and loads it into the process environment.
func LoadEnvFile() {
	createEnvFile()
	envFile, err := envFilePath()
	if err != nil {
		return
	}
	_ = godotenv.Load(envFile)
}

// ReportEvent sends event with no extra properties.
func ReportEvent(event string) {
	ReportEventWithProperties(event, nil)
}

// ReportEventWithProperties sends event along with properties merged
// on top of automatic platform metadata. Callers must not put file
// paths, source snippets, or other analyzed-code-derived data into
// properties.
func ReportEventWithProperties(event string, properties map[string]interface{}) {
	if !enableMetrics || PublicKey == "" {
		return
	}

	disableGeoIP := false
	client, err := posthog.NewWithConfig(
		PublicKey,
		posthog.Config{
			Endpoint:     "https://us.i.posthog.com",
			DisableGeoIP: &disableGeoIP,
		},
	)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer client.Close()

	capture := posthog.Capture{
		DistinctId: os.Getenv("uuid"),
		Event:      event,
	}

	captureProperties := posthog.NewProperties()
	captureProperties.Set("os", runtime.GOOS)
	captureProperties.Set("arch", runtime.GOARCH)
	captureProperties.Set("go_version", runtime.Version())
	if appVersion != "" {
		captureProperties.Set("trackast_version", appVersion)
	}

	for k, v := range properties {
		captureProperties.Set(k, v)
	}

	capture.Properties = captureProperties

	if err := client.Enqueue(capture); err != nil {
		fmt.Println(err)
	}
}
