package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CSVDir writes files (name → content) into a fresh temporary directory and
// returns its path, ready to hand to repo.NewCSVTripRepo.
// The directory is removed automatically when the test finishes.
func CSVDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("testutil.CSVDir: write %s: %v", name, err)
		}
	}
	return dir
}

// ScenarioCSV is a three-trip dataset with no demographic columns: two
// January rides StationA→StationB and one February ride StationB→StationA.
const ScenarioCSV = `Start Time,End Time,Trip Duration,Start Station,End Station,User Type
2017-01-01 08:00:00,2017-01-01 08:05:00,300,StationA,StationB,Subscriber
2017-01-02 08:30:00,2017-01-02 08:40:00,600,StationA,StationB,Customer
2017-02-01 09:00:00,2017-02-01 09:07:30,450,StationB,StationA,Subscriber
`
