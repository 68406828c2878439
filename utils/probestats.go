package utils

import (
	"fmt"
	"os"
	"sync"
)

var (
	probeStatsFile = "probe_stats.log"
	probeStatsMu   sync.Mutex
)

// LogProbeCounts appends one line per scan to the probe statistics log:
// the scan name followed by the number of candidate lanes each word raised.
func LogProbeCounts(scanName string, candidateCounts []int) {
	probeStatsMu.Lock()
	defer probeStatsMu.Unlock()

	f, err := os.OpenFile(probeStatsFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	line := scanName
	for _, count := range candidateCounts {
		line += fmt.Sprintf(",%d", count)
	}
	fmt.Fprintln(f, line)
}

func ClearProbeStats() {
	probeStatsMu.Lock()
	defer probeStatsMu.Unlock()
	os.Remove(probeStatsFile)
}
