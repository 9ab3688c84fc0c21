package bench

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// peakRSSKilobytes reads the process's peak resident set size (VmHWM)
// from /proc/self/status. Only meaningful on Linux.
func peakRSSKilobytes() (int64, error) {
	data, err := os.ReadFile("/proc/self/status")
	if err != nil {
		return 0, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "VmHWM:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			break
		}

		return strconv.ParseInt(fields[1], 10, 64)
	}

	return 0, fmt.Errorf("VmHWM not present in /proc/self/status")
}
