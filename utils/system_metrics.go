package utils

import (
	"github.com/shirou/gopsutil/v4/cpu"
)

// GetCPUUsage returns CPU usage in percent since the previous call. The
// first call after start reports usage since boot.
func GetCPUUsage() (float64, error) {
	percentage, err := cpu.Percent(0, false)
	if err != nil {
		return 0, err
	}
	if len(percentage) > 0 {
		return percentage[0], nil
	}
	return 0, nil
}
