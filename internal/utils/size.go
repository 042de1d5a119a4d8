package utils

import "strconv"

const byteUnitStep = 1024

var byteUnitSuffixes = []string{"B", "KiB", "MiB", "GiB", "TiB"}

// FormatByteSize renders a byte count for the report summary: whole bytes below 1 KiB,
// otherwise one decimal place with a binary unit ("1.5 KiB", "10.0 MiB").
// Negative counts render as "0 B".
func FormatByteSize(byteCount int64) string {
	if byteCount < byteUnitStep {
		if byteCount < 0 {
			byteCount = 0
		}
		return strconv.FormatInt(byteCount, 10) + " " + byteUnitSuffixes[0]
	}
	scaled := float64(byteCount)
	unitIndex := 0
	for scaled >= byteUnitStep && unitIndex < len(byteUnitSuffixes)-1 {
		scaled /= byteUnitStep
		unitIndex++
	}
	return strconv.FormatFloat(scaled, 'f', 1, 64) + " " + byteUnitSuffixes[unitIndex]
}
