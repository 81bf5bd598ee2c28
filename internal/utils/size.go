package utils

// BytesPerKilobyte is the divisor used for every KB figure in the output.
const BytesPerKilobyte = 1024

// SizeInKilobytes returns the byte length rounded up to whole kilobytes.
func SizeInKilobytes(bytes int64) int64 {
	if bytes <= 0 {
		return 0
	}
	return (bytes + BytesPerKilobyte - 1) / BytesPerKilobyte
}

// KilobytesToBytes converts a kilobyte limit to bytes.
func KilobytesToBytes(kilobytes int64) int64 {
	return kilobytes * BytesPerKilobyte
}
