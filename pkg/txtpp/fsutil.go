package txtpp

import "os"

// WriteIfDiffers writes data to path only if the file does not already
// hold those exact bytes, keeping repeated runs idempotent on disk.
func WriteIfDiffers(path string, data []byte) error {
	existing, err := os.ReadFile(path)
	if err == nil && string(existing) == string(data) {
		return nil
	}
	return os.WriteFile(path, data, 0o644)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
