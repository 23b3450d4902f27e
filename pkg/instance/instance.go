package instance

import "os"

// GetID returns the worker instance identifier. Falls back to the hostname so
// containerized workers stay distinguishable without extra configuration.
func GetID() string {
	if id := os.Getenv("WORKER_ID"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "worker-0"
}
