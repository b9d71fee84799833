package ports

// Settings provides read-only typed access to host configuration.
// The core never writes settings.
type Settings interface {
	String(key, def string) string
	Int(key string, def int) int
	Bool(key string, def bool) bool
	Float(key string, def float64) float64
	Strings(key string, def []string) []string
}
