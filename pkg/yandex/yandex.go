package yandex

const (
	CloudProvider = "yandex"
	Region        = "ru-central1"

	HealthProvider = "Yandex"
)

// Zones are the availability zones of the only supported region.
var Zones = []string{"ru-central1-a", "ru-central1-b", "ru-central1-c"}

// Platforms are the instance platforms a template may use.
var Platforms = []string{"standard-v1", "standard-v2", "gpu-standard-v1"}

var DiskTypes = []string{"network-hdd", "network-ssd"}

// Settings are the provider defaults used when an application does not name
// its own.
type Settings struct {
	Account string
	Region  string
}

var Defaults = Settings{
	Account: "default",
	Region:  Region,
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}

	return false
}
