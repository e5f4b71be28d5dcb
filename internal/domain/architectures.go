package domain

// Architectures is the closed set of categories an IP record can carry.
// The order matches what the console offers when adding a record.
var Architectures = []string{
	"VM",
	"Virtual",
	"Bare Metal",
	"Kubernetes",
	"LXC",
	"Docker",
	"Container",
	"Gateway",
	"Switch",
	"Router",
	"Firewall",
	"Load Balancer",
	"Wifi",
	"NFS",
	"Printer",
	"IoT Device",
	"Server",
	"Storage",
}

func ValidArchitecture(name string) bool {
	if name == "" {
		return true
	}
	for _, a := range Architectures {
		if a == name {
			return true
		}
	}
	return false
}
