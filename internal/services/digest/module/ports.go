package module

import dom "daybrief/internal/services/digest/domain"

// Ports holds the ports exposed by the digest module
type Ports struct {
	Worker dom.WorkerPort
}
