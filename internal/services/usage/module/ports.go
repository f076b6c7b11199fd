package module

import dom "daybrief/internal/services/usage/domain"

// Ports holds the ports exposed by the usage module
type Ports struct {
	Recorder dom.RecorderPort
	Flusher  dom.FlusherPort
	Reader   dom.ReaderPort
}
