package serial

import (
	bugst "go.bug.st/serial"

	"github.com/modemtools/txmodem/internal/protocol"
)

// ListPorts enumerates the serial devices available on this host.
func ListPorts() ([]string, error) {
	names, err := bugst.GetPortsList()
	if err != nil {
		return nil, protocol.NewConfigError("enumerate serial devices", err)
	}
	return names, nil
}
