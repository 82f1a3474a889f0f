package gatt

// A Service answers attribute reads and writes for the handles it owns.
// Both entry points report handled == false for handles they do not
// recognize, letting a Dispatcher try the next service.
//
// All methods are called from the stack's event dispatch context; a
// Service takes no locks of its own.
type Service interface {
	// ReadAttr serves a read of attr at offset into out, returning the
	// number of bytes written.
	ReadAttr(conn ConnHandle, attr uint16, offset int, out []byte) (n int, handled bool)

	// WriteAttr applies a write of data, starting at offset, to attr.
	// A decode failure anywhere must abort the whole write with the
	// originating status and no partial state change.
	WriteAttr(conn ConnHandle, attr uint16, offset int, data []byte) (status byte, handled bool)

	// Disconnected releases any per-connection state held for conn.
	Disconnected(conn ConnHandle)
}

// A Dispatcher fans protocol events out to an ordered list of services.
type Dispatcher struct {
	services []Service
}

// NewDispatcher composes svcs; earlier services win on handle collisions.
func NewDispatcher(svcs ...Service) *Dispatcher {
	return &Dispatcher{services: svcs}
}

// Read serves an attribute read, returning the bytes written and an ATT
// status.
func (d *Dispatcher) Read(conn ConnHandle, attr uint16, offset int, out []byte) (int, byte) {
	for _, s := range d.services {
		if n, ok := s.ReadAttr(conn, attr, offset, out); ok {
			return n, StatusSuccess
		}
	}
	return 0, StatusAttrNotFound
}

// Write serves an attribute write. A write whose offset lies beyond its
// payload is rejected here, before any service constructs a cursor over it.
func (d *Dispatcher) Write(conn ConnHandle, attr uint16, offset int, data []byte) byte {
	if offset < 0 || len(data) < offset {
		return StatusInvalidOffset
	}
	for _, s := range d.services {
		if status, ok := s.WriteAttr(conn, attr, offset, data); ok {
			return status
		}
	}
	return StatusAttrNotFound
}

// Disconnected tells every service the link is gone. Wire this into the
// stack's disconnect hook; it must run before the connection's resources
// are reclaimed.
func (d *Dispatcher) Disconnected(conn ConnHandle) {
	for _, s := range d.services {
		s.Disconnected(conn)
	}
}
