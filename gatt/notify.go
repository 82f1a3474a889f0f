package gatt

// A NotifyFunc serializes and transmits one characteristic's current value
// to a single connection. The stack invokes it on a later turn of its event
// dispatcher, once it is ready to send.
type NotifyFunc func(conn ConnHandle)

// A NotifyRegistration is one registry slot: the bookkeeping record the
// stack needs to later fulfil, or cancel, a notification-send request.
// The same record is handed to the stack for every request on its slot,
// which keeps at most one request per connection per characteristic
// outstanding.
type NotifyRegistration struct {
	Conn ConnHandle
	Send NotifyFunc
}

// A Stack is the surface this layer consumes from the BLE stack
// collaborator.
type Stack interface {
	// RequestNotify asks the stack to call reg.Send(reg.Conn) on a later
	// turn of its event dispatcher. A request for an already-pending
	// registration coalesces: whatever value is current at send time goes
	// out once. RequestNotify must not block.
	RequestNotify(reg *NotifyRegistration)

	// CancelNotify drops any pending request for reg, so a cleared slot is
	// never referenced by an in-flight request.
	CancelNotify(reg *NotifyRegistration)

	// Notify transmits value as a notification for the attribute handle
	// attr to conn. Called from NotifyFuncs.
	Notify(conn ConnHandle, attr uint16, value []byte) error
}

const cfgNotifyFlag uint16 = 0x0001

// NotifyState tracks which connections have enabled notifications for one
// characteristic. Capacity is fixed at MaxConnections; the table never
// grows. One instance exists per notifiable characteristic, created before
// any timer that may notify through it.
type NotifyState struct {
	stack Stack
	slots [MaxConnections]NotifyRegistration
}

// NewNotifyState returns a registry whose slots deliver through send.
// The callback is captured once; it is configuration, not per-call
// behavior.
func NewNotifyState(stack Stack, send NotifyFunc) *NotifyState {
	n := &NotifyState{stack: stack}
	for i := range n.slots {
		n.slots[i] = NotifyRegistration{Conn: InvalidConnHandle, Send: send}
	}
	return n
}

// Registered reports whether conn holds a slot.
func (n *NotifyState) Registered(conn ConnHandle) bool {
	if conn == InvalidConnHandle {
		return false
	}
	for i := range n.slots {
		if n.slots[i].Conn == conn {
			return true
		}
	}
	return false
}

// Register binds conn to the first free slot. It reports false, leaving
// the table untouched, when conn is already registered or no slot is free.
func (n *NotifyState) Register(conn ConnHandle) bool {
	if conn == InvalidConnHandle || n.Registered(conn) {
		return false
	}
	for i := range n.slots {
		if n.slots[i].Conn != InvalidConnHandle {
			continue
		}
		n.slots[i].Conn = conn
		return true
	}
	// Full. Capacity equals the connection limit, so this is not expected;
	// degrade quietly rather than corrupt the table.
	return false
}

// Unregister releases conn's slot, cancelling any outstanding send request
// first so no request references a freed slot. It reports false when conn
// holds no slot. Must be invoked for every registry a connection might be
// bound to when the link disconnects.
func (n *NotifyState) Unregister(conn ConnHandle) bool {
	if conn == InvalidConnHandle {
		return false
	}
	for i := range n.slots {
		if n.slots[i].Conn != conn {
			continue
		}
		n.stack.CancelNotify(&n.slots[i])
		n.slots[i].Conn = InvalidConnHandle
		return true
	}
	return false
}

// Notify asks the stack to deliver to every registered connection. It does
// not block, and with no slots bound it does nothing.
func (n *NotifyState) Notify() {
	for i := range n.slots {
		if n.slots[i].Conn == InvalidConnHandle {
			continue
		}
		n.stack.RequestNotify(&n.slots[i])
	}
}

// ClientConfiguration returns the subscription descriptor value for conn:
// 1 when subscribed, else 0. Only the notify bit is modelled.
func (n *NotifyState) ClientConfiguration(conn ConnHandle) uint16 {
	if n.Registered(conn) {
		return cfgNotifyFlag
	}
	return 0
}

// WriteClientConfiguration applies a subscription descriptor write for
// conn. The payload must be exactly the 16-bit descriptor value; trailing
// bytes are rejected with no state change.
func (n *NotifyState) WriteClientConfiguration(conn ConnHandle, c *WriteConsumer) byte {
	state, err := Consume[uint16](c)
	if err != nil {
		return WriteStatus(err)
	}
	if c.Remaining() != 0 {
		return StatusInvalidLength
	}

	if state&cfgNotifyFlag != 0 {
		n.Register(conn)
	} else {
		n.Unregister(conn)
	}
	return StatusSuccess
}
