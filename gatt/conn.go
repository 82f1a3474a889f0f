package gatt

// A ConnHandle identifies one active link. It is issued by the BLE stack
// and stable for the link's lifetime.
type ConnHandle uint16

// InvalidConnHandle marks an unused registry slot. The stack never issues it.
const InvalidConnHandle ConnHandle = 0xffff

// MaxConnections is the number of concurrent central connections the
// peripheral supports. Notification registries are sized to it at build
// time and never grow.
const MaxConnections = 4
