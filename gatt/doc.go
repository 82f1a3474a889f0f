// Package gatt is the attribute-protocol serving layer of the controller.
//
// The BLE stack itself (link establishment, the attribute database, PDU
// framing) is an external collaborator reached through the Stack interface
// and the Dispatcher entry points. This package supplies what sits above
// it: a bounds-checked cursor for decoding write payloads, a fixed-capacity
// per-characteristic notification registry, and the dispatch plumbing that
// routes reads and writes to services by attribute handle.
//
// Everything here runs on the stack's single event dispatch context.
// Nothing blocks and nothing locks; the only concurrency crossing is the
// sensors package's atomic sample reads.
package gatt
