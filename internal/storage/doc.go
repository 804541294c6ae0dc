// Package storage provides an optional change-history log.
//
// Each detected inventory change appends one event (counts + rendered
// report). The snapshot file stays the sole authoritative state; history
// is for operator inspection and its failures never abort a cycle.
package storage
