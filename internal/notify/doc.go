// Package notify tells a socket.io server that a canvas was written, so a
// live view of the diagram can reload it.
package notify
