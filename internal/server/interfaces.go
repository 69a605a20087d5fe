package server

// Server is the lifecycle contract the entrypoint works against.
//
// [RunServer] blocks until a stop signal arrives and the HTTP listener has
// drained; [Shutdown] may be called directly to stop the server early.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
