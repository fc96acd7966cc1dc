// Package lazy provides patterns that are checked when declared and compiled
// on first use.
//
// A Pattern validates its syntax up front and defers the engine build until a
// match is requested. Get and Load realize one artifact per Pattern and share
// it between goroutines; after the first call they cost a single atomic load.
// Workers that want a private artifact take a Local, which compiles at most
// once and needs no synchronization as long as one goroutine owns it.
//
// The realized pattern reports the source exactly as given, without the
// options applied by the Builder.
package lazy
