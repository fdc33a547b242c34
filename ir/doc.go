// Package ir defines the format-neutral value model. Every supported
// format parses into a *Node tree and every emitter renders from one,
// so any format converts to any other through this package alone.
package ir
