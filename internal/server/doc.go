// Package server runs the optional local status server of the console.
//
// The server binds before it reports success, serves until its context is
// cancelled and then shuts down gracefully.
package server
