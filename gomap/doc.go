// Package gomap converts between value trees and native Go values.
//
//	// Decode a tree into a Go struct
//	type User struct {
//	    Name string
//	    Age  int
//	}
//	var user User
//	err := gomap.FromNode(node, &user)
//
//	// Encode a Go value as a tree
//	node, err := gomap.ToNode(user)
//
// Only exported struct fields are processed, renamed by a json tag
// when present. Temporal nodes map to time.Time.
package gomap
