// Command zparse-api runs the zparse HTTP API server. The listen
// address comes from ZPARSE_HOST and ZPARSE_PORT, defaulting to
// 127.0.0.1:3000.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/google/gops/agent"

	"github.com/zparse/zparse/api"
)

func main() {
	// Start gops agent for debugging
	if err := agent.Listen(agent.Options{}); err != nil {
		fmt.Fprintf(os.Stderr, "gops agent failed: %v\n", err)
	}

	host := os.Getenv("ZPARSE_HOST")
	if host == "" {
		host = "127.0.0.1"
	}
	port := os.Getenv("ZPARSE_PORT")
	if port == "" {
		port = "3000"
	}

	srv := api.New(nil)
	if err := srv.Start(net.JoinHostPort(host, port)); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start api server: %v\n", err)
		os.Exit(1)
	}

	// Block forever
	select {}
}
