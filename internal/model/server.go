package model

import (
	"context"
	"net"
)

// SecurityLayer produces the network listener a server accepts on, either
// plain TCP or TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a startable, stoppable network server.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
