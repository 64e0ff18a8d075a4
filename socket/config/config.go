/*
 * MIT License
 *
 * Copyright (c) 2025 eventsock contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package config holds the declarative Client/Server descriptions an
// application loads (typically via viper) to drive socket/conn and
// socket/server without touching their Go types directly.
package config

import (
	"errors"
	"net"

	"github.com/nabbar/eventsock/socket/perm"
	"github.com/nabbar/eventsock/socket/protocol"
)

// MaxGID is the largest group id socket files are allowed to be chowned
// to; this matches the historic 16-bit gid_t ceiling some platforms still
// enforce.
const MaxGID = 32767

var (
	ErrInvalidProtocol = errors.New("socket/config: invalid protocol")
	ErrInvalidTLSConfig = errors.New("socket/config: invalid TLS config")
	ErrInvalidGroup     = errors.New("socket/config: invalid unix group")
)

// TLSConfig is a minimal opt-in marker: this library does not load or
// manage certificates itself, it only records whether the caller intends
// to wrap the dialed/accepted net.Conn in TLS elsewhere.
type TLSConfig struct {
	Enabled bool
}

// Client describes one outbound connection target.
type Client struct {
	Network protocol.NetworkProtocol `mapstructure:"network"`
	Address string                   `mapstructure:"address"`
	TLS     TLSConfig                `mapstructure:"tls"`
}

// Validate checks that Network is recognized and Address parses for that
// protocol. It does not dial, so connection-refused failures surface
// later from socket/conn.Connect; a host name in Address is resolved here,
// so a DNS failure is reported by Validate.
func (c Client) Validate() error {
	if c.Network == protocol.NetworkProtocol(0) {
		return ErrInvalidProtocol
	}
	if c.Network.IsUnix() {
		return nil
	}
	switch {
	case c.Network == protocol.NetworkTCP || c.Network == protocol.NetworkTCP4 || c.Network == protocol.NetworkTCP6:
		if c.Address == "" {
			return nil
		}
		_, err := net.ResolveTCPAddr(c.Network.String(), c.Address)
		return err
	case c.Network == protocol.NetworkUDP || c.Network == protocol.NetworkUDP4 || c.Network == protocol.NetworkUDP6:
		if c.Address == "" {
			return nil
		}
		_, err := net.ResolveUDPAddr(c.Network.String(), c.Address)
		return err
	default:
		return ErrInvalidProtocol
	}
}

// Server describes one listening socket, including the Unix-domain file
// ownership/permission an application wants the socket file created with.
type Server struct {
	Network   protocol.NetworkProtocol `mapstructure:"network"`
	Address   string                   `mapstructure:"address"`
	PermFile  perm.Perm                `mapstructure:"perm_file"`
	GroupPerm int32                    `mapstructure:"group_perm"`
	TLS       TLSConfig                `mapstructure:"tls"`

	// MulticastGroup, if set, is joined after binding a udp6 listener;
	// other networks ignore it. It is an opt-in extension with no
	// equivalent Client-side field.
	MulticastGroup string `mapstructure:"multicast_group"`
}

// Validate checks Network, Address, and GroupPerm.
func (s Server) Validate() error {
	if s.Network == protocol.NetworkProtocol(0) {
		return ErrInvalidProtocol
	}
	if s.GroupPerm < -1 || s.GroupPerm > MaxGID {
		return ErrInvalidGroup
	}
	if s.Network.IsUnix() {
		return nil
	}
	switch {
	case s.Network == protocol.NetworkTCP || s.Network == protocol.NetworkTCP4 || s.Network == protocol.NetworkTCP6:
		if s.Address == "" {
			return nil
		}
		_, err := net.ResolveTCPAddr(s.Network.String(), s.Address)
		return err
	case s.Network == protocol.NetworkUDP || s.Network == protocol.NetworkUDP4 || s.Network == protocol.NetworkUDP6:
		if s.Address == "" {
			return nil
		}
		_, err := net.ResolveUDPAddr(s.Network.String(), s.Address)
		return err
	default:
		return ErrInvalidProtocol
	}
}
