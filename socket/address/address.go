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

// Package address holds the numeric (address, port) pair captured for a
// TCP peer or the most recent UDP sender. Addresses are always numeric:
// this library never performs name resolution.
package address

import (
	"net"
	"strconv"
)

// Info is the numeric address/port pair for a peer.
type Info struct {
	Addr string
	Port uint16
}

// String renders the pair as host:port (":0" for a zero Info).
func (i Info) String() string {
	return net.JoinHostPort(i.Addr, strconv.Itoa(int(i.Port)))
}

// IsZero reports whether this Info has never been populated.
func (i Info) IsZero() bool {
	return i.Addr == "" && i.Port == 0
}

// FromNetAddr extracts a numeric Info from a net.Addr, switching on its
// concrete type so an IPv6 peer is always formatted as IPv6 rather than
// truncated to an IPv4-shaped address.
func FromNetAddr(a net.Addr) Info {
	if a == nil {
		return Info{}
	}
	switch v := a.(type) {
	case *net.TCPAddr:
		return Info{Addr: v.IP.String(), Port: uint16(v.Port)}
	case *net.UDPAddr:
		return Info{Addr: v.IP.String(), Port: uint16(v.Port)}
	case *net.UnixAddr:
		return Info{Addr: v.Name}
	default:
		host, port, err := net.SplitHostPort(a.String())
		if err != nil {
			return Info{Addr: a.String()}
		}
		p, _ := strconv.Atoi(port)
		return Info{Addr: host, Port: uint16(p)}
	}
}
