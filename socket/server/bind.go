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

package server

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"golang.org/x/net/ipv6"

	"github.com/nabbar/eventsock/socket/config"
)

// splitHostPort parses a "host:port" configuration address into the
// numeric port and bind host socket/conn.Conn.Listen expects. An empty
// host means the wildcard address.
func splitHostPort(addr string) (host string, port uint16, err error) {
	h, p, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	n, err := strconv.ParseUint(p, 10, 16)
	if err != nil {
		return "", 0, err
	}
	return h, uint16(n), nil
}

// applyUnixPerm chowns/chmods a just-bound Unix-domain socket file per
// cfg.PermFile/cfg.GroupPerm. A leading '@' (abstract namespace) skips
// both steps, since there is no backing file to touch; a zero PermFile
// skips the chmod, and a negative GroupPerm (-1) skips the chown. A
// GroupPerm of 0 chowns the file to group 0.
func applyUnixPerm(cfg config.Server) {
	if len(cfg.Address) == 0 || cfg.Address[0] == '@' {
		return
	}
	if cfg.PermFile != 0 {
		_ = os.Chmod(cfg.Address, cfg.PermFile.FileMode())
	}
	if cfg.GroupPerm >= 0 && cfg.GroupPerm <= config.MaxGID {
		_ = os.Chown(cfg.Address, -1, int(cfg.GroupPerm))
	}
}

// joinMulticastGroup joins pc to cfg.MulticastGroup. An unset group, or a
// pc that isn't a *net.UDPConn, is a no-op; a group that does not parse as
// an IP address is an error. IPv4 listeners never reach here since
// joinMulticastGroup is only called for NetworkUDP6.
func joinMulticastGroup(pc net.PacketConn, cfg config.Server) error {
	if cfg.MulticastGroup == "" {
		return nil
	}
	uc, ok := pc.(*net.UDPConn)
	if !ok {
		return nil
	}
	group := net.ParseIP(cfg.MulticastGroup)
	if group == nil {
		return fmt.Errorf("socket/server: invalid multicast group %q", cfg.MulticastGroup)
	}
	return ipv6.NewPacketConn(uc).JoinGroup(nil, &net.UDPAddr{IP: group})
}
