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

// Package metrics exposes the Prometheus counters and gauges the
// connection engine and the server's cleanup queue update as they run.
// Registration is opt-in (Register) so a process embedding this library
// more than once, or not running a Prometheus exporter at all, is never
// forced to pay for it.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ConnectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventsock",
		Name:      "connections_total",
		Help:      "Connections established, partitioned by transport.",
	}, []string{"transport"})

	BytesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "eventsock",
		Name:      "bytes_total",
		Help:      "Bytes transferred, partitioned by transport and direction.",
	}, []string{"transport", "direction"})

	CleanupQueueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "eventsock",
		Name:      "cleanup_queue_depth",
		Help:      "Number of accepted child connections the server currently tracks, including those awaiting teardown.",
	})
)

// Register adds the collectors above to reg. It is safe to call more than
// once against distinct registries; registering the same collector twice
// against one registry returns an error from reg.Register, which callers
// may ignore if re-registration is expected (e.g. in tests).
func Register(reg prometheus.Registerer) error {
	if err := reg.Register(ConnectionsTotal); err != nil {
		return err
	}
	if err := reg.Register(BytesTotal); err != nil {
		return err
	}
	return reg.Register(CleanupQueueDepth)
}
