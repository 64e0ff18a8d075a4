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

package config_test

import (
	"bytes"
	"reflect"

	. "github.com/nabbar/eventsock/socket/config"
	"github.com/nabbar/eventsock/socket/perm"
	"github.com/nabbar/eventsock/socket/protocol"
	"github.com/spf13/viper"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type decodeHook = func(reflect.Type, reflect.Type, interface{}) (interface{}, error)

// composeHooks chains decode hooks of socket/protocol and socket/perm's
// shape into one, the way mapstructure.ComposeDecodeHookFunc would, without
// a direct dependency on that package: each hook runs in turn on the
// previous one's output, and a hook that doesn't recognize the target type
// passes data through unchanged.
func composeHooks(hooks ...decodeHook) decodeHook {
	return func(from, to reflect.Type, data interface{}) (interface{}, error) {
		var err error
		for _, h := range hooks {
			data, err = h(from, to, data)
			if err != nil {
				return nil, err
			}
			from = reflect.TypeOf(data)
		}
		return data, nil
	}
}

var _ = Describe("viper decoding", func() {
	It("unmarshals a Server entry using the protocol and perm decoder hooks", func() {
		v := viper.New()
		v.SetConfigType("yaml")

		src := []byte(`
network: unix
address: /run/eventsock/app.sock
perm_file: "0640"
group_perm: 100
tls:
  enabled: true
`)
		Expect(v.ReadConfig(bytes.NewReader(src))).ToNot(HaveOccurred())

		var s Server
		err := v.Unmarshal(&s, viper.DecodeHook(
			composeHooks(protocol.ViperDecoderHook(), perm.ViperDecoderHook()),
		))
		Expect(err).ToNot(HaveOccurred())

		Expect(s.Network).To(Equal(protocol.NetworkUnix))
		Expect(s.Address).To(Equal("/run/eventsock/app.sock"))
		Expect(s.PermFile.String()).To(Equal("0640"))
		Expect(s.GroupPerm).To(Equal(int32(100)))
		Expect(s.TLS.Enabled).To(BeTrue())
		Expect(s.Validate()).ToNot(HaveOccurred())
	})

	It("unmarshals a Client entry targeting TCP", func() {
		v := viper.New()
		v.SetConfigType("yaml")

		src := []byte(`
network: tcp4
address: 127.0.0.1:4040
`)
		Expect(v.ReadConfig(bytes.NewReader(src))).ToNot(HaveOccurred())

		var c Client
		err := v.Unmarshal(&c, viper.DecodeHook(protocol.ViperDecoderHook()))
		Expect(err).ToNot(HaveOccurred())

		Expect(c.Network).To(Equal(protocol.NetworkTCP4))
		Expect(c.Validate()).ToNot(HaveOccurred())
	})
})
