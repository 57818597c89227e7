/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package pages

import (
	"fmt"
	"net"
	"strings"

	"idecore/internal/catalog"
	"idecore/internal/config"
	"idecore/internal/settings"
)

const (
	// NetworkKey is the settings entry holding proxy settings.
	NetworkKey = "Network"
	// ProxyPasswordSecret names the proxy password in the secret store.
	ProxyPasswordSecret = "proxy-password"
)

// NetworkValues are the editable values of the Network page.
type NetworkValues struct {
	ProxyHost     string
	ProxyPort     int
	ProxyUser     string
	ProxyPassword string
}

// Address returns host:port, or "" when no proxy is configured.
func (v NetworkValues) Address() string {
	if v.ProxyHost == "" {
		return ""
	}
	return net.JoinHostPort(v.ProxyHost, fmt.Sprint(v.ProxyPort))
}

// Network edits the HTTP proxy. The password is kept in the secret store, not in the
// settings document.
type Network struct {
	*catalog.BasePage
	store   settings.Store
	secrets config.SecretStore

	saved, values NetworkValues
}

func NewNetwork(deps Deps) *Network {
	p := &Network{
		BasePage: catalog.NewBasePage(NetworkID, "Network", "Proxy server"),
		store:    deps.Store,
		secrets:  deps.Secrets,
	}
	if p.secrets == nil {
		p.secrets = config.NewMemorySecrets()
	}
	p.SetKeywords(searchWords[NetworkID]...)
	p.load()
	return p
}

func (p *Network) load() {
	o := p.store.Object(NetworkKey)
	var v NetworkValues
	v.ProxyHost, _ = o.String("ProxyHost")
	v.ProxyUser, _ = o.String("ProxyUser")
	if port, ok := o.Float("ProxyPort"); ok {
		v.ProxyPort = int(port)
	}
	if pw, err := p.secrets.Get(ProxyPasswordSecret); err == nil {
		v.ProxyPassword = pw
	}
	p.saved, p.values = v, v
}

func (p *Network) Values() NetworkValues     { return p.values }
func (p *Network) SetValues(v NetworkValues) { p.values = v }

func (p *Network) Accept() error {
	v := p.values
	v.ProxyHost = strings.TrimSpace(v.ProxyHost)
	if v == p.saved {
		return nil
	}
	if v.ProxyPort < 0 || v.ProxyPort > 65535 {
		return invalid("proxy port %d", v.ProxyPort)
	}
	if v.ProxyHost != "" && v.ProxyPort == 0 {
		return invalid("proxy %q needs a port", v.ProxyHost)
	}
	if strings.ContainsAny(v.ProxyHost, " /") {
		return invalid("proxy host %q", v.ProxyHost)
	}

	if v.ProxyPassword != p.saved.ProxyPassword {
		var err error
		if v.ProxyPassword == "" {
			err = p.secrets.Delete(ProxyPasswordSecret)
		} else {
			err = p.secrets.Set(ProxyPasswordSecret, v.ProxyPassword)
		}
		if err != nil {
			return fmt.Errorf("store proxy password: %w", err)
		}
	}
	p.store.Insert(NetworkKey, map[string]any{
		"ProxyHost": v.ProxyHost,
		"ProxyPort": float64(v.ProxyPort),
		"ProxyUser": v.ProxyUser,
	})
	p.saved, p.values = v, v
	return nil
}

func (p *Network) Finish() {
	p.load()
	p.BasePage.Finish()
}
