/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"path/filepath"
	"time"

	"github.com/hashicorp/go-version"
	"github.com/hyperledger/fabric-bnc/common/viperutil"
	"github.com/hyperledger/fabric-lib-go/common/flogging"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	ConfigName = "bnpeer"
	EnvPrefix  = "BNPEER"
	PathEnvVar = "BNPEER_CFG_PATH"
)

var logger = flogging.MustGetLogger("config")

// TopLevel is the bnpeer.yaml configuration.
type TopLevel struct {
	Peer          Peer
	Logging       Logging
	Operations    Operations
	Metrics       Metrics
	Participation Participation
	Profiles      []Profile
	Networks      []Network
}

type Peer struct {
	ID             string `mapstructure:"id"`
	FileSystemPath string `mapstructure:"fileSystemPath"`
}

type Logging struct {
	Spec   string
	Format string
}

type Operations struct {
	ListenAddress string `mapstructure:"listenAddress"`
	TLS           TLS    `mapstructure:"tls"`
}

type TLS struct {
	Enabled            bool
	Cert               File
	Key                File
	ClientAuthRequired bool  `mapstructure:"clientAuthRequired"`
	ClientRootCAs      Files `mapstructure:"clientRootCAs"`
}

type File struct {
	File string
}

type Files struct {
	Files []string
}

type Metrics struct {
	Provider string
	Statsd   Statsd
}

type Statsd struct {
	Network       string
	Address       string
	WriteInterval time.Duration `mapstructure:"writeInterval"`
	Prefix        string
}

type Participation struct {
	Enabled bool
}

// Profile is a connection profile under which business networks run.
type Profile struct {
	Name  string
	MSPID string `mapstructure:"mspID"`
}

// Network is a business network started when the peer boots.
type Network struct {
	Name    string
	Profile string
	Version string
}

// Load reads configFile or, when empty, bnpeer.yaml from the configuration
// search path. Relative file references are resolved against the directory
// holding the configuration file.
func Load(configFile string) (*TopLevel, error) {
	v := viper.New()
	viperutil.InitViper(v, ConfigName, EnvPrefix, viperutil.ConfigPaths(PathEnvVar, ConfigName)...)
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "failed to read configuration")
	}
	logger.Debugf("Read configuration from %s", v.ConfigFileUsed())

	conf := &TopLevel{}
	if err := viperutil.EnhancedExactUnmarshal(v, conf); err != nil {
		return nil, errors.WithMessagef(err, "failed to parse configuration %s", v.ConfigFileUsed())
	}

	conf.completeInitialization(filepath.Dir(v.ConfigFileUsed()))
	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *TopLevel) completeInitialization(configDir string) {
	if c.Logging.Spec == "" {
		c.Logging.Spec = "info"
	}
	if c.Metrics.Provider == "" {
		c.Metrics.Provider = "disabled"
	}
	if c.Metrics.Statsd.WriteInterval == 0 {
		c.Metrics.Statsd.WriteInterval = 10 * time.Second
	}

	tls := &c.Operations.TLS
	tls.Cert.File = translatePath(configDir, tls.Cert.File)
	tls.Key.File = translatePath(configDir, tls.Key.File)
	for i, f := range tls.ClientRootCAs.Files {
		tls.ClientRootCAs.Files[i] = translatePath(configDir, f)
	}
	if c.Peer.FileSystemPath != "" {
		c.Peer.FileSystemPath = translatePath(configDir, c.Peer.FileSystemPath)
	}
}

func (c *TopLevel) validate() error {
	profiles := map[string]bool{}
	for _, p := range c.Profiles {
		if p.Name == "" {
			return errors.New("connection profile without a name")
		}
		if profiles[p.Name] {
			return errors.Errorf("connection profile [%s] is defined more than once", p.Name)
		}
		profiles[p.Name] = true
	}

	for _, n := range c.Networks {
		if n.Name == "" {
			return errors.New("business network without a name")
		}
		if !profiles[n.Profile] {
			return errors.Errorf("business network [%s] uses undefined connection profile [%s]", n.Name, n.Profile)
		}
		if _, err := version.NewSemver(n.Version); err != nil {
			return errors.Wrapf(err, "business network [%s] has invalid version [%s]", n.Name, n.Version)
		}
	}
	return nil
}

func translatePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
