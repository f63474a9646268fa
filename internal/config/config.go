// Package config loads matchserver's configuration with viper, mirroring
// the teacher's node-configuration layout: one mapstructure-tagged struct
// per concern, composed by embedding, loaded from a YAML file with
// environment-variable overrides and hot-reload via fsnotify.
package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Conf is the process-wide loaded configuration, set by Load.
var Conf Config

// Config is the root configuration for a matchserver node.
type Config struct {
	ID         string `mapstructure:"id"`
	MetricPort int    `mapstructure:"metricPort"`
	HttpPort   int    `mapstructure:"httpPort"`

	LogConf   LogConf   `mapstructure:"log"`
	JwtConf   JwtConf   `mapstructure:"jwt"`
	EtcdConf  EtcdConf  `mapstructure:"etcd"`
	NatsConf  NatsConf  `mapstructure:"nats"`
	RpcConf   RpcConf   `mapstructure:"rpc"`
	Database  Database  `mapstructure:"database"`
	MatchConf MatchConf `mapstructure:"match"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type JwtConf struct {
	Secret string `mapstructure:"secret"`
	Expire int    `mapstructure:"expire"`
}

type EtcdConf struct {
	Addrs       []string `mapstructure:"addrs"`
	DialTimeout int      `mapstructure:"dialTimeout"`
	RWTimeout   int      `mapstructure:"rwTimeout"`
	Register    Register `mapstructure:"register"`
}

type Register struct {
	Domain  string `mapstructure:"domain"`
	Addr    string `mapstructure:"addr"`
	Version string `mapstructure:"version"`
	Weight  int    `mapstructure:"weight"`
	Ttl     int    `mapstructure:"ttl"`
}

type NatsConf struct {
	URL string `mapstructure:"url"`
}

type RpcConf struct {
	AccountAddr string `mapstructure:"accountAddr"`
}

type Database struct {
	Mongo MongoConf `mapstructure:"mongo"`
	Redis RedisConf `mapstructure:"redis"`
}

type MongoConf struct {
	Url         string `mapstructure:"url"`
	Db          string `mapstructure:"db"`
	MinPoolSize int    `mapstructure:"minPoolSize"`
	MaxPoolSize int    `mapstructure:"maxPoolSize"`
}

type RedisConf struct {
	Addr         string `mapstructure:"addr"`
	Password     string `mapstructure:"password"`
	PoolSize     int    `mapstructure:"poolSize"`
	MinIdleConns int    `mapstructure:"minIdleConns"`
}

// MatchConf holds engine-level tunables that aren't part of the core
// state machine itself.
type MatchConf struct {
	SeatTimeoutSeconds int `mapstructure:"seatTimeoutSeconds"`
}

// Load reads configFile into Conf, lets environment variables override
// keys (with "." in a key written as "_"), and watches the file for
// changes.
func Load(configFile string) error {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", configFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}
	Conf = cfg

	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		var reloaded Config
		if err := v.Unmarshal(&reloaded); err != nil {
			return
		}
		Conf = reloaded
	})

	return nil
}
