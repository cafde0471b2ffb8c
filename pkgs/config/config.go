package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Addresses optionally override the peer addresses derived from the team
// number. Empty strings keep the protocol's own derivation.
type Addresses struct {
	FMS   string
	Radio string
	Robot string
}

// Watchdog holds the grace windows, in milliseconds, before a silent peer
// is reported as disconnected.
type Watchdog struct {
	RobotGraceMs uint32
	FmsGraceMs   uint32
}

type Configuration struct {
	Team      uint16
	Addresses Addresses
	Watchdog  Watchdog
}

func NewConfig() (*Configuration, error) {
	config := Configuration{}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigName(".ds")
	v.AddConfigPath("$HOME/")
	v.AddConfigPath(".")
	_ = v.SafeWriteConfig()

	v.SetDefault("team", 0)
	v.SetDefault("addresses.fms", "")
	v.SetDefault("addresses.radio", "")
	v.SetDefault("addresses.robot", "")
	v.SetDefault("watchdog.robotgracems", 1000)
	v.SetDefault("watchdog.fmsgracems", 2000)

	if err := v.ReadInConfig(); err != nil {
		return &Configuration{}, fmt.Errorf("cannot parse config: %s", err.Error())
	}
	if err := v.Unmarshal(&config); err != nil {
		return &config, fmt.Errorf("cannot parse config: %s", err.Error())
	}

	return &config, nil
}
