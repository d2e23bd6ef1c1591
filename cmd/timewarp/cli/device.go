// Copyright 2026 The Timewarp Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/timewarp-audio/timewarp/lib/config"
	"github.com/timewarp-audio/timewarp/lib/medium"
	"github.com/timewarp-audio/timewarp/lib/settings"
	"github.com/timewarp-audio/timewarp/lib/slotstore"
)

// DeviceParams is an embeddable struct for commands that operate on
// the device. It contributes the --config and --device flags and
// resolves them against the configuration file.
type DeviceParams struct {
	ConfigPath string `json:"-" flag:"config" desc:"config file path (overrides TIMEWARP_CONFIG)"`
	Device     string `json:"-" flag:"device" desc:"device file path (overrides the config)"`
}

// Config resolves the effective configuration for this invocation:
// the --config file, the TIMEWARP_CONFIG file, or the defaults, with
// --device overriding the device path afterwards.
func (p *DeviceParams) Config() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if p.ConfigPath != "" {
		cfg, err = config.LoadFile(p.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if p.Device != "" {
		cfg.Device.Path = p.Device
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenMedium opens the configured device file. The file must already
// exist; commands that create one go through [medium.OpenDevice]
// directly with the configured capacity.
func (p *DeviceParams) OpenMedium() (*medium.Device, *config.Config, error) {
	cfg, err := p.Config()
	if err != nil {
		return nil, nil, err
	}

	device, err := medium.OpenDevice(cfg.Device.Path, 0)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("device %s does not exist; run 'timewarp store init' to create it",
				cfg.Device.Path)
		}
		return nil, nil, err
	}
	return device, cfg, nil
}

// OpenStore opens the configured device and initializes the record
// store on it, recovering the live record's position. The caller owns
// the returned device and must Close it.
func (p *DeviceParams) OpenStore(logger *slog.Logger) (*slotstore.Store, *medium.Device, *config.Config, error) {
	device, cfg, err := p.OpenMedium()
	if err != nil {
		return nil, nil, nil, err
	}

	store := slotstore.New(device, settings.Size, logger)
	if err := store.Init(); err != nil {
		device.Close()
		return nil, nil, nil, err
	}
	return store, device, cfg, nil
}
