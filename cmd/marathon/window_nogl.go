//go:build nogl

package main

import (
	"errors"

	"github.com/gogpu/marathon/config"
	"github.com/gogpu/marathon/device"
)

func openWindow(config.Config) (surface, device.Device, error) {
	return nil, nil, errors.New("built with -tags nogl: no window support")
}
