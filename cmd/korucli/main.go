// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/devblok/vkboot/core"
	"github.com/devblok/vkboot/device"
	log "github.com/sirupsen/logrus"
)

var (
	debug  = flag.Bool("vkdbg", false, "Load Vulkan validation layers")
	indent = flag.Bool("indent", false, "Indent the JSON output")
)

func main() {
	flag.Parse()

	if err := core.ConfigureLogging(os.Stderr); err != nil {
		log.Fatal(err)
	}

	cfg := core.DefaultConfiguration()
	cfg.Validation.Enabled = *debug

	validation, err := core.NewValidation(cfg.Validation, nil)
	if err != nil {
		log.Fatal(err)
	}

	drv := device.NewVulkan(nil)
	if err := core.NewInstance(drv, cfg.Application, nil, validation); err != nil {
		log.Fatal(err)
	}
	messenger, err := core.AttachDebugMessenger(drv, validation)
	if err != nil {
		drv.DestroyInstance()
		log.Fatal(err)
	}

	reports, inspectErr := core.InspectAdapters(drv, cfg.Renderer.DeviceExtensions)

	if messenger != nil {
		drv.DestroyDebugMessenger()
	}
	drv.DestroyInstance()

	if inspectErr != nil {
		log.Fatal(inspectErr)
	}

	var bytes []byte
	if *indent {
		bytes, err = json.MarshalIndent(reports, "", "  ")
	} else {
		bytes, err = json.Marshal(reports)
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s\n", bytes)
}
