package cmd

import (
	"bytes"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"
)

// ShowInfo prints the host resources available for rendering.
func ShowInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("\nLogical CPUs: %d\n", runtime.NumCPU()))

	if cpuInfo, err := cpu.Info(); err == nil && len(cpuInfo) > 0 {
		buf.WriteString(fmt.Sprintf("CPU model:    %s\n", cpuInfo[0].ModelName))
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		buf.WriteString(fmt.Sprintf("Memory:       %.1f GB total, %.1f GB available\n",
			float64(vm.Total)/(1<<30), float64(vm.Available)/(1<<30)))
	}

	logger.Notice(buf.String())
	return nil
}
