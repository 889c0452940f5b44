package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/lumeray/lumeray/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "lumeray"
	app.Usage = "render scenes using path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene to a PNG file",
			Description: `
Render a single frame of one of the built-in scenes with the Monte Carlo
path tracer. The frame is split into tiles and rendered by a pool of
workers; pressing Ctrl-C cancels the render between tiles.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "name of the built-in scene to render",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 800,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 450,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 0,
					Usage: "samples per pixel (0 = scene default)",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: 0,
					Usage: "maximum path depth (0 = scene default)",
				},
				cli.IntFlag{
					Name:  "tile-size",
					Value: 64,
					Usage: "tile edge length in pixels",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: 0,
					Usage: "number of render workers (0 = logical CPUs)",
				},
				cli.IntFlag{
					Name:  "seed",
					Value: 1,
					Usage: "base seed for the sample streams",
				},
				cli.IntFlag{
					Name:  "passes",
					Value: 1,
					Usage: "progressive passes (1 = render in one pass)",
				},
				cli.StringFlag{
					Name:  "integrator",
					Value: "path",
					Usage: "light transport algorithm: path or whitted",
				},
				cli.Float64Flag{
					Name:  "ambient",
					Value: 0,
					Usage: "flat ambient intensity for the whitted integrator",
				},
				cli.Float64Flag{
					Name:  "adaptive-threshold",
					Value: 0,
					Usage: "relative error target for adaptive sampling (0 = scene default)",
				},
				cli.BoolFlag{
					Name:  "no-adaptive",
					Usage: "disable adaptive sampling entirely",
				},
				cli.Float64Flag{
					Name:  "gamma",
					Value: 2.0,
					Usage: "display gamma for the output image",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:   "info",
			Usage:  "show host resources available for rendering",
			Action: cmd.ShowInfo,
		},
	}

	app.Run(os.Args)
}
