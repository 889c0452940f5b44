package cmd

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/lumeray/lumeray/pkg/scene"
)

// sceneFactory builds a demo scene for the given output dimensions
type sceneFactory struct {
	Description string
	Build       func(width, height int) *scene.Scene
}

var sceneFactories = map[string]sceneFactory{
	"default": {
		Description: "spheres of every material kind on a checkered ground",
		Build:       scene.NewDefaultScene,
	},
	"cornell": {
		Description: "classic Cornell box with a metal and a glass sphere",
		Build:       scene.NewCornellScene,
	},
}

func sceneByName(name string, width, height int) (*scene.Scene, error) {
	factory, ok := sceneFactories[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q; run the scenes command for the available list", name)
	}
	return factory.Build(width, height), nil
}

// ListScenes prints the built-in scenes.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	names := make([]string, 0, len(sceneFactories))
	for name := range sceneFactories {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Description"})
	for _, name := range names {
		table.Append([]string{name, sceneFactories[name].Description})
	}
	table.Render()

	logger.Noticef("built-in scenes\n%s", buf.String())
	return nil
}
