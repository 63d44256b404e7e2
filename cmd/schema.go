package cmd

import (
	"fmt"

	"github.com/bruin-data/docsite/pkg/sidebar"
	"github.com/bruin-data/docsite/pkg/site"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var schemaTargets = map[string]func() any{
	"site":    func() any { return &site.Config{} },
	"sidebar": func() any { return &sidebar.Config{} },
}

// configSchema generates the JSON schema of the config file with the given name.
func configSchema(name string) ([]byte, error) {
	target, ok := schemaTargets[name]
	if !ok {
		return nil, errors.Errorf("unknown schema '%s', possible values are: site, sidebar", name)
	}

	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
	}
	schema := r.Reflect(target())

	return schema.MarshalJSON()
}

func Schema() *cli.Command {
	return &cli.Command{
		Name:      "schema",
		Usage:     "print the JSON schema of the site or the sidebar config file",
		ArgsUsage: "[site|sidebar]",
		Action: func(c *cli.Context) error {
			name := c.Args().Get(0)
			if name == "" {
				name = "site"
			}

			out, err := configSchema(name)
			if err != nil {
				errorPrinter.Printf("%v\n", err)
				return cli.Exit("", 1)
			}

			fmt.Println(string(out))
			return nil
		},
	}
}
