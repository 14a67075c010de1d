package main

import (
	"fmt"

	"github.com/fwojciec/wetclean/yaml"
)

// Run executes the config command.
func (c *ConfigCmd) Run(deps *Dependencies) error {
	out, err := yaml.MarshalConfig(deps.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	_, err = deps.Stdout.Write(out)
	return err
}
