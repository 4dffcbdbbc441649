package main

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/mvailland/radiofrance-dl/pkg/config"
)

type configCommand struct {
	Args struct {
		Action string `positional-arg-name:"action" required:"yes" description:"get or set"`
		Key    string `positional-arg-name:"key" description:"api_key, output_dir or default_station"`
		Value  string `positional-arg-name:"value" description:"value to store"`
	} `positional-args:"yes"`
}

func (c *configCommand) Execute(_ []string) error {
	switch c.Args.Action {
	case "get":
		return c.get()
	case "set":
		return c.set()
	default:
		return errors.Errorf("unknown action %q, expected get or set", c.Args.Action)
	}
}

func (c *configCommand) get() error {
	apiKey := cfg.APIKey
	if len(apiKey) > 8 {
		apiKey = apiKey[:8] + "..."
	}
	if apiKey == "" {
		apiKey = "-"
	}

	station := cfg.DefaultStation
	if station == "" {
		station = "-"
	}

	fmt.Printf("api_key          %s\n", apiKey)
	fmt.Printf("output_dir       %s\n", cfg.OutputDir)
	fmt.Printf("default_station  %s\n", station)
	return nil
}

func (c *configCommand) set() error {
	if c.Args.Key == "" {
		return errors.New("config set requires a key and a value")
	}

	switch c.Args.Key {
	case "api_key":
		cfg.APIKey = c.Args.Value
	case "output_dir":
		cfg.OutputDir = c.Args.Value
	case "default_station":
		cfg.DefaultStation = c.Args.Value
	default:
		return errors.Errorf("unknown config key %q", c.Args.Key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	path, err := configPath()
	if err != nil {
		return err
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Printf("Saved %s.\n", c.Args.Key)
	return nil
}
