package main

import (
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"github.com/mvailland/radiofrance-dl/pkg/api"
	"github.com/mvailland/radiofrance-dl/pkg/config"
	"github.com/mvailland/radiofrance-dl/pkg/model"
)

type globalOpts struct {
	ConfigPath string `long:"config" short:"c" description:"path to config file" env:"RADIOFRANCE_DL_CONFIG"`
	Debug      bool   `long:"debug" description:"enable debug logging"`
}

var (
	opts globalOpts
	cfg  *config.Config
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.RFC3339,
		FullTimestamp:   true,
	})

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)

	mustAddCommand(parser, "search", "Search for shows", "Search the catalog for shows matching a text query.", &searchCommand{})
	mustAddCommand(parser, "list", "List stations or shows", "List the Radio France stations, or the shows matching a query.", &listCommand{})
	mustAddCommand(parser, "episodes", "List episodes of a show", "List episodes for a show id or show page URL.", &episodesCommand{})
	mustAddCommand(parser, "download", "Download episodes", "Download episode audio for a show id or show page URL.", &downloadCommand{})
	mustAddCommand(parser, "config", "Get or set configuration", "Read and write the persisted configuration.", &configCommand{})

	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if opts.Debug {
			log.SetLevel(log.DebugLevel)
		}
		log.WithFields(log.Fields{"version": version, "commit": commit}).Debug("radiofrance-dl")

		var err error
		cfg, err = loadConfig()
		if err != nil {
			return err
		}

		return command.Execute(args)
	}

	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		log.WithError(err).Error("command failed")
		os.Exit(1)
	}
}

func mustAddCommand(parser *flags.Parser, name, short, long string, cmd flags.Commander) {
	if _, err := parser.AddCommand(name, short, long, cmd); err != nil {
		panic(err)
	}
}

func loadConfig() (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	log.Debugf("loading configuration %q", path)
	return config.Load(path)
}

func configPath() (string, error) {
	if opts.ConfigPath != "" {
		return opts.ConfigPath, nil
	}
	return config.DefaultPath()
}

// newAPI returns a REST client, failing when no API key is configured.
func newAPI() (*api.Client, error) {
	if cfg.APIKey == "" {
		return nil, &model.AuthError{Message: "no API key configured, run: radiofrance-dl config set api_key <key>"}
	}
	return api.New(cfg.APIKey), nil
}

// newGraphQL returns a GraphQL client, failing when no API key is configured.
func newGraphQL() (*api.GraphQL, error) {
	if cfg.APIKey == "" {
		return nil, &model.AuthError{Message: "no API key configured, run: radiofrance-dl config set api_key <key>"}
	}
	return api.NewGraphQL(cfg.APIKey), nil
}

// defaultStation returns the configured default station, nil when unset.
func defaultStation() *model.StationID {
	if cfg.DefaultStation == "" {
		return nil
	}
	id := model.StationID(cfg.DefaultStation)
	if _, ok := model.Stations[id]; !ok {
		log.Warnf("ignoring unknown default station %q", cfg.DefaultStation)
		return nil
	}
	return &id
}
