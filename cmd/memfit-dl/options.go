package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/yaklang/memfit-dl/download"
	"github.com/yaklang/memfit-dl/internal/config"
	"github.com/yaklang/memfit-dl/internal/logging"
)

// commonOptions are accepted by every subcommand.
type commonOptions struct {
	configPath string
	logLevel   string
	baseURL    string
}

func (o *commonOptions) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&o.configPath, "config", "", "config file (YAML or JSONC); defaults to $"+config.EnvVar)
	flagSet.StringVar(&o.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flagSet.StringVar(&o.baseURL, "base-url", "", "artifact host, overrides the config file")
}

// environment is what a subcommand runs with once its flags are parsed.
type environment struct {
	config   *config.Config
	logger   *slog.Logger
	resolver *download.Resolver
}

func (o *commonOptions) load(stderr io.Writer, human bool) (*environment, error) {
	cfg, err := config.Load(config.Path(o.configPath))
	if err != nil {
		return nil, err
	}
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("--base-url: %w", err)
		}
	}

	logger := logging.NewWriter(stderr, human, logging.ParseLevel(o.logLevel))
	versions := download.NewVersionFetcher(cfg.BaseURL, download.NewHTTPRequester(cfg.Timeout()), logger).
		WithFallback(cfg.FallbackVersion)

	return &environment{
		config:   cfg,
		logger:   logger,
		resolver: download.NewResolver(cfg.BaseURL, versions, logger),
	}, nil
}

// platformOptions select the platform a command resolves for.
type platformOptions struct {
	os          string
	arch        string
	userAgent   string
	navPlatform string
	cores       int
	touch       int
}

func (o *platformOptions) register(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&o.os, "os", "", "target operating system (darwin, linux, windows); defaults to this machine")
	flagSet.StringVar(&o.arch, "arch", "", "target architecture (arm64, amd64, x64); defaults to this machine")
	flagSet.StringVar(&o.userAgent, "user-agent", "", "classify a browser user agent instead of this machine")
	flagSet.StringVar(&o.navPlatform, "nav-platform", "", "browser navigator.platform, with --user-agent")
	flagSet.IntVar(&o.cores, "cores", 0, "browser navigator.hardwareConcurrency, with --user-agent")
	flagSet.IntVar(&o.touch, "touch", 0, "browser navigator.maxTouchPoints, with --user-agent")
}

func (o *platformOptions) resolver() download.PlatformResolver {
	switch {
	case o.userAgent != "" || o.navPlatform != "":
		return download.NewNavigatorPlatformResolver(&download.Navigator{
			UserAgent:           o.userAgent,
			Platform:            o.navPlatform,
			HardwareConcurrency: o.cores,
			MaxTouchPoints:      o.touch,
		})
	case o.os != "" || o.arch != "":
		current, currentArch := download.CurrentPlatformResolver{}.Resolve()
		goos, arch := o.os, o.arch
		if goos == "" {
			goos = string(current)
		}
		if arch == "" {
			arch = string(currentArch)
		}
		return download.NewSpecificPlatformResolver(goos, arch)
	}
	return download.CurrentPlatformResolver{}
}
