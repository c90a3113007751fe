package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/seastate/currentsim/internal/config"
)

var (
	configFile string
	preset     string
	channel    string
	rateHz     float64
	httpAddr   string
	redisAddr  string
	seed       uint64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "currentsim",
		Short: "ocean current signal service",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the signal service",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	serveCmd.Flags().StringVar(&preset, "preset", "", "use preset sea state")
	serveCmd.Flags().StringVar(&channel, "channel", config.DefaultChannel, "output channel name")
	serveCmd.Flags().Float64Var(&rateHz, "rate", config.DefaultRateHz, "update rate (Hz)")
	serveCmd.Flags().StringVar(&httpAddr, "http", config.DefaultHTTPAddr, "control api listen address")
	serveCmd.Flags().StringVar(&redisAddr, "redis", config.DefaultRedisAddr, "redis address")
	serveCmd.Flags().Uint64Var(&seed, "seed", 0, "noise seed (0 = time-based)")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "live view of the published signal",
		RunE:  runWatch,
	}
	watchCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	watchCmd.Flags().StringVar(&channel, "channel", config.DefaultChannel, "output channel name")
	watchCmd.Flags().StringVar(&redisAddr, "redis", config.DefaultRedisAddr, "redis address")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset sea states",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(serveCmd, watchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves config file, preset and flag overrides in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case configFile != "":
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, err
		}
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if cmd.Flags().Changed("channel") {
		cfg.Channel = channel
	}
	if cmd.Flags().Changed("rate") {
		cfg.RateHz = rateHz
	}
	if cmd.Flags().Changed("http") {
		cfg.HTTP.Addr = httpAddr
	}
	if cmd.Flags().Changed("redis") {
		cfg.Redis.Addr = redisAddr
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
