package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/seastate/currentsim/internal/publish"
	"github.com/seastate/currentsim/internal/watch"
)

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pub := publish.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
		publish.WithChannel(cfg.Channel))
	defer pub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	samples, err := pub.Subscribe(ctx)
	if err != nil {
		return err
	}

	p := tea.NewProgram(watch.NewModel(cfg.Channel, samples))
	_, err = p.Run()
	return err
}
