package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkoster/hireboard/internal/config"
)

var askCmd = &cobra.Command{
	Use:   "ask <prompt>",
	Short: "Send a one-shot prompt to the assistant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log, err := buildLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		chat, _, closeLLM, err := buildAssistant(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer closeLLM()

		reply, err := chat.Reply(cmd.Context(), args[0], "")
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
