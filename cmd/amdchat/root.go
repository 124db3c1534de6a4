package main

import (
	"fmt"

	"amdchat/pkg/chat"
	"amdchat/pkg/ui"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
)

var configPathFlag string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "amdchat",
		Short: "Chat with the AMD support assistant",
		Long: `amdchat is a terminal chat client for AMD product support backed by the
OpenRouter chat-completions API.

Examples:
  amdchat                               Start the interactive chat
  amdchat ask "Какой Ryzen выбрать?"    Send a single question
  echo "Что такое FSR?" | amdchat ask   Read the question from stdin
  amdchat models --free                 List free models`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPathFlag, "config", "c", "", "Path to config file (default ~/.amdchat/config.json)")

	cmd.AddCommand(newAskCmd())
	cmd.AddCommand(newModelsCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func runChat(cmd *cobra.Command) error {
	a, err := newApp(configPathFlag, cmd.ErrOrStderr())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	defer a.Close()

	model := ui.NewModel(a.session, chat.NewDisplayLog(), a.cfg.OpenRouter.Model)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		a.logger.Error("tui_failed", "error", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
