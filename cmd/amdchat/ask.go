package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"amdchat/pkg/chat"
	"amdchat/pkg/format"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Send a single question and print the reply",
		Long: `Send one message to the assistant and print the reply as plain text.
Without an argument the question is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question, err := readQuestion(args, cmd.InOrStdin())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}

			a, err := newApp(configPathFlag, cmd.ErrOrStderr())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			defer a.Close()

			if err := askOnce(a.session, question, cmd.OutOrStdout()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			return nil
		},
	}
}

func readQuestion(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	if f, ok := stdin.(*os.File); ok {
		stat, err := f.Stat()
		if err == nil && stat.Mode()&os.ModeCharDevice != 0 {
			return "", errors.New("no question given: pass it as an argument or on stdin")
		}
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// printPresenter writes replies to out and remembers the last error.
type printPresenter struct {
	out    io.Writer
	errMsg string
}

func (p *printPresenter) OnAssistantReply(html string) {
	fmt.Fprintln(p.out, format.PlainText(html))
}

func (p *printPresenter) OnStatusChanged(string) {}

func (p *printPresenter) OnError(message string) {
	p.errMsg = message
}

// askOnce submits question and blocks until its exchange finishes.
func askOnce(session *chat.Session, question string, out io.Writer) error {
	if strings.TrimSpace(question) == "" {
		return errors.New("question is empty")
	}
	if err := session.Submit(question); err != nil {
		return err
	}

	p := &printPresenter{out: out}
	for ev := range session.Events() {
		if !chat.Deliver(ev, p) {
			continue
		}
		if p.errMsg != "" {
			return errors.New(p.errMsg)
		}
		return nil
	}
	return chat.ErrClosed
}
