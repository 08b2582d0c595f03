package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/fumiya-kume/ghflow/pkg/auth"
	"github.com/fumiya-kume/ghflow/pkg/config"
)

// terminalPrompter asks for credentials and trust decisions on the
// terminal. It stands in for the original UI dialogs.
type terminalPrompter struct {
	settings *config.Settings
	in       *os.File
	reader   *bufio.Reader
	out      io.Writer
}

func newTerminalPrompter(settings *config.Settings, in *os.File, out io.Writer) *terminalPrompter {
	return &terminalPrompter{
		settings: settings,
		in:       in,
		reader:   bufio.NewReader(in),
		out:      out,
	}
}

// PromptCredential asks for a token or login/password. Empty input cancels.
func (p *terminalPrompter) PromptCredential(ctx context.Context, host string) (auth.Credential, error) {
	fmt.Fprintf(p.out, "Authenticate to %s\n", host)

	method, err := p.readLine("Auth method ([t]oken / [b]asic): ")
	if err != nil {
		return auth.Credential{}, auth.ErrCancelled
	}

	switch strings.ToLower(strings.TrimSpace(method)) {
	case "b", "basic":
		return p.promptBasic(host)
	case "", "t", "token":
		return p.promptToken(host)
	default:
		return auth.Credential{}, auth.ErrCancelled
	}
}

func (p *terminalPrompter) promptToken(host string) (auth.Credential, error) {
	token, err := p.readSecret("Token: ")
	if err != nil || token == "" {
		return auth.Credential{}, auth.ErrCancelled
	}
	return auth.Token(host, token), nil
}

func (p *terminalPrompter) promptBasic(host string) (auth.Credential, error) {
	prompt := "Login: "
	if p.settings.Login != "" {
		prompt = fmt.Sprintf("Login [%s]: ", p.settings.Login)
	}
	login, err := p.readLine(prompt)
	if err != nil {
		return auth.Credential{}, auth.ErrCancelled
	}
	login = strings.TrimSpace(login)
	if login == "" {
		login = p.settings.Login
	}
	if login == "" {
		return auth.Credential{}, auth.ErrCancelled
	}

	password, err := p.readSecret("Password: ")
	if err != nil || password == "" {
		return auth.Credential{}, auth.ErrCancelled
	}
	return auth.Basic(host, login, password), nil
}

// ConfirmTrust asks whether to connect to a host despite an invalid TLS
// certificate. Anything but an explicit yes declines.
func (p *terminalPrompter) ConfirmTrust(ctx context.Context, host string) bool {
	answer, err := p.readLine(fmt.Sprintf("Invalid TLS certificate for %s. Connect anyway? [y/N]: ", host))
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func (p *terminalPrompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readSecret reads without echo when stdin is a terminal
func (p *terminalPrompter) readSecret(prompt string) (string, error) {
	if !term.IsTerminal(int(p.in.Fd())) {
		return p.readLine(prompt)
	}

	fmt.Fprint(p.out, prompt)
	secret, err := term.ReadPassword(int(p.in.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}
