package gotd

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
)

var _ auth.UserAuthenticator = terminalAuth{}

// terminalAuth drives the interactive first login: the phone comes from the
// configuration, the code and the optional 2FA password are prompted on the
// terminal. Subsequent starts reuse the stored session and never prompt.
type terminalAuth struct {
	phone string
}

func (a terminalAuth) Phone(_ context.Context) (string, error) {
	return a.phone, nil
}

func (a terminalAuth) Code(ctx context.Context, _ *tg.AuthSentCode) (string, error) {
	var code string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Telegram login code").
			Description("Enter the code sent to " + a.phone).
			Value(&code).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("code is required")
				}
				return nil
			}),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return strings.TrimSpace(code), nil
}

func (a terminalAuth) Password(ctx context.Context) (string, error) {
	var password string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Two-factor password").
			EchoMode(huh.EchoModePassword).
			Value(&password),
	))
	if err := form.RunWithContext(ctx); err != nil {
		return "", err
	}
	return password, nil
}

func (a terminalAuth) AcceptTermsOfService(_ context.Context, _ tg.HelpTermsOfService) error {
	return nil
}

func (a terminalAuth) SignUp(_ context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, errors.New("gotd: account sign-up is not supported, register the account first")
}
