// Package cli implements the interactive terminal client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/antonk9218/authd/internal/client/api"
	"github.com/antonk9218/authd/internal/client/config"
)

type App struct {
	client *api.Client
	in     *bufio.Reader
}

func NewApp(cfg *config.Config) (*App, error) {
	return &App{
		client: api.New(cfg.ServerAddr),
		in:     bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) showLogin() string {
	if s := a.client.Session(); s != nil {
		return s.UserID
	}
	return "(not logged in)"
}

func (a *App) Run(ctx context.Context) {

	fmt.Println("authd CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("authd %s > ", a.showLogin())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			if a.client.Session() != nil {
				fmt.Println("Available commands: whoami, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}
		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "whoami":
			a.WhoAmI(ctx)
		case "logout":
			a.client.Logout()
			fmt.Println("Logged out")
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", parts[0])
		}
	}

}

func (a *App) Register(ctx context.Context) {

	username, err := GetSimpleText(a.in, "Enter user name", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	id, err := a.client.Register(ctx, username, password)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Println("Registered, id =", id)

}

func (a *App) Login(ctx context.Context) {

	username, err := GetSimpleText(a.in, "Enter user name", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	password, err := GetPassword(os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	session, err := a.client.Login(ctx, username, password)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Printf("Success! Token valid until %s\n", session.ExpiresAt.Format("2006-01-02 15:04:05"))

}

func (a *App) WhoAmI(ctx context.Context) {

	id, err := a.client.Me(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Println("Account id:", id)

}
