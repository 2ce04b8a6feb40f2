package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/pokerrooms/internal/game"
	"github.com/lox/pokerrooms/internal/server"
)

const helpText = `Commands:
  start                  deal the next hand
  fold | check | call    act on your turn
  raise <amount>         raise by amount over the call
  allin                  push your whole stack
  bot [easy|medium|hard] add a computer player
  kick                   remove the last bot
  join [room]            take a seat again after leaving
  leave                  give up your seat
  help                   show this text
  quit                   disconnect`

// Conn is the part of a server connection the terminal needs.
// *client.Client implements it.
type Conn interface {
	JoinRoom(roomID, name, avatar string) error
	LeaveRoom() error
	StartGame() error
	Act(action string, amount int) error
	AddBot(difficulty string) error
	RemoveBot() error
	PlayerID() string
	Messages() <-chan *server.Message
}

// Session is who the player is and where they sit
type Session struct {
	Name   string
	Avatar string
	Room   string
}

// command is one line of user input. help and quit are handled by the
// model and carry no run func.
type command struct {
	name string
	run  func(Conn) error
}

// parseCommand turns an input line into a command
func parseCommand(line string, session Session) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, errors.New("empty command")
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	switch name {
	case "start", "deal":
		return command{name: "start", run: Conn.StartGame}, nil
	case "leave":
		return command{name: "leave", run: Conn.LeaveRoom}, nil
	case "kick":
		return command{name: "kick", run: Conn.RemoveBot}, nil
	case "quit", "exit":
		return command{name: "quit"}, nil
	case "help", "?":
		return command{name: "help"}, nil
	case "join":
		room := session.Room
		if len(args) > 0 {
			room = args[0]
		}
		return command{name: "join", run: func(c Conn) error {
			return c.JoinRoom(room, session.Name, session.Avatar)
		}}, nil
	case "bot":
		difficulty := ""
		if len(args) > 0 {
			difficulty = strings.ToLower(args[0])
		}
		return command{name: "bot", run: func(c Conn) error { return c.AddBot(difficulty) }}, nil
	}

	amount := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return command{}, fmt.Errorf("invalid amount %q", args[0])
		}
		amount = n
	}

	// Validate locally so typos never reach the server
	action, err := game.ParseAction(name, amount)
	if errors.Is(err, game.ErrInvalidAmount) {
		return command{}, err
	}
	if err != nil {
		return command{}, fmt.Errorf("unknown command %q (try help)", name)
	}
	return command{name: action.Name(), run: func(c Conn) error {
		return c.Act(action.Name(), game.Amount(action))
	}}, nil
}
