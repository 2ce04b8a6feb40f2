package tui

import (
	"fmt"
	"strings"

	"github.com/lox/pokerrooms/internal/client"
	"github.com/lox/pokerrooms/internal/deck"
	"github.com/lox/pokerrooms/internal/game"
	"github.com/lox/pokerrooms/internal/server"
)

func formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return infoStyle.Render("--")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.Suit.IsRed() {
			parts[i] = redCardStyle.Render(c.String())
		} else {
			parts[i] = blackCardStyle.Render(c.String())
		}
	}
	return strings.Join(parts, " ")
}

// formatTable renders the table from one player's point of view
func formatTable(s game.Snapshot, me string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerStyle.Render(fmt.Sprintf(" %s · hand %d · %s ", s.RoomID, s.HandNumber, s.Street)))
	fmt.Fprintf(&b, "Board: %s   Pot: %d   To call: %d\n", formatCards(s.CommunityCards), s.Pot, s.CurrentBet)

	current, hasTurn := s.CurrentPlayer()
	for i, p := range s.Players {
		marker := "  "
		if hasTurn && p.ID == current.ID {
			marker = turnStyle.Render("▶ ")
		}
		var tags []string
		if i == s.DealerIndex {
			tags = append(tags, "D")
		}
		if p.ID == me {
			tags = append(tags, "you")
		}
		switch {
		case !p.Active:
			tags = append(tags, "out")
		case p.Folded:
			tags = append(tags, "folded")
		case p.AllIn:
			tags = append(tags, "all-in")
		}

		line := fmt.Sprintf("%s%-12s %6d chips  bet %-5d %s", marker, p.Name, p.Chips, p.Bet, formatCards(p.Cards))
		if len(tags) > 0 {
			line += " " + infoStyle.Render("("+strings.Join(tags, ", ")+")")
		}
		b.WriteString(line + "\n")
	}

	if hasTurn && current.ID == me {
		b.WriteString(turnStyle.Render("Your turn") + "\n")
	}
	return b.String()
}

func formatShowdown(d server.ShowdownData) string {
	names := strings.Join(d.WinnerNames, ", ")
	if d.Reason == game.ReasonAllFolded {
		return successStyle.Render(fmt.Sprintf("%s wins %d (all others folded)", names, d.Pot))
	}
	line := fmt.Sprintf("%s wins %d with %s", names, d.PerWinnerPayout, d.CategoryName)
	if len(d.Winners) > 1 {
		line = fmt.Sprintf("%s split %d with %s, %d each", names, d.Pot, d.CategoryName, d.PerWinnerPayout)
	}
	return successStyle.Render(line)
}

// describe turns a server message into a line for the event log, or ""
// when the message only refreshes state
func describe(msg *server.Message, me string) string {
	switch msg.Type {
	case server.MessageTypeJoinedRoom:
		if d, err := client.Decode[server.JoinedRoomData](msg); err == nil {
			return successStyle.Render("Joined room " + d.RoomID)
		}
	case server.MessageTypePlayerJoined:
		if d, err := client.Decode[server.PlayerJoinedData](msg); err == nil {
			return infoStyle.Render(d.Player.Name + " sat down")
		}
	case server.MessageTypePlayerLeft:
		if d, err := client.Decode[server.PlayerLeftData](msg); err == nil {
			return infoStyle.Render(d.Name + " left")
		}
	case server.MessageTypeGameStarted:
		if d, err := client.Decode[server.GameStartedData](msg); err == nil {
			return headerStyle.Render(fmt.Sprintf(" Hand #%d ", d.HandNumber))
		}
	case server.MessageTypeActionTaken:
		if d, err := client.Decode[server.ActionTakenData](msg); err == nil {
			if d.Amount > 0 {
				return fmt.Sprintf("%s %s %d", d.Name, d.Action, d.Amount)
			}
			return fmt.Sprintf("%s %s", d.Name, d.Action)
		}
	case server.MessageTypeShowdown:
		if d, err := client.Decode[server.ShowdownData](msg); err == nil {
			return formatShowdown(d)
		}
	case server.MessageTypeError:
		if d, err := client.Decode[server.ErrorData](msg); err == nil {
			return errorStyle.Render(d.Message)
		}
	}
	return ""
}
