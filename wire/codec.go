package wire

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"pokerbots.com/skeleton/skeleton"
)

const (
	ClauseSeparator = " "
	CardSeparator   = ","
	LineTerminator  = "\n"
)

// DecodePacket decodes one line sent by the engine. Decoding is strict: an
// unknown clause is an error, because skipping it would leave the round state
// out of step with the engine.
func DecodePacket(line string) (Packet, error) {
	line = strings.TrimRight(line, "\r\n")
	packet := Packet{Line: line}
	if strings.TrimSpace(line) == "" {
		return packet, skeleton.MalformedMessageError{Line: line, Reason: "empty packet"}
	}
	for _, clause := range strings.Split(line, ClauseSeparator) {
		msg, err := decodeClause(clause)
		if err != nil {
			return packet, skeleton.MalformedMessageError{Line: line, Clause: clause, Reason: err.Error()}
		}
		packet.Messages = append(packet.Messages, msg)
	}
	return packet, nil
}

func decodeClause(clause string) (Message, error) {
	if clause == "" {
		return Message{}, fmt.Errorf("empty clause")
	}
	tag, body := clause[0], clause[1:]
	msg := Message{Raw: clause}
	switch tag {
	case 'T':
		clock, err := strconv.ParseFloat(body, 64)
		if err != nil || !plainNumber(body) || math.IsNaN(clock) || math.IsInf(clock, 0) {
			return msg, fmt.Errorf("bad game clock %q", body)
		}
		msg.Kind = KindActionRequest
		msg.Clock = clock

	case 'P':
		if body != "0" && body != "1" {
			return msg, fmt.Errorf("bad seat %q", body)
		}
		msg.Kind = KindSeat
		msg.Seat = int(body[0] - '0')

	case 'H', 'O':
		cards, err := decodeCards(body, 2, 2)
		if err != nil {
			return msg, err
		}
		msg.Kind = KindHand
		if tag == 'O' {
			msg.Kind = KindReveal
		}
		msg.Cards = cards

	case 'B':
		cards, err := decodeCards(body, 3, 5)
		if err != nil {
			return msg, err
		}
		msg.Kind = KindBoard
		msg.Cards = cards

	case 'G':
		rank, err := skeleton.ParseRank(body)
		if err != nil {
			return msg, err
		}
		msg.Kind = KindBounty
		msg.Rank = rank

	case 'F', 'C', 'K', 'R':
		action, err := DecodeAction(clause)
		if err != nil {
			return msg, err
		}
		msg.Kind = KindAction
		msg.Action = action

	case 'D':
		delta, err := strconv.Atoi(body)
		if err != nil || !plainNumber(body) {
			return msg, fmt.Errorf("bad delta %q", body)
		}
		msg.Kind = KindDelta
		msg.Delta = delta

	case 'Y':
		if len(body) != 2 {
			return msg, fmt.Errorf("bad bounty hits %q", body)
		}
		for i := 0; i < 2; i++ {
			switch body[i] {
			case '0':
			case '1':
				msg.Hits[i] = true
			default:
				return msg, fmt.Errorf("bad bounty hits %q", body)
			}
		}
		msg.Kind = KindBountyHits

	case 'Q':
		if body != "" {
			return msg, fmt.Errorf("unexpected payload %q", body)
		}
		msg.Kind = KindGameOver

	default:
		return msg, fmt.Errorf("unknown tag %q", string(tag))
	}
	return msg, nil
}

// plainNumber reports whether s starts the way EncodeAction and the engine
// write numbers: a digit, or a minus sign.
func plainNumber(s string) bool {
	return s != "" && (s[0] == '-' || (s[0] >= '0' && s[0] <= '9'))
}

func decodeCards(body string, min int, max int) ([]skeleton.Card, error) {
	parts := strings.Split(body, CardSeparator)
	if len(parts) < min || len(parts) > max {
		return nil, fmt.Errorf("expected %d to %d cards, got %q", min, max, body)
	}
	cards := make([]skeleton.Card, 0, len(parts))
	for _, p := range parts {
		c, err := skeleton.ParseCard(p)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// EncodeAction returns the clause sent to the engine for an action, without
// the line terminator.
func EncodeAction(a skeleton.Action) (string, error) {
	switch a.Type {
	case skeleton.ActionFold:
		return "F", nil
	case skeleton.ActionCall:
		return "C", nil
	case skeleton.ActionCheck:
		return "K", nil
	case skeleton.ActionRaise:
		if a.Amount <= 0 {
			return "", fmt.Errorf("raise amount must be positive: %d", a.Amount)
		}
		return "R" + strconv.Itoa(a.Amount), nil
	}
	return "", fmt.Errorf("unknown action type %d", int(a.Type))
}

// DecodeAction parses an action clause.
func DecodeAction(clause string) (skeleton.Action, error) {
	switch clause {
	case "F":
		return skeleton.Fold(), nil
	case "C":
		return skeleton.Call(), nil
	case "K":
		return skeleton.Check(), nil
	}
	if len(clause) > 1 && clause[0] == 'R' {
		amount, err := strconv.Atoi(clause[1:])
		if err != nil || amount <= 0 || !plainNumber(clause[1:]) {
			return skeleton.Action{}, fmt.Errorf("bad raise amount %q", clause[1:])
		}
		return skeleton.RaiseTo(amount), nil
	}
	return skeleton.Action{}, fmt.Errorf("bad action %q", clause)
}
