package recorder

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// ActionRecord is one action of a round as the bot saw it.
type ActionRecord struct {
	Street      string `json:"street"`
	Seat        int    `json:"seat"`
	Action      string `json:"action"`
	Amount      int    `json:"amount,omitempty"`
	Substituted bool   `json:"substituted,omitempty"`
}

// RoundRecord is the summary of a completed round.
type RoundRecord struct {
	SessionID    string         `json:"sessionId"`
	BotName      string         `json:"botName"`
	RoundNum     int            `json:"roundNum"`
	Seat         int            `json:"seat"`
	Hand         []string       `json:"hand"`
	Bounty       string         `json:"bounty,omitempty"`
	Board        []string       `json:"board,omitempty"`
	OpponentHand []string       `json:"opponentHand,omitempty"`
	Actions      []ActionRecord `json:"actions"`
	Delta        int            `json:"delta"`
	Bankroll     int            `json:"bankroll"`
	BountyHits   [2]bool        `json:"bountyHits"`
	EndedAt      time.Time      `json:"endedAt"`
}

// Recorder receives a record for every completed round.
type Recorder interface {
	Save(record *RoundRecord) error
	Close() error
}

// Store is a Recorder that can also read records back.
type Store interface {
	Recorder
	Load(sessionID string, roundNum int) (*RoundRecord, error)
	Remove(sessionID string, roundNum int) error
}

// NotFoundError is returned by Load when no record exists for the key.
type NotFoundError struct {
	Key string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("Round record for key: %s is not found", e.Key)
}

// RecordKey is the key a record is stored under.
func RecordKey(sessionID string, roundNum int) string {
	return fmt.Sprintf("round|%s|%d", sessionID, roundNum)
}

func encodeRecord(record *RoundRecord) ([]byte, error) {
	return jsoniter.Marshal(record)
}

func decodeRecord(data []byte) (*RoundRecord, error) {
	record := &RoundRecord{}
	err := jsoniter.Unmarshal(data, record)
	if err != nil {
		return nil, err
	}
	return record, nil
}
