package sim

import "time"

// CommandType enumerates the supported battle commands.
type CommandType string

const (
	CommandMove   CommandType = "Move"
	CommandAttack CommandType = "Attack"
)

// MoveCommand carries the desired movement direction. The engine normalizes
// the vector and scales it to the configured move speed, so magnitude only
// distinguishes "move" from "stop".
type MoveCommand struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// AttackCommand carries the aim direction for a weapon trigger.
type AttackCommand struct {
	AimX float64 `json:"aimX"`
	AimY float64 `json:"aimY"`
}

// Command represents an intent captured for processing on the next tick.
type Command struct {
	OriginTick uint64         `json:"originTick"`
	ActorID    string         `json:"actorId"`
	Type       CommandType    `json:"type"`
	IssuedAt   time.Time      `json:"issuedAt"`
	Move       *MoveCommand   `json:"move,omitempty"`
	Attack     *AttackCommand `json:"attack,omitempty"`
}
