package nebula

import "fmt"

// Command identifies which operation produced an Event.
type Command int

const (
	CommandNone Command = iota
	CommandReset
	CommandMove
	CommandCraft
	CommandUse
)

var commandNames = [...]string{"none", "reset", "move", "craft", "use"}

// String returns the command name.
func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// Outcome is the result of a command.
type Outcome int

const (
	OutcomeNone      Outcome = iota
	OutcomeMoved             // Stepped onto an empty cell
	OutcomeCollected         // Stepped onto a resource and collected it
	OutcomeAbsorbed          // A shield absorbed a hazard; player moved
	OutcomeGameOver          // Walked into a hazard without a shield
	OutcomeBlocked           // Target was off the board
	OutcomeInvalid           // Not a single orthogonal step
	OutcomeCrafted           // Tool crafted
	OutcomeUsed              // Tool used
	OutcomeRejected          // Not enough resources, empty tool slot, or passive tool
	OutcomeIgnored           // Command issued after game over
)

var outcomeNames = [...]string{
	"none", "moved", "collected", "absorbed", "game_over", "blocked",
	"invalid", "crafted", "used", "rejected", "ignored",
}

// String returns a stable snake_case name, used by the web API.
func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// Moved reports whether the player changed squares.
func (o Outcome) Moved() bool {
	return o == OutcomeMoved || o == OutcomeCollected || o == OutcomeAbsorbed
}

// Succeeded reports whether the command did what it asked for.
// Walking into a hazard ends the game but is not a successful move.
func (o Outcome) Succeeded() bool {
	return o.Moved() || o == OutcomeCrafted || o == OutcomeUsed
}

// Event describes what the most recent command did.
type Event struct {
	Command  Command
	Outcome  Outcome
	Tool     ToolKind     // Valid for CommandCraft and CommandUse
	Resource ResourceKind // Valid when Outcome is OutcomeCollected
	Cleared  int          // Hazards removed by a pulse
	Refilled int          // Items placed by the populator after a move
	Points   int          // Score gained
}

// OK reports whether the command succeeded. A reset always does.
func (e Event) OK() bool {
	return e.Command == CommandReset || e.Outcome.Succeeded()
}

// Describe returns a one-line human readable account of the event.
func (e Event) Describe() string {
	switch e.Outcome {
	case OutcomeMoved:
		return withRefill("Moved.", e.Refilled)
	case OutcomeCollected:
		return withRefill(fmt.Sprintf("Collected %s (+%d).", e.Resource, e.Points), e.Refilled)
	case OutcomeAbsorbed:
		return withRefill(fmt.Sprintf("Shield absorbed a hazard (+%d).", e.Points), e.Refilled)
	case OutcomeGameOver:
		return "Hit a hazard without a shield. Game over."
	case OutcomeBlocked:
		return "The edge of the nebula blocks the way."
	case OutcomeInvalid:
		return "Moves are one square up, down, left or right."
	case OutcomeCrafted:
		return fmt.Sprintf("Crafted a %s (+%d).", e.Tool, e.Points)
	case OutcomeUsed:
		return fmt.Sprintf("Pulse cleared %d hazard(s) (+%d).", e.Cleared, e.Points)
	case OutcomeRejected:
		return rejectedText(e)
	case OutcomeIgnored:
		return "The game is over. Reset to play again."
	}
	if e.Command == CommandReset {
		return "New nebula charted."
	}
	return ""
}

func rejectedText(e Event) string {
	switch {
	case e.Command == CommandCraft && e.Tool.valid():
		return fmt.Sprintf("Not enough resources for a %s.", e.Tool)
	case e.Command == CommandUse && e.Tool == Shield:
		return "Shields work on their own when you touch a hazard."
	case e.Command == CommandUse && e.Tool.valid():
		return fmt.Sprintf("No %s in the inventory.", e.Tool)
	default:
		return "Unknown tool."
	}
}

func withRefill(msg string, refilled int) string {
	if refilled == 0 {
		return msg
	}
	return fmt.Sprintf("%s The nebula shifts: %d new item(s).", msg, refilled)
}
