package level

// Intent is a logical player command.
type Intent int

const (
	MoveUp Intent = iota
	MoveDown
	MoveLeft
	MoveRight
	StopVertical
	StopHorizontal
	Fire
)

var intentNames = [...]string{"move_up", "move_down", "move_left", "move_right", "stop_vertical", "stop_horizontal", "fire"}

func (i Intent) String() string {
	if i >= 0 && int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "intent?"
}
