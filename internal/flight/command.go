package flight

// Command is a discrete input for the controller.
type Command int

const (
	CmdNone Command = iota
	CmdTurnLeft
	CmdTurnRight
	CmdTurnUp
	CmdTurnDown
	CmdStopLeftRight
	CmdStopUpDown
)

var commandNames = map[Command]string{
	CmdNone:          "none",
	CmdTurnLeft:      "turn_left",
	CmdTurnRight:     "turn_right",
	CmdTurnUp:        "turn_up",
	CmdTurnDown:      "turn_down",
	CmdStopLeftRight: "stop_left_right",
	CmdStopUpDown:    "stop_up_down",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Apply routes a command to the matching controller method.
// Commands are ignored once the vehicle is dead.
func (c *Controller) Apply(cmd Command) {
	if c.dead {
		return
	}
	switch cmd {
	case CmdTurnLeft:
		c.TurnLeft()
	case CmdTurnRight:
		c.TurnRight()
	case CmdTurnUp:
		c.TurnUp()
	case CmdTurnDown:
		c.TurnDown()
	case CmdStopLeftRight:
		c.StopLeftRight()
	case CmdStopUpDown:
		c.StopUpDown()
	}
}
